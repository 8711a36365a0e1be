package wizard

import (
	"net/url"
	"strings"
	"time"

	"taxsurvey_backend/internals/features/survey/catalog"
)

// ValidateCrossSystem checks the step-5 form and returns the bucket to store.
// action is one of submit, save_draft, skip_section; skip ignores the answer
// fields entirely and records the skip sentinel.
func ValidateCrossSystem(action string, form url.Values) (map[string]any, []string) {
	now := time.Now().UTC().Format(time.RFC3339)

	if action == "skip_section" {
		return map[string]any{"skipped": true, "timestamp": now}, nil
	}

	var errs []string
	bucket := map[string]any{}

	xs1 := strings.TrimSpace(form.Get("xs1_data_discrepancy"))
	xs2 := strings.TrimSpace(form.Get("xs2_policy_consistency"))

	if xs1 != "" && !catalog.IsValid(catalog.XSOptions, xs1) {
		errs = append(errs, "Invalid data discrepancy selection.")
		xs1 = ""
	}
	if xs2 != "" && !catalog.IsValid(catalog.XSOptions, xs2) {
		errs = append(errs, "Invalid policy consistency selection.")
		xs2 = ""
	}

	if xs1 != "" {
		bucket["xs1_data_discrepancy"] = xs1
	}
	if xs2 != "" {
		bucket["xs2_policy_consistency"] = xs2
	}

	if action == "save_draft" {
		// Drafts may be partial.
		bucket["saved_as_draft"] = true
		bucket["draft_saved_at"] = now
		return bucket, errs
	}

	if xs1 == "" {
		errs = append(errs, "Please answer the data discrepancy question or skip this section.")
	}
	if xs2 == "" {
		errs = append(errs, "Please answer the policy consistency question or skip this section.")
	}
	if len(errs) == 0 {
		bucket["completed_at"] = now
	}
	return bucket, errs
}
