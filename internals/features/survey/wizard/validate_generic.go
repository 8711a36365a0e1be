package wizard

import (
	"fmt"
	"net/url"
	"strings"

	"taxsurvey_backend/internals/features/survey/catalog"
	helper "taxsurvey_backend/internals/helpers"
)

// ValidateGenericQuestions checks the step-3 form: two sentiment matrices,
// the technical-issues frequency with its conditional disruption follow-up,
// digital literacy, and the challenged-groups multi-select. On success the
// cleaned bucket is returned alongside an empty error list.
func ValidateGenericQuestions(form url.Values) (map[string]any, []string) {
	var errs []string
	bucket := map[string]any{}

	g1 := map[string]string{}
	for _, row := range catalog.G1Aspects {
		field := "g1_" + row.Key
		val := strings.TrimSpace(form.Get(field))
		if val == "" {
			errs = append(errs, fmt.Sprintf("Please rate: %s (policy impact).", row.Label))
			continue
		}
		if !catalog.IsValid(catalog.Sentiments, val) {
			errs = append(errs, fmt.Sprintf("Invalid rating for %s.", row.Label))
			continue
		}
		g1[row.Key] = val
	}
	bucket["g1_policy_impact"] = g1

	g2 := map[string]string{}
	for _, row := range catalog.G2Aspects {
		field := "g2_" + row.Key
		val := strings.TrimSpace(form.Get(field))
		if val == "" {
			errs = append(errs, fmt.Sprintf("Please rate: %s (system impact).", row.Label))
			continue
		}
		if !catalog.IsValid(catalog.Sentiments, val) {
			errs = append(errs, fmt.Sprintf("Invalid rating for %s.", row.Label))
			continue
		}
		g2[row.Key] = val
	}
	bucket["g2_system_impact"] = g2

	g3 := strings.TrimSpace(form.Get("g3_technical_issues"))
	switch {
	case g3 == "":
		errs = append(errs, "Please indicate how often you face technical issues.")
	case !catalog.IsValid(catalog.G3TechnicalIssuesOptions, g3):
		errs = append(errs, "Invalid technical issues selection.")
	default:
		bucket["g3_technical_issues"] = g3
	}

	// Disruption severity is only asked when issues are frequent.
	g4 := strings.TrimSpace(form.Get("g4_disruption"))
	if catalog.IsG4Trigger(g3) {
		switch {
		case g4 == "":
			errs = append(errs, "Please indicate how severe the disruption is.")
		case !catalog.IsValid(catalog.G4DisruptionOptions, g4):
			errs = append(errs, "Invalid disruption selection.")
		default:
			bucket["g4_disruption"] = g4
		}
	} else if g4 != "" && catalog.IsValid(catalog.G4DisruptionOptions, g4) {
		bucket["g4_disruption"] = g4
	}

	g5 := strings.TrimSpace(form.Get("g5_digital_literacy"))
	switch {
	case g5 == "":
		errs = append(errs, "Please answer the digital literacy question.")
	case !catalog.IsValid(catalog.G5DigitalLiteracyOptions, g5):
		errs = append(errs, "Invalid digital literacy selection.")
	default:
		bucket["g5_digital_literacy"] = g5
	}

	g6 := cleanedMulti(form["g6_challenged_groups"])
	if len(g6) == 0 {
		errs = append(errs, "Please select at least one group facing challenges.")
	}
	hasOthers := false
	for _, code := range g6 {
		if !catalog.IsValid(catalog.G6ChallengedGroups, code) {
			errs = append(errs, fmt.Sprintf("Unknown group option: %s", code))
		}
		if code == "others" {
			hasOthers = true
		}
	}
	if len(g6) > 0 {
		bucket["g6_challenged_groups"] = g6
	}

	otherText := helper.Sanitize(form.Get("g6_other_text"))
	if hasOthers && otherText == "" {
		errs = append(errs, "Please specify the other group.")
	}
	if otherText != "" {
		bucket["g6_other_text"] = otherText
	}

	return bucket, errs
}

func cleanedMulti(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
