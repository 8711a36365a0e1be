package wizard

import (
	"fmt"
	"net/url"
	"strings"

	"taxsurvey_backend/internals/features/survey/catalog"
	helper "taxsurvey_backend/internals/helpers"
)

// ValidateRoleSpecific checks the step-4 form for the branch the respondent
// belongs to. A "both" respondent answers the legal and customs sections on
// the same page, so both rule sets run against one form.
func ValidateRoleSpecific(role string, form url.Values) (map[string]any, []string) {
	bucket := map[string]any{}
	var errs []string

	switch role {
	case catalog.RoleLegal:
		errs = append(errs, validateLegalSection(form, bucket)...)
	case catalog.RoleCustoms:
		errs = append(errs, validateCustomsSection(form, bucket)...)
	case catalog.RoleBoth:
		errs = append(errs, validateLegalSection(form, bucket)...)
		errs = append(errs, validateCustomsSection(form, bucket)...)
	default:
		errs = append(errs, "Respondent information is incomplete. Please restart from step 2.")
	}

	return bucket, errs
}

func validateLegalSection(form url.Values, bucket map[string]any) []string {
	var errs []string

	lp1 := strings.TrimSpace(form.Get("lp1_digital_support"))
	switch {
	case lp1 == "":
		errs = append(errs, "Please answer the digital support question.")
	case !catalog.IsValid(catalog.LP1Options, lp1):
		errs = append(errs, "Invalid digital support selection.")
	default:
		bucket["lp1_digital_support"] = lp1
	}

	lp2, lp2Errs := validateGrid(form, "lp2", catalog.LP2Functions, catalog.LPChallengeLevels, "registration and filing")
	errs = append(errs, lp2Errs...)
	bucket["lp2_challenges"] = lp2

	lp3, lp3Errs := validateGrid(form, "lp3", catalog.LP3Functions, catalog.LPChallengeLevels, "assessment and audit")
	errs = append(errs, lp3Errs...)
	bucket["lp3_challenges"] = lp3

	lp4, lp4Errs := validateGrid(form, "lp4", catalog.LP4Functions, catalog.LPChallengeLevels, "appeals and refunds")
	errs = append(errs, lp4Errs...)
	bucket["lp4_challenges"] = lp4

	// LP5 drills into tax types for every function the respondent rated
	// moderate or major in LP2-LP4. It is rendered client-side only when
	// such a rating exists; lp5_visible tells us which rendition was shown.
	lp5Visible := form.Get("lp5_visible") == "1"
	bucket["lp5_visible"] = lp5Visible
	challenging := challengingFunctions(lp2, lp3, lp4)
	if lp5Visible {
		lp5 := map[string]any{}
		for _, fn := range challenging {
			income := form.Get("lp5_"+fn+"_income") != ""
			sales := form.Get("lp5_"+fn+"_sales") != ""
			if !income && !sales {
				errs = append(errs, fmt.Sprintf("Please select at least one tax type for: %s.", fn))
				continue
			}
			lp5[fn] = map[string]any{"income": income, "sales": sales}
		}
		bucket["lp5_tax_types"] = lp5
	} else if len(challenging) > 0 {
		errs = append(errs, "Please indicate the tax types for the functions you rated challenging.")
	}

	if lp6 := helper.Sanitize(form.Get("lp6_priority_improvement")); lp6 != "" {
		bucket["lp6_priority_improvement"] = lp6
	}

	lp7 := cleanedMulti(form["lp7_common_problems"])
	if len(lp7) == 0 {
		errs = append(errs, "Please select at least one common problem.")
	}
	if len(lp7) > catalog.LP7MaxSelections {
		errs = append(errs, fmt.Sprintf("Select at most %d common problems.", catalog.LP7MaxSelections))
	}
	hasOther := false
	for _, code := range lp7 {
		if !catalog.IsValid(catalog.LP7CommonProblems, code) {
			errs = append(errs, fmt.Sprintf("Unknown problem option: %s", code))
		}
		if code == "other" {
			hasOther = true
		}
	}
	if len(lp7) > 0 {
		bucket["lp7_common_problems"] = lp7
	}
	lp7Other := helper.Sanitize(form.Get("lp7_other_text"))
	if hasOther && lp7Other == "" {
		errs = append(errs, "Please describe the other problem.")
	}
	if lp7Other != "" {
		bucket["lp7_other_text"] = lp7Other
	}

	return errs
}

func validateCustomsSection(form url.Values, bucket map[string]any) []string {
	var errs []string

	singles := []struct {
		field   string
		opts    []catalog.Option
		missing string
	}{
		{"ca1_training", catalog.CA1Options, "Please answer the training question."},
		{"ca2_system_integration", catalog.CA2Options, "Please answer the system integration question."},
		{"ca5_policy_impact", catalog.CA5Options, "Please answer the policy impact question."},
		{"ca6_biggest_challenge", catalog.CA6Options, "Please select the biggest challenge."},
	}
	for _, s := range singles {
		val := strings.TrimSpace(form.Get(s.field))
		switch {
		case val == "":
			errs = append(errs, s.missing)
		case !catalog.IsValid(s.opts, val):
			errs = append(errs, fmt.Sprintf("Invalid selection for %s.", s.field))
		default:
			bucket[s.field] = val
		}
	}

	ca3, ca3Errs := validateGrid(form, "ca3", catalog.CA3Functions, catalog.CA3ChallengeLevels, "customs functions")
	errs = append(errs, ca3Errs...)
	bucket["ca3_challenges"] = ca3

	ca4, ca4Errs := validateGrid(form, "ca4", catalog.CA4Processes, catalog.CA4EffectivenessLevels, "customs processes")
	errs = append(errs, ca4Errs...)
	bucket["ca4_effectiveness"] = ca4

	if ca6 := helper.Sanitize(form.Get("ca6_improvement")); ca6 != "" {
		bucket["ca6_improvement"] = ca6
	}

	ca7 := cleanedMulti(form["ca7_procedure_challenges"])
	if len(ca7) == 0 {
		errs = append(errs, "Please select at least one procedure challenge.")
	}
	hasNone, hasOther := false, false
	for _, code := range ca7 {
		if !catalog.IsValid(catalog.CA7ProcedureChallenges, code) {
			errs = append(errs, fmt.Sprintf("Unknown procedure challenge: %s", code))
		}
		if code == catalog.CA7NoChallengesCode {
			hasNone = true
		}
		if code == "other" {
			hasOther = true
		}
	}
	if hasNone && len(ca7) > 1 {
		errs = append(errs, `"No significant challenges" cannot be combined with other selections.`)
	}
	if len(ca7) > 0 {
		bucket["ca7_procedure_challenges"] = ca7
	}
	ca7Other := helper.Sanitize(form.Get("ca7_other_text"))
	if hasOther && ca7Other == "" {
		errs = append(errs, "Please describe the other challenge.")
	}
	if ca7Other != "" {
		bucket["ca7_other_text"] = ca7Other
	}

	// Legacy single kept optional; older sessions remap onto it.
	if ca9 := strings.TrimSpace(form.Get("ca9_system_reliability")); ca9 != "" {
		if !catalog.IsValid(catalog.CA9Options, ca9) {
			errs = append(errs, "Invalid system reliability selection.")
		} else {
			bucket["ca9_system_reliability"] = ca9
		}
	}

	return errs
}

// validateGrid requires exactly one level per fixed row, named
// <prefix>_<rowkey> in the form.
func validateGrid(form url.Values, prefix string, rows []catalog.GridRow, levels []catalog.Option, label string) (map[string]any, []string) {
	var errs []string
	grid := map[string]any{}
	for _, row := range rows {
		val := strings.TrimSpace(form.Get(prefix + "_" + row.Key))
		switch {
		case val == "":
			errs = append(errs, fmt.Sprintf("Please rate %s: %s.", label, row.Label))
		case !catalog.IsValid(levels, val):
			errs = append(errs, fmt.Sprintf("Invalid rating for %s.", row.Label))
		default:
			grid[row.Key] = val
		}
	}
	return grid, errs
}

// challengingFunctions lists grid rows rated moderate or major, in LP2-LP4
// order, without duplicates.
func challengingFunctions(grids ...map[string]any) []string {
	ordered := [][]catalog.GridRow{catalog.LP2Functions, catalog.LP3Functions, catalog.LP4Functions}
	seen := map[string]bool{}
	var out []string
	for i, grid := range grids {
		if i >= len(ordered) {
			break
		}
		for _, key := range catalog.GridKeys(ordered[i]) {
			level, _ := grid[key].(string)
			if catalog.IsChallengingLevel(level) && !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}
