package wizard

import "taxsurvey_backend/internals/features/survey/catalog"

// ValidateFinalSubmission runs the cross-step completeness check before the
// response row is assembled. The per-step validators already guarantee the
// detail; here we only make sure no step was bypassed or lost.
func ValidateFinalSubmission(st *State) []string {
	var errs []string

	if len(st.RespondentInfo) == 0 {
		errs = append(errs, "Respondent information is missing. Please complete step 2.")
	}
	if len(st.GenericAnswers) == 0 {
		errs = append(errs, "General questions are unanswered. Please complete step 3.")
	} else {
		for _, field := range []string{"g1_policy_impact", "g2_system_impact", "g3_technical_issues", "g5_digital_literacy", "g6_challenged_groups"} {
			if _, ok := st.GenericAnswers[field]; !ok {
				errs = append(errs, "General questions are incomplete. Please revisit step 3.")
				break
			}
		}
	}

	role := st.Role()
	switch role {
	case "":
		errs = append(errs, "Professional role is missing. Please complete step 2.")
	case catalog.RoleLegal:
		if !hasAnyKey(st.RoleSpecificAnswers, "lp1_digital_support", "lp2_challenges") {
			errs = append(errs, "Legal practitioner questions are unanswered. Please complete step 4.")
		}
	case catalog.RoleCustoms:
		if !hasAnyKey(st.RoleSpecificAnswers, "ca1_training", "ca3_challenges") {
			errs = append(errs, "Customs agent questions are unanswered. Please complete step 4.")
		}
	case catalog.RoleBoth:
		if !hasAnyKey(st.RoleSpecificAnswers, "lp1_digital_support", "lp2_challenges") {
			errs = append(errs, "Legal practitioner questions are unanswered. Please complete step 4.")
		}
		if !hasAnyKey(st.RoleSpecificAnswers, "ca1_training", "ca3_challenges") {
			errs = append(errs, "Customs agent questions are unanswered. Please complete step 4.")
		}
	}

	// Step 5 must be answered, saved as draft, or explicitly skipped.
	if len(st.CrossSystemAnswers) == 0 {
		errs = append(errs, "Cross-system perspectives are missing. Please complete or skip step 5.")
	}

	return errs
}

func hasAnyKey(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
