package wizard

import (
	"net/url"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/dto"
)

func validRespondent() *dto.RespondentInfoRequest {
	return &dto.RespondentInfoRequest{
		FullName:          "Ayesha Khan",
		Email:             "ayesha@example.com",
		ProfessionalRoles: []string{"legal"},
		Province:          "punjab",
		District:          "Lahore",
		LegalExperience:   "6_10",
		KiiConsent:        "yes",
	}
}

func TestValidateRespondentInfo(t *testing.T) {
	v := validator.New()

	t.Run("valid legal respondent", func(t *testing.T) {
		assert.Empty(t, ValidateRespondentInfo(v, validRespondent()))
	})

	t.Run("experience required per selected role", func(t *testing.T) {
		req := validRespondent()
		req.LegalExperience = ""
		errs := ValidateRespondentInfo(v, req)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "legal practice")
	})

	t.Run("both roles need both experiences", func(t *testing.T) {
		req := validRespondent()
		req.ProfessionalRoles = []string{"legal", "customs"}
		errs := ValidateRespondentInfo(v, req)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "customs practice")
	})

	t.Run("district from another province rejected", func(t *testing.T) {
		req := validRespondent()
		req.Province = "sindh"
		req.District = "Lahore"
		errs := ValidateRespondentInfo(v, req)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "Valid district")
	})

	t.Run("unknown district rejected", func(t *testing.T) {
		req := validRespondent()
		req.District = "some village"
		errs := ValidateRespondentInfo(v, req)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "Valid district")
	})

	t.Run("other district skips consistency check", func(t *testing.T) {
		req := validRespondent()
		req.District = catalog.DistrictOther
		assert.Empty(t, ValidateRespondentInfo(v, req))
	})

	t.Run("missing name and roles", func(t *testing.T) {
		req := validRespondent()
		req.FullName = ""
		req.ProfessionalRoles = nil
		errs := ValidateRespondentInfo(v, req)
		assert.NotEmpty(t, errs)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		req := validRespondent()
		req.ProfessionalRoles = []string{"legal", "astronaut"}
		errs := ValidateRespondentInfo(v, req)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0], "astronaut")
	})
}

func fullGenericForm() url.Values {
	form := url.Values{}
	for _, row := range catalog.G1Aspects {
		form.Set("g1_"+row.Key, "positive")
	}
	for _, row := range catalog.G2Aspects {
		form.Set("g2_"+row.Key, "neutral")
	}
	form.Set("g3_technical_issues", "rarely")
	form.Set("g5_digital_literacy", "moderate_impact")
	form.Add("g6_challenged_groups", "salaried_class")
	return form
}

func TestValidateGenericQuestions(t *testing.T) {
	t.Run("complete form passes", func(t *testing.T) {
		bucket, errs := ValidateGenericQuestions(fullGenericForm())
		assert.Empty(t, errs)
		g1, ok := bucket["g1_policy_impact"].(map[string]string)
		require.True(t, ok)
		assert.Len(t, g1, len(catalog.G1Aspects))
	})

	t.Run("missing matrix row fails", func(t *testing.T) {
		form := fullGenericForm()
		form.Del("g1_" + catalog.G1Aspects[0].Key)
		_, errs := ValidateGenericQuestions(form)
		assert.NotEmpty(t, errs)
	})

	t.Run("g4 required only when issues frequent", func(t *testing.T) {
		form := fullGenericForm()
		form.Set("g3_technical_issues", "frequently")
		_, errs := ValidateGenericQuestions(form)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0], "disruption")

		form.Set("g4_disruption", "moderate")
		bucket, errs := ValidateGenericQuestions(form)
		assert.Empty(t, errs)
		assert.Equal(t, "moderate", bucket["g4_disruption"])
	})

	t.Run("g4 not required when issues rare", func(t *testing.T) {
		_, errs := ValidateGenericQuestions(fullGenericForm())
		assert.Empty(t, errs)
	})

	t.Run("others group needs free text", func(t *testing.T) {
		form := fullGenericForm()
		form.Add("g6_challenged_groups", "others")
		_, errs := ValidateGenericQuestions(form)
		require.NotEmpty(t, errs)

		form.Set("g6_other_text", "street vendors")
		bucket, errs := ValidateGenericQuestions(form)
		assert.Empty(t, errs)
		assert.Equal(t, "street vendors", bucket["g6_other_text"])
	})

	t.Run("invalid sentiment code rejected", func(t *testing.T) {
		form := fullGenericForm()
		form.Set("g1_"+catalog.G1Aspects[0].Key, "fantastic")
		_, errs := ValidateGenericQuestions(form)
		assert.NotEmpty(t, errs)
	})
}

func fullLegalForm() url.Values {
	form := url.Values{}
	form.Set("lp1_digital_support", "moderate_extent")
	for _, row := range catalog.LP2Functions {
		form.Set("lp2_"+row.Key, "minor_challenge")
	}
	for _, row := range catalog.LP3Functions {
		form.Set("lp3_"+row.Key, "no_challenge")
	}
	for _, row := range catalog.LP4Functions {
		form.Set("lp4_"+row.Key, "minor_challenge")
	}
	form.Set("lp5_visible", "0")
	form.Add("lp7_common_problems", catalog.LP7CommonProblems[0].Code)
	return form
}

func fullCustomsForm() url.Values {
	form := url.Values{}
	form.Set("ca1_training", catalog.CA1Options[0].Code)
	form.Set("ca2_system_integration", catalog.CA2Options[0].Code)
	for _, row := range catalog.CA3Functions {
		form.Set("ca3_"+row.Key, "minor_challenge")
	}
	for _, row := range catalog.CA4Processes {
		form.Set("ca4_"+row.Key, catalog.CA4EffectivenessLevels[0].Code)
	}
	form.Set("ca5_policy_impact", catalog.CA5Options[0].Code)
	form.Set("ca6_biggest_challenge", catalog.CA6Options[0].Code)
	form.Add("ca7_procedure_challenges", catalog.CA7ProcedureChallenges[0].Code)
	return form
}

func mergeForms(a, b url.Values) url.Values {
	out := url.Values{}
	for k, vs := range a {
		out[k] = append([]string(nil), vs...)
	}
	for k, vs := range b {
		out[k] = append(out[k], vs...)
	}
	return out
}

func TestValidateRoleSpecific(t *testing.T) {
	t.Run("legal only never needs customs fields", func(t *testing.T) {
		bucket, errs := ValidateRoleSpecific("legal", fullLegalForm())
		assert.Empty(t, errs)
		assert.Contains(t, bucket, "lp1_digital_support")
		assert.NotContains(t, bucket, "ca1_training")
	})

	t.Run("both requires both sections", func(t *testing.T) {
		_, errs := ValidateRoleSpecific("both", fullLegalForm())
		assert.NotEmpty(t, errs, "customs section missing should fail")

		bucket, errs := ValidateRoleSpecific("both", mergeForms(fullLegalForm(), fullCustomsForm()))
		assert.Empty(t, errs)
		assert.Contains(t, bucket, "lp1_digital_support")
		assert.Contains(t, bucket, "ca1_training")
	})

	t.Run("missing grid row fails", func(t *testing.T) {
		form := fullLegalForm()
		form.Del("lp2_" + catalog.LP2Functions[0].Key)
		_, errs := ValidateRoleSpecific("legal", form)
		assert.NotEmpty(t, errs)
	})

	t.Run("lp5 drill-down required for challenging functions", func(t *testing.T) {
		form := fullLegalForm()
		fn := catalog.LP2Functions[0].Key
		form.Set("lp2_"+fn, "major_challenge")

		// Not shown at all: error.
		_, errs := ValidateRoleSpecific("legal", form)
		assert.NotEmpty(t, errs)

		// Shown but no tax type ticked: error.
		form.Set("lp5_visible", "1")
		_, errs = ValidateRoleSpecific("legal", form)
		assert.NotEmpty(t, errs)

		form.Set("lp5_"+fn+"_income", "1")
		bucket, errs := ValidateRoleSpecific("legal", form)
		assert.Empty(t, errs)
		lp5, ok := bucket["lp5_tax_types"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, lp5, fn)
	})

	t.Run("lp7 cap enforced", func(t *testing.T) {
		form := fullLegalForm()
		form.Del("lp7_common_problems")
		for i := 0; i < catalog.LP7MaxSelections+1; i++ {
			form.Add("lp7_common_problems", catalog.LP7CommonProblems[i].Code)
		}
		_, errs := ValidateRoleSpecific("legal", form)
		assert.NotEmpty(t, errs)
	})

	t.Run("ca7 no_challenges is exclusive", func(t *testing.T) {
		form := fullCustomsForm()
		form.Del("ca7_procedure_challenges")
		form.Add("ca7_procedure_challenges", catalog.CA7NoChallengesCode)
		form.Add("ca7_procedure_challenges", "other")
		form.Set("ca7_other_text", "something")
		_, errs := ValidateRoleSpecific("customs", form)
		assert.NotEmpty(t, errs)
	})

	t.Run("ca7 other needs explanation", func(t *testing.T) {
		form := fullCustomsForm()
		form.Add("ca7_procedure_challenges", "other")
		_, errs := ValidateRoleSpecific("customs", form)
		assert.NotEmpty(t, errs)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		_, errs := ValidateRoleSpecific("", url.Values{})
		assert.NotEmpty(t, errs)
	})
}

func TestValidateCrossSystem(t *testing.T) {
	t.Run("skip writes sentinel", func(t *testing.T) {
		bucket, errs := ValidateCrossSystem("skip_section", url.Values{})
		assert.Empty(t, errs)
		assert.Equal(t, true, bucket["skipped"])
		assert.NotEmpty(t, bucket["timestamp"])
	})

	t.Run("submit requires both answers", func(t *testing.T) {
		form := url.Values{}
		form.Set("xs1_data_discrepancy", "often")
		_, errs := ValidateCrossSystem("submit", form)
		assert.NotEmpty(t, errs)

		form.Set("xs2_policy_consistency", "sometimes")
		bucket, errs := ValidateCrossSystem("submit", form)
		assert.Empty(t, errs)
		assert.NotEmpty(t, bucket["completed_at"])
		assert.NotContains(t, bucket, "skipped")
	})

	t.Run("draft may be partial", func(t *testing.T) {
		form := url.Values{}
		form.Set("xs1_data_discrepancy", "rarely")
		bucket, errs := ValidateCrossSystem("save_draft", form)
		assert.Empty(t, errs)
		assert.Equal(t, true, bucket["saved_as_draft"])
		assert.NotContains(t, bucket, "completed_at")
	})
}

func TestValidateFinalSubmission(t *testing.T) {
	complete := func() *State {
		return &State{
			SurveyStarted: true,
			RespondentInfo: map[string]any{
				"full_name":          "Ayesha Khan",
				"professional_roles": []any{"legal"},
			},
			GenericAnswers: map[string]any{
				"g1_policy_impact":     map[string]any{"service_delivery": "positive"},
				"g2_system_impact":     map[string]any{"workflow_efficiency": "neutral"},
				"g3_technical_issues":  "rarely",
				"g5_digital_literacy":  "no_impact",
				"g6_challenged_groups": []any{"salaried_class"},
			},
			RoleSpecificAnswers: map[string]any{"lp1_digital_support": "moderate_extent"},
			CrossSystemAnswers:  map[string]any{"skipped": true, "timestamp": "2026-08-30T00:00:00Z"},
		}
	}

	t.Run("complete state passes", func(t *testing.T) {
		assert.Empty(t, ValidateFinalSubmission(complete()))
	})

	t.Run("missing role answers fail", func(t *testing.T) {
		st := complete()
		st.RoleSpecificAnswers = map[string]any{}
		assert.NotEmpty(t, ValidateFinalSubmission(st))
	})

	t.Run("both role needs both sections", func(t *testing.T) {
		st := complete()
		st.RespondentInfo["professional_roles"] = []any{"legal", "customs"}
		errs := ValidateFinalSubmission(st)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "Customs")
	})

	t.Run("missing cross-system fails", func(t *testing.T) {
		st := complete()
		st.CrossSystemAnswers = map[string]any{}
		assert.NotEmpty(t, ValidateFinalSubmission(st))
	})
}
