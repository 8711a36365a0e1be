// Package assembler flattens the wizard session state into one
// SurveyResponse row. Session values may arrive as native maps/slices or as
// JSON-shaped strings left by older clients, so every read is defensive, and
// legacy field names from earlier questionnaire revisions are remapped onto
// the canonical columns instead of being dropped.
package assembler

import (
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	model "taxsurvey_backend/internals/features/survey/model"
	"taxsurvey_backend/internals/features/survey/wizard"
)

// legacyKeyMap translates session keys written by earlier questionnaire
// revisions to their canonical column names.
var legacyKeyMap = map[string]string{
	"lp13_feedback":            "survey_feedback",
	"system_reliability":       "ca9_system_reliability",
	"ca4_procedure_challenges": "ca7_procedure_challenges",
	"ca4_other_text":           "ca7_other_text",
}

// Assemble builds the response row from the session state plus the step-6
// form fields. It never touches the database; the caller persists the result.
func Assemble(st *wizard.State, finalRemarks, surveyFeedback string) *model.SurveyResponse {
	b := &builder{values: map[string]any{}}
	b.merge(st.RespondentInfo)
	b.merge(st.GenericAnswers)
	b.merge(st.RoleSpecificAnswers)

	resp := &model.SurveyResponse{
		FullName:          b.str("full_name"),
		Email:             b.str("email"),
		District:          b.str("district"),
		Mobile:            b.str("mobile"),
		Province:          b.str("province"),
		ProfessionalRole:  st.Role(),
		ProfessionalRoles: b.list("professional_roles"),
		ExperienceLegal:   b.str("legal_experience"),
		ExperienceCustoms: b.str("customs_experience"),
		PracticeAreas:     b.list("practice_areas"),
		KiiConsent:        b.str("kii_consent"),

		G1PolicyImpact:     b.jsonMap("g1_policy_impact"),
		G2SystemImpact:     b.jsonMap("g2_system_impact"),
		G3TechnicalIssues:  b.str("g3_technical_issues"),
		G4Disruption:       b.str("g4_disruption"),
		G5DigitalLiteracy:  b.str("g5_digital_literacy"),
		G6ChallengedGroups: b.list("g6_challenged_groups"),
		G6OtherText:        b.str("g6_other_text"),

		Lp1DigitalSupport:      b.str("lp1_digital_support"),
		Lp2Challenges:          b.jsonMap("lp2_challenges"),
		Lp3Challenges:          b.jsonMap("lp3_challenges"),
		Lp4Challenges:          b.jsonMap("lp4_challenges"),
		Lp5TaxTypes:            b.jsonMap("lp5_tax_types"),
		Lp5Visible:             b.boolean("lp5_visible"),
		Lp6PriorityImprovement: b.str("lp6_priority_improvement"),
		Lp7CommonProblems:      b.list("lp7_common_problems"),
		Lp7OtherText:           b.str("lp7_other_text"),

		Ca1Training:            b.str("ca1_training"),
		Ca2SystemIntegration:   b.str("ca2_system_integration"),
		Ca3Challenges:          b.jsonMap("ca3_challenges"),
		Ca4Effectiveness:       b.jsonMap("ca4_effectiveness"),
		Ca5PolicyImpact:        b.str("ca5_policy_impact"),
		Ca6BiggestChallenge:    b.str("ca6_biggest_challenge"),
		Ca6Improvement:         b.str("ca6_improvement"),
		Ca7ProcedureChallenges: b.list("ca7_procedure_challenges"),
		Ca7OtherText:           b.str("ca7_other_text"),
		Ca9SystemReliability:   b.str("ca9_system_reliability"),

		FinalRemarks:   finalRemarks,
		SurveyFeedback: surveyFeedback,
	}

	if len(st.CrossSystemAnswers) > 0 {
		resp.CrossSystemAnswers = datatypes.JSONMap(st.CrossSystemAnswers)
	}

	b.applyLegacy(resp)
	b.logLeftovers()
	return resp
}

/* ===============================
   Builder with consumed-key tracking
=================================*/

type builder struct {
	values   map[string]any
	consumed map[string]bool
}

func (b *builder) merge(bucket map[string]any) {
	for k, v := range bucket {
		b.values[k] = v
	}
}

func (b *builder) consume(key string) (any, bool) {
	if b.consumed == nil {
		b.consumed = map[string]bool{}
	}
	v, ok := b.values[key]
	if ok {
		b.consumed[key] = true
	}
	return v, ok
}

func (b *builder) str(key string) string {
	v, ok := b.consume(key)
	if !ok {
		return ""
	}
	return asString(v)
}

func (b *builder) boolean(key string) bool {
	v, ok := b.consume(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || t == "true"
	case float64:
		return t != 0
	default:
		return false
	}
}

func (b *builder) jsonMap(key string) datatypes.JSONMap {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	m := asMap(v)
	if len(m) == 0 {
		return nil
	}
	return datatypes.JSONMap(m)
}

func (b *builder) list(key string) datatypes.JSONSlice[string] {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	l := asList(v)
	if len(l) == 0 {
		return nil
	}
	return datatypes.NewJSONSlice(l)
}

// applyLegacy fills canonical columns from legacy-named leftovers, but never
// overwrites a value the current revision already supplied.
func (b *builder) applyLegacy(resp *model.SurveyResponse) {
	for legacy, canonical := range legacyKeyMap {
		v, ok := b.values[legacy]
		if !ok || b.consumed[legacy] {
			continue
		}
		switch canonical {
		case "survey_feedback":
			if resp.SurveyFeedback == "" {
				resp.SurveyFeedback = asString(v)
			}
		case "ca9_system_reliability":
			if resp.Ca9SystemReliability == "" {
				resp.Ca9SystemReliability = asString(v)
			}
		case "ca7_procedure_challenges":
			if len(resp.Ca7ProcedureChallenges) == 0 {
				if l := asList(v); len(l) > 0 {
					resp.Ca7ProcedureChallenges = datatypes.NewJSONSlice(l)
				}
			}
		case "ca7_other_text":
			if resp.Ca7OtherText == "" {
				resp.Ca7OtherText = asString(v)
			}
		}
		log.Printf("[INFO] remapped legacy session key %s -> %s", legacy, canonical)
		b.consumed[legacy] = true
	}
}

// logLeftovers reports unmapped session keys; dropping data silently would
// make schema drift invisible.
func (b *builder) logLeftovers() {
	for k := range b.values {
		if !b.consumed[k] {
			log.Printf("[WARN] unmapped session key dropped from submission: %s", k)
		}
	}
}

/* ===============================
   Defensive coercions
=================================*/

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		if t == "" {
			return nil
		}
		out := map[string]any{}
		if err := sonic.Unmarshal([]byte(t), &out); err != nil {
			log.Printf("[WARN] invalid JSON-shaped map in session, ignoring: %v", err)
			return nil
		}
		return out
	default:
		return nil
	}
}

func asList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		return wizard.ToStringList(t)
	case string:
		if t == "" {
			return nil
		}
		var out []string
		if err := sonic.Unmarshal([]byte(t), &out); err != nil {
			log.Printf("[WARN] invalid JSON-shaped list in session, ignoring: %v", err)
			return nil
		}
		return out
	default:
		return nil
	}
}
