package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurveyResponse is the one wide record created at final confirmed
// submission. Answers collected step by step live in the session until then;
// nothing is persisted for abandoned sessions.
type SurveyResponse struct {
	SurveyResponseID uint `gorm:"column:survey_response_id;primaryKey" json:"survey_response_id"`

	// Respondent information
	FullName          string                      `gorm:"column:full_name;size:200;not null" json:"full_name"`
	Email             string                      `gorm:"column:email;size:254;not null;index" json:"email"`
	District          string                      `gorm:"column:district;size:100;not null" json:"district"`
	Mobile            string                      `gorm:"column:mobile;size:20" json:"mobile"`
	Province          string                      `gorm:"column:province;size:20;not null;index" json:"province"`
	ProfessionalRole  string                      `gorm:"column:professional_role;size:10;not null;index" json:"professional_role"`
	ProfessionalRoles datatypes.JSONSlice[string] `gorm:"column:professional_roles" json:"professional_roles"`
	ExperienceLegal   string                      `gorm:"column:experience_legal;size:20" json:"experience_legal"`
	ExperienceCustoms string                      `gorm:"column:experience_customs;size:20" json:"experience_customs"`
	PracticeAreas     datatypes.JSONSlice[string] `gorm:"column:practice_areas" json:"practice_areas"`
	KiiConsent        string                      `gorm:"column:kii_consent;size:3" json:"kii_consent"`

	// Generic questions (G1-G6)
	G1PolicyImpact     datatypes.JSONMap           `gorm:"column:g1_policy_impact" json:"g1_policy_impact"`
	G2SystemImpact     datatypes.JSONMap           `gorm:"column:g2_system_impact" json:"g2_system_impact"`
	G3TechnicalIssues  string                      `gorm:"column:g3_technical_issues;size:30" json:"g3_technical_issues"`
	G4Disruption       string                      `gorm:"column:g4_disruption;size:30" json:"g4_disruption"`
	G5DigitalLiteracy  string                      `gorm:"column:g5_digital_literacy;size:30" json:"g5_digital_literacy"`
	G6ChallengedGroups datatypes.JSONSlice[string] `gorm:"column:g6_challenged_groups" json:"g6_challenged_groups"`
	G6OtherText        string                      `gorm:"column:g6_other_text;type:text" json:"g6_other_text"`

	// Legal practitioner questions (LP1-LP7)
	Lp1DigitalSupport      string                      `gorm:"column:lp1_digital_support;size:30" json:"lp1_digital_support"`
	Lp2Challenges          datatypes.JSONMap           `gorm:"column:lp2_challenges" json:"lp2_challenges"`
	Lp3Challenges          datatypes.JSONMap           `gorm:"column:lp3_challenges" json:"lp3_challenges"`
	Lp4Challenges          datatypes.JSONMap           `gorm:"column:lp4_challenges" json:"lp4_challenges"`
	Lp5TaxTypes            datatypes.JSONMap           `gorm:"column:lp5_tax_types" json:"lp5_tax_types"`
	Lp5Visible             bool                        `gorm:"column:lp5_visible;default:false" json:"lp5_visible"`
	Lp6PriorityImprovement string                      `gorm:"column:lp6_priority_improvement;type:text" json:"lp6_priority_improvement"`
	Lp7CommonProblems      datatypes.JSONSlice[string] `gorm:"column:lp7_common_problems" json:"lp7_common_problems"`
	Lp7OtherText           string                      `gorm:"column:lp7_other_text;type:text" json:"lp7_other_text"`

	// Customs agent questions (CA1-CA9)
	Ca1Training            string                      `gorm:"column:ca1_training;size:50" json:"ca1_training"`
	Ca2SystemIntegration   string                      `gorm:"column:ca2_system_integration;size:50" json:"ca2_system_integration"`
	Ca3Challenges          datatypes.JSONMap           `gorm:"column:ca3_challenges" json:"ca3_challenges"`
	Ca4Effectiveness       datatypes.JSONMap           `gorm:"column:ca4_effectiveness" json:"ca4_effectiveness"`
	Ca5PolicyImpact        string                      `gorm:"column:ca5_policy_impact;size:30" json:"ca5_policy_impact"`
	Ca6BiggestChallenge    string                      `gorm:"column:ca6_biggest_challenge;size:50" json:"ca6_biggest_challenge"`
	Ca6Improvement         string                      `gorm:"column:ca6_improvement;type:text" json:"ca6_improvement"`
	Ca7ProcedureChallenges datatypes.JSONSlice[string] `gorm:"column:ca7_procedure_challenges" json:"ca7_procedure_challenges"`
	Ca7OtherText           string                      `gorm:"column:ca7_other_text;type:text" json:"ca7_other_text"`
	Ca9SystemReliability   string                      `gorm:"column:ca9_system_reliability;size:30" json:"ca9_system_reliability"`

	// Cross-system perspectives (XS1-XS2), including the skip sentinel
	CrossSystemAnswers datatypes.JSONMap `gorm:"column:cross_system_answers" json:"cross_system_answers"`

	// Final remarks and post-survey feedback. SurveyFeedback and KiiConsent
	// are the only admin-editable fields after submission.
	FinalRemarks   string `gorm:"column:final_remarks;type:text" json:"final_remarks"`
	SurveyFeedback string `gorm:"column:survey_feedback;type:text" json:"survey_feedback"`

	// Metadata
	SubmissionDate  time.Time `gorm:"column:submission_date;autoCreateTime;index" json:"submission_date"`
	ReferenceNumber string    `gorm:"column:reference_number;size:20;uniqueIndex;not null" json:"reference_number"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// BeforeCreate assigns the reference code exactly once. An already-set code
// is never regenerated.
func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ReferenceNumber == "" {
		r.ReferenceNumber = NewReferenceNumber()
	}
	return nil
}

// NewReferenceNumber builds the human-shown reference code, e.g. FBR3FA81C02.
func NewReferenceNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "FBR" + strings.ToUpper(raw[:8])
}

// HasLegalAnswers reports whether the legal practitioner section carries any
// data.
func (r *SurveyResponse) HasLegalAnswers() bool {
	if r.ProfessionalRole != "legal" && r.ProfessionalRole != "both" {
		return false
	}
	return r.Lp1DigitalSupport != "" ||
		len(r.Lp2Challenges) > 0 || len(r.Lp3Challenges) > 0 || len(r.Lp4Challenges) > 0 ||
		len(r.Lp5TaxTypes) > 0 || r.Lp5Visible ||
		r.Lp6PriorityImprovement != "" ||
		len(r.Lp7CommonProblems) > 0 || r.Lp7OtherText != ""
}

// HasCustomsAnswers reports whether the customs agent section carries any
// data.
func (r *SurveyResponse) HasCustomsAnswers() bool {
	if r.ProfessionalRole != "customs" && r.ProfessionalRole != "both" {
		return false
	}
	return r.Ca1Training != "" || r.Ca2SystemIntegration != "" ||
		len(r.Ca3Challenges) > 0 || len(r.Ca4Effectiveness) > 0 ||
		r.Ca5PolicyImpact != "" || r.Ca6BiggestChallenge != "" || r.Ca6Improvement != "" ||
		len(r.Ca7ProcedureChallenges) > 0 || r.Ca7OtherText != "" ||
		r.Ca9SystemReliability != ""
}

// CrossSystemSkipped reports whether the respondent visited the cross-system
// section and explicitly declined it. Distinct from never having reached it,
// in which case CrossSystemAnswers is empty.
func (r *SurveyResponse) CrossSystemSkipped() bool {
	skipped, _ := r.CrossSystemAnswers["skipped"].(bool)
	return skipped
}

// HasCrossSystemAnswers reports whether actual cross-system answers were
// provided (not skipped, not empty).
func (r *SurveyResponse) HasCrossSystemAnswers() bool {
	return len(r.CrossSystemAnswers) > 0 && !r.CrossSystemSkipped()
}
