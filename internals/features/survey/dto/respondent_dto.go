package dto

// RespondentInfoRequest carries step-2 form fields. Option-code membership
// (roles, province, district, experience) is checked against the catalog in
// the wizard validators; the tags here cover presence and shape only.
type RespondentInfoRequest struct {
	FullName          string   `form:"full_name" json:"full_name" validate:"required,max=200"`
	Email             string   `form:"email" json:"email" validate:"required,email,max=254"`
	Mobile            string   `form:"mobile" json:"mobile" validate:"max=20"`
	ProfessionalRoles []string `form:"professional_roles" json:"professional_roles" validate:"required,min=1"`
	Province          string   `form:"province" json:"province" validate:"required"`
	District          string   `form:"district" json:"district" validate:"required,max=100"`
	LegalExperience   string   `form:"legal_experience" json:"legal_experience"`
	CustomsExperience string   `form:"customs_experience" json:"customs_experience"`
	PracticeAreas     []string `form:"practice_areas" json:"practice_areas"`
	KiiConsent        string   `form:"kii_consent" json:"kii_consent" validate:"required"`
}

// ToBucket flattens the request into the session bucket shape.
func (r *RespondentInfoRequest) ToBucket() map[string]any {
	return map[string]any{
		"full_name":          r.FullName,
		"email":              r.Email,
		"mobile":             r.Mobile,
		"professional_roles": r.ProfessionalRoles,
		"province":           r.Province,
		"district":           r.District,
		"legal_experience":   r.LegalExperience,
		"customs_experience": r.CustomsExperience,
		"practice_areas":     r.PracticeAreas,
		"kii_consent":        r.KiiConsent,
	}
}
