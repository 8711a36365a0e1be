package wizard

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/dto"
)

// ValidateRespondentInfo runs the struct tags first, then the catalog
// membership rules the tags cannot express. Returned messages are
// field-level and safe to show to the respondent.
func ValidateRespondentInfo(v *validator.Validate, req *dto.RespondentInfoRequest) []string {
	var errs []string

	if err := v.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, respondentFieldMessage(fe))
			}
		} else {
			errs = append(errs, "Invalid respondent information.")
		}
	}

	hasLegal, hasCustoms := false, false
	for _, role := range req.ProfessionalRoles {
		switch role {
		case catalog.RoleLegal:
			hasLegal = true
		case catalog.RoleCustoms:
			hasCustoms = true
		default:
			errs = append(errs, fmt.Sprintf("Unknown professional role: %s", role))
		}
	}

	if hasLegal && req.LegalExperience == "" {
		errs = append(errs, "Years of experience in legal practice is required.")
	}
	if req.LegalExperience != "" && !catalog.IsValid(catalog.ExperienceOptions, req.LegalExperience) {
		errs = append(errs, "Invalid legal experience selection.")
	}
	if hasCustoms && req.CustomsExperience == "" {
		errs = append(errs, "Years of experience in customs practice is required.")
	}
	if req.CustomsExperience != "" && !catalog.IsValid(catalog.ExperienceOptions, req.CustomsExperience) {
		errs = append(errs, "Invalid customs experience selection.")
	}

	if req.Province != "" && !catalog.IsValid(catalog.Provinces, req.Province) {
		errs = append(errs, "Invalid province selection.")
	}

	if req.Province != "" && req.District != "" && catalog.IsValid(catalog.Provinces, req.Province) {
		switch {
		case req.District == catalog.DistrictOther:
			// Free-text escape hatch; data-quality review picks these up.
			log.Printf("[INFO] district for province %q entered as %q", req.Province, catalog.DistrictOther)
		case !catalog.DistrictInProvince(req.Province, req.District):
			errs = append(errs, "Valid district is required for the selected province.")
		}
	}

	for _, area := range req.PracticeAreas {
		if !catalog.IsValid(catalog.PracticeAreas, area) {
			errs = append(errs, fmt.Sprintf("Unknown practice area: %s", area))
		}
	}

	if req.KiiConsent != "" && !catalog.IsValid(catalog.KiiConsentOptions, req.KiiConsent) {
		errs = append(errs, "Invalid interview consent selection.")
	}

	return errs
}

func respondentFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "FullName":
		return "Full name is required."
	case "ProfessionalRoles":
		return "Select at least one professional role."
	case "Province":
		return "Province is required."
	case "District":
		return "District is required."
	case "Email":
		return "Enter a valid email address."
	case "KiiConsent":
		return "Please indicate consent for a follow-up interview."
	default:
		return fmt.Sprintf("Invalid value for %s.", fe.Field())
	}
}
