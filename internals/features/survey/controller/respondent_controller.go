package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/dto"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

func (sc *SurveyController) GetRespondentInfo(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepRespondentInfo); !ok {
		return redir
	}
	return renderStep(c, StepRespondentInfo, fiber.Map{
		"answers": st.RespondentInfo,
		"options": fiber.Map{
			"professional_roles": catalog.ProfessionalRoles,
			"provinces":          catalog.Provinces,
			"districts":          catalog.DistrictsByProvince,
			"districts_flat":     catalog.AllDistricts(),
			"experience":         catalog.ExperienceOptions,
			"practice_areas":     catalog.PracticeAreas,
			"kii_consent":        catalog.KiiConsentOptions,
		},
	})
}

func (sc *SurveyController) PostRespondentInfo(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepRespondentInfo); !ok {
		return redir
	}

	form := helper.ParseForm(c)
	req := &dto.RespondentInfoRequest{
		FullName:          helper.Sanitize(form.Get("full_name")),
		Email:             strings.TrimSpace(form.Get("email")),
		Mobile:            strings.TrimSpace(form.Get("mobile")),
		ProfessionalRoles: form["professional_roles"],
		Province:          strings.TrimSpace(form.Get("province")),
		District:          helper.Sanitize(form.Get("district")),
		LegalExperience:   strings.TrimSpace(form.Get("legal_experience")),
		CustomsExperience: strings.TrimSpace(form.Get("customs_experience")),
		PracticeAreas:     form["practice_areas"],
		KiiConsent:        strings.TrimSpace(form.Get("kii_consent")),
	}

	if errs := wizard.ValidateRespondentInfo(sc.Validate, req); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	st.RespondentInfo = req.ToBucket()
	if ok, err := saveState(c, sess, st); !ok {
		return err
	}
	return advance(c, "/survey/generic-questions")
}
