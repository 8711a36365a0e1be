package controller

import (
	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

func (sc *SurveyController) GetGenericQuestions(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepGeneric); !ok {
		return redir
	}
	return renderStep(c, StepGeneric, fiber.Map{
		"answers": st.GenericAnswers,
		"options": fiber.Map{
			"sentiments":        catalog.Sentiments,
			"g1_aspects":        catalog.G1Aspects,
			"g2_aspects":        catalog.G2Aspects,
			"g3_frequency":      catalog.G3TechnicalIssuesOptions,
			"g4_disruption":     catalog.G4DisruptionOptions,
			"g5_literacy":       catalog.G5DigitalLiteracyOptions,
			"g6_groups":         catalog.G6ChallengedGroups,
			"g4_trigger_values": catalog.G4DisruptionTriggers,
		},
	})
}

func (sc *SurveyController) PostGenericQuestions(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepGeneric); !ok {
		return redir
	}

	bucket, errs := wizard.ValidateGenericQuestions(helper.ParseForm(c))
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	st.GenericAnswers = bucket
	if ok, err := saveState(c, sess, st); !ok {
		return err
	}
	return advance(c, "/survey/role-specific-questions")
}
