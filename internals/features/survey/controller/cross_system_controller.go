package controller

import (
	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

func (sc *SurveyController) GetCrossSystem(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepCrossSystem); !ok {
		return redir
	}
	return renderStep(c, StepCrossSystem, fiber.Map{
		"answers": st.CrossSystemAnswers,
		"options": fiber.Map{"frequency": catalog.XSOptions},
	})
}

// PostCrossSystem handles the three step-5 intents: submit advances, skip
// records the sentinel and advances, save_draft stores partial answers and
// redisplays the same step.
func (sc *SurveyController) PostCrossSystem(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepCrossSystem); !ok {
		return redir
	}

	action := c.FormValue("action")
	switch action {
	case "skip_section", "save_draft":
	default:
		action = "submit"
	}

	bucket, errs := wizard.ValidateCrossSystem(action, helper.ParseForm(c))
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	st.CrossSystemAnswers = bucket
	if ok, err := saveState(c, sess, st); !ok {
		return err
	}

	if action == "save_draft" {
		if wantsJSON(c) {
			return c.JSON(fiber.Map{"status": "success", "message": "Draft saved."})
		}
		return c.Redirect("/survey/cross-system-perspectives", fiber.StatusSeeOther)
	}
	return advance(c, "/survey/final-remarks")
}
