package controller

import (
	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/wizard"
)

// GetWelcome is the wizard entry point; no prerequisite.
func (sc *SurveyController) GetWelcome(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	return renderStep(c, StepWelcome, fiber.Map{
		"survey_started": st.SurveyStarted,
	})
}

// PostWelcome marks the survey as started. An explicit restart flushes every
// prior answer first so a respondent can begin over cleanly.
func (sc *SurveyController) PostWelcome(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)

	if c.FormValue("start_new_survey") == "1" {
		for _, key := range sess.Keys() {
			sess.Delete(key)
		}
		st = &wizard.State{}
	}

	st.SurveyStarted = true
	if ok, err := saveState(c, sess, st); !ok {
		return err
	}
	return advance(c, "/survey/respondent-info")
}
