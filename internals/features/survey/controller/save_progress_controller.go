package controller

import (
	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/dto"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

// allowedBuckets whitelists what the autosave endpoint may write. Anything
// else in the body is rejected, not merged.
var allowedBuckets = map[string]bool{
	wizard.KeyRespondentInfo: true,
	wizard.KeyGenericAnswers: true,
	wizard.KeyRoleSpecific:   true,
	wizard.KeyCrossSystem:    true,
}

// SaveProgress merges a partial bucket from an AJAX autosave into the
// session. Values are stored as-is; the step validators re-check everything
// when the step is actually submitted.
func (sc *SurveyController) SaveProgress(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if !st.SurveyStarted {
		return helper.JsonError(c, fiber.StatusConflict, "Survey has not been started.")
	}

	var req dto.SaveProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if !allowedBuckets[req.Bucket] {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown session bucket.")
	}
	if len(req.Data) == 0 {
		return c.JSON(fiber.Map{"status": "success", "message": "Nothing to save."})
	}

	target := st.RespondentInfo
	switch req.Bucket {
	case wizard.KeyGenericAnswers:
		target = st.GenericAnswers
	case wizard.KeyRoleSpecific:
		target = st.RoleSpecificAnswers
	case wizard.KeyCrossSystem:
		target = st.CrossSystemAnswers
	}
	for k, v := range req.Data {
		target[k] = v
	}

	if ok, err := saveState(c, sess, st); !ok {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Progress saved."})
}
