package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"taxsurvey_backend/internals/features/survey/assembler"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

func (sc *SurveyController) GetFinalRemarks(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepFinalRemarks); !ok {
		return redir
	}
	return renderStep(c, StepFinalRemarks, fiber.Map{
		"final_remarks":          st.FinalRemarks,
		"final_remarks_saved_at": st.FinalRemarksSavedAt,
	})
}

// PostFinalRemarks handles the step-6 intents: save_draft keeps the free
// text in the session only, confirm_submit assembles and persists the full
// response, anything else redisplays unchanged.
func (sc *SurveyController) PostFinalRemarks(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepFinalRemarks); !ok {
		return redir
	}

	remarks := helper.Sanitize(c.FormValue("final_remarks"))
	feedback := helper.Sanitize(c.FormValue("survey_feedback"))

	switch c.FormValue("action") {
	case "save_draft":
		st.FinalRemarks = remarks
		st.FinalRemarksSavedAt = time.Now().UTC().Format(time.RFC3339)
		if ok, err := saveState(c, sess, st); !ok {
			return err
		}
		if wantsJSON(c) {
			return c.JSON(fiber.Map{"status": "success", "message": "Draft saved."})
		}
		return c.Redirect("/survey/final-remarks", fiber.StatusSeeOther)

	case "confirm_submit":
		return sc.confirmSubmit(c, sess, st, remarks, feedback)

	default:
		// Unrecognized intent: redisplay without touching state.
		return sc.GetFinalRemarks(c)
	}
}

// confirmSubmit runs the cross-step validation, assembles the response row
// and persists it. The session is cleared down to the reference number only
// after the insert succeeds; a failed insert keeps everything so the
// respondent can retry.
func (sc *SurveyController) confirmSubmit(c *fiber.Ctx, sess *session.Session, st *wizard.State, remarks, feedback string) error {
	if errs := wizard.ValidateFinalSubmission(st); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	resp := assembler.Assemble(st, remarks, feedback)
	if err := sc.DB.Create(resp).Error; err != nil {
		log.Printf("[ERROR] submission persist failed (session %s): %v", sess.ID(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError,
			"Your submission could not be saved. Your answers are still here; please try again.")
	}

	st.ReferenceNumber = resp.ReferenceNumber
	st.ClearExceptReference(sess)
	if err := sess.Save(); err != nil {
		// The row is in; a failed session flush only costs the confirmation
		// page its reference lookup.
		log.Printf("[WARN] session clear after submit failed (session %s): %v", sess.ID(), err)
	}

	log.Printf("[INFO] survey submitted: %s (session %s)", resp.ReferenceNumber, sess.ID())
	if wantsJSON(c) {
		return helper.JsonCreated(c, "Submission received", fiber.Map{
			"reference_number": resp.ReferenceNumber,
			"redirect":         "/survey/confirmation",
		})
	}
	return c.Redirect("/survey/confirmation", fiber.StatusSeeOther)
}

// GetConfirmation shows the reference number left behind by a successful
// submission; without one there is nothing to confirm.
func (sc *SurveyController) GetConfirmation(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if st.ReferenceNumber == "" {
		if wantsJSON(c) {
			return helper.JsonError(c, fiber.StatusNotFound, "No submission found for this session.")
		}
		return c.Redirect("/survey/welcome", fiber.StatusSeeOther)
	}
	return helper.JsonOK(c, "Submission received", fiber.Map{
		"reference_number": st.ReferenceNumber,
	})
}
