package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"taxsurvey_backend/internals/features/survey/progress"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

// Wizard step numbers, used for gating and the progress context.
const (
	StepWelcome        = 1
	StepRespondentInfo = 2
	StepGeneric        = 3
	StepRoleSpecific   = 4
	StepCrossSystem    = 5
	StepFinalRemarks   = 6
)

type SurveyController struct {
	DB       *gorm.DB
	Sessions *session.Store
	Validate *validator.Validate
}

func NewSurveyController(db *gorm.DB, sessions *session.Store, validate *validator.Validate) *SurveyController {
	return &SurveyController{DB: db, Sessions: sessions, Validate: validate}
}

func (sc *SurveyController) session(c *fiber.Ctx) (*session.Session, error) {
	return sc.Sessions.Get(c)
}

// wantsJSON selects the asynchronous response mode.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Get("X-Requested-With") == "XMLHttpRequest"
}

// advance signals success: a redirect for full-page navigation, a small JSON
// status object for AJAX clients.
func advance(c *fiber.Ctx, target string) error {
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"status": "success", "redirect": target})
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// renderStep returns the JSON render context for a step: progress indicator
// plus whatever the step adds (options, previously entered answers, errors).
func renderStep(c *fiber.Ctx, step int, extra fiber.Map) error {
	ctx := progress.BuildContext(step, progress.DefaultTotalSteps)
	payload := fiber.Map{"progress": ctx, "current_step": step}
	for k, v := range extra {
		payload[k] = v
	}
	return helper.JsonOK(c, "OK", payload)
}

// retryError is the per-step catch: log with the session identifier, answer
// with a generic try-again message instead of a raw server error.
func retryError(c *fiber.Ctx, sess *session.Session, err error) error {
	sid := "unknown"
	if sess != nil {
		sid = sess.ID()
	}
	log.Printf("[ERROR] survey step failed (session %s): %v", sid, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

// guardStep enforces the linear prerequisite chain. It redirects to the
// welcome page (or answers JSON for AJAX clients) when an earlier step is
// missing, and reports whether the request may proceed.
func guardStep(c *fiber.Ctx, st *wizard.State, step int) (bool, error) {
	ok := true
	switch {
	case step >= StepRespondentInfo && !st.SurveyStarted:
		ok = false
	case step >= StepGeneric && len(st.RespondentInfo) == 0:
		ok = false
	case step >= StepRoleSpecific && len(st.GenericAnswers) == 0:
		ok = false
	case step >= StepCrossSystem && len(st.RoleSpecificAnswers) == 0:
		ok = false
	}
	// Final remarks only needs the survey to have been started; its own
	// confirm action re-checks everything across buckets.
	if step == StepFinalRemarks {
		ok = st.SurveyStarted
	}
	if ok {
		return true, nil
	}
	if wantsJSON(c) {
		return false, helper.JsonError(c, fiber.StatusConflict, "Please complete the earlier steps first.")
	}
	return false, c.Redirect("/survey/welcome", fiber.StatusSeeOther)
}

// saveState persists the wizard state and the underlying session, surfacing
// the size-guard overflow as a retryable user error.
func saveState(c *fiber.Ctx, sess *session.Session, st *wizard.State) (bool, error) {
	if err := st.Save(sess); err != nil {
		// Trimmed session still needs to be flushed.
		if saveErr := sess.Save(); saveErr != nil {
			log.Printf("[ERROR] session save after trim failed (session %s): %v", sess.ID(), saveErr)
		}
		return false, helper.JsonError(c, fiber.StatusRequestEntityTooLarge,
			"Your answers exceed the session size limit. Earlier answers were reset; please start again.")
	}
	if err := sess.Save(); err != nil {
		return false, retryError(c, sess, err)
	}
	return true, nil
}

// validationFailed redisplays the current step with itemized errors.
func validationFailed(c *fiber.Ctx, errs []string) error {
	return helper.JsonValidationError(c, "Please correct the errors below.", errs)
}
