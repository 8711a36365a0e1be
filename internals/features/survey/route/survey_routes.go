package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"taxsurvey_backend/internals/features/survey/controller"
)

// SurveyRoutes wires the public wizard: one GET/POST pair per step plus the
// confirmation page and the AJAX autosave endpoint.
func SurveyRoutes(app fiber.Router, db *gorm.DB, sessions *session.Store, validate *validator.Validate) {
	surveyCtrl := controller.NewSurveyController(db, sessions, validate)

	survey := app.Group("/survey")
	survey.Get("/welcome", surveyCtrl.GetWelcome)
	survey.Post("/welcome", surveyCtrl.PostWelcome)
	survey.Get("/respondent-info", surveyCtrl.GetRespondentInfo)
	survey.Post("/respondent-info", surveyCtrl.PostRespondentInfo)
	survey.Get("/generic-questions", surveyCtrl.GetGenericQuestions)
	survey.Post("/generic-questions", surveyCtrl.PostGenericQuestions)
	survey.Get("/role-specific-questions", surveyCtrl.GetRoleSpecific)
	survey.Post("/role-specific-questions", surveyCtrl.PostRoleSpecific)
	survey.Get("/cross-system-perspectives", surveyCtrl.GetCrossSystem)
	survey.Post("/cross-system-perspectives", surveyCtrl.PostCrossSystem)
	survey.Get("/final-remarks", surveyCtrl.GetFinalRemarks)
	survey.Post("/final-remarks", surveyCtrl.PostFinalRemarks)
	survey.Get("/confirmation", surveyCtrl.GetConfirmation)
	survey.Post("/save-progress", surveyCtrl.SaveProgress)
}
