package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	analyticsRoute "taxsurvey_backend/internals/features/analytics/route"
	surveyRoute "taxsurvey_backend/internals/features/survey/route"
)

// SetupRoutes assembles the whole HTTP surface: the public survey wizard and
// the staff analytics API under /api/a.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	sessions := session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyLookup:      "cookie:survey_session",
	})
	validate := validator.New()

	surveyRoute.SurveyRoutes(app, db, sessions, validate)

	api := app.Group("/api/a")
	analyticsRoute.AnalyticsRoutes(api, db, validate)

	// Bare root lands on the wizard entry.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/survey/welcome", fiber.StatusSeeOther)
	})
}
