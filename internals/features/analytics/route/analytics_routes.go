package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"taxsurvey_backend/internals/features/analytics/controller"
	authMiddleware "taxsurvey_backend/internals/middlewares/auth"
)

// AnalyticsRoutes wires the staff surface: login is open, everything else
// sits behind the staff JWT check.
func AnalyticsRoutes(api fiber.Router, db *gorm.DB, validate *validator.Validate) {
	authCtrl := controller.NewAuthController(validate)
	dashCtrl := controller.NewDashboardController(db)

	api.Post("/login", authCtrl.Login)

	staff := api.Group("/", authMiddleware.StaffOnly())
	staff.Get("/dashboard", dashCtrl.Dashboard)
	staff.Get("/stats", dashCtrl.Stats)
	staff.Get("/responses", dashCtrl.Responses)
	staff.Get("/export", dashCtrl.Export)
}
