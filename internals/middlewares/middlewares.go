package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "taxsurvey_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
}
