package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"taxsurvey_backend/internals/configs"
	"taxsurvey_backend/internals/features/survey/dto"
	helper "taxsurvey_backend/internals/helpers"
)

const staffTokenTTL = 12 * time.Hour

type AuthController struct {
	Validate *validator.Validate
}

func NewAuthController(validate *validator.Validate) *AuthController {
	return &AuthController{Validate: validate}
}

// Login checks the env-configured staff credentials and issues a short-lived
// JWT with the staff role.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password are required.")
	}

	if configs.StaffEmail == "" || configs.StaffPasswordHash == "" {
		log.Printf("[ERROR] staff login attempted but STAFF_EMAIL/STAFF_PASSWORD_HASH not configured")
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Staff access is not configured.")
	}
	if req.Email != configs.StaffEmail {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(configs.StaffPasswordHash), []byte(req.Password)); err != nil {
		log.Printf("[WARN] failed staff login for %s", req.Email)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  req.Email,
		"role": "staff",
		"iat":  now.Unix(),
		"exp":  now.Add(staffTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("[ERROR] sign staff token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not issue token.")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "staff_token",
		Value:    token,
		Expires:  now.Add(staffTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token":      token,
		"expires_in": int(staffTokenTTL.Seconds()),
	})
}
