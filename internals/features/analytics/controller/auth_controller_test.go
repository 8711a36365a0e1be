package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taxsurvey_backend/internals/configs"
	analyticsRoute "taxsurvey_backend/internals/features/analytics/route"
	model "taxsurvey_backend/internals/features/survey/model"
)

func newStaffApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	configs.StaffEmail = "staff@example.com"
	configs.StaffPasswordHash = string(hash)
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.SurveyResponse{}))

	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	analyticsRoute.AnalyticsRoutes(app.Group("/api/a"), db, validator.New())
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) *http.Response {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/api/a/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestStaffLogin(t *testing.T) {
	app := newStaffApp(t)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		resp := login(t, app, "staff@example.com", "secret123")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"token"`)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		resp := login(t, app, "staff@example.com", "wrong")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		resp := login(t, app, "intruder@example.com", "secret123")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStaffEndpointsRequireToken(t *testing.T) {
	app := newStaffApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/a/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	loginResp := login(t, app, "staff@example.com", "secret123")
	require.Equal(t, fiber.StatusOK, loginResp.StatusCode)
	body, err := io.ReadAll(loginResp.Body)
	require.NoError(t, err)
	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(body, &parsed))
	require.NotEmpty(t, parsed.Data.Token)

	req := httptest.NewRequest("GET", "/api/a/stats", nil)
	req.Header.Set("Authorization", "Bearer "+parsed.Data.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/a/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+parsed.Data.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
