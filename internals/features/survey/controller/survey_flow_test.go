package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taxsurvey_backend/internals/features/survey/catalog"
	model "taxsurvey_backend/internals/features/survey/model"
	surveyRoute "taxsurvey_backend/internals/features/survey/route"
)

type wizardClient struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func newWizardApp(t *testing.T) (*wizardClient, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.SurveyResponse{}))

	app := fiber.New()
	store := session.New(session.Config{KeyLookup: "cookie:survey_session"})
	surveyRoute.SurveyRoutes(app, db, store, validator.New())
	return &wizardClient{t: t, app: app}, db
}

func (wc *wizardClient) do(req *http.Request) *http.Response {
	wc.t.Helper()
	if wc.cookie != "" {
		req.Header.Set("Cookie", wc.cookie)
	}
	resp, err := wc.app.Test(req)
	require.NoError(wc.t, err)
	if sc := resp.Header.Get("Set-Cookie"); sc != "" {
		wc.cookie = strings.Split(sc, ";")[0]
	}
	return resp
}

func (wc *wizardClient) post(path string, form url.Values) *http.Response {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return wc.do(req)
}

func (wc *wizardClient) get(path string) *http.Response {
	return wc.do(httptest.NewRequest("GET", path, nil))
}

func respondentForm() url.Values {
	form := url.Values{}
	form.Set("full_name", "Ayesha Khan")
	form.Set("email", "ayesha@example.com")
	form.Set("mobile", "03001234567")
	form.Add("professional_roles", "legal")
	form.Set("province", "punjab")
	form.Set("district", "Lahore")
	form.Set("legal_experience", "6_10")
	form.Set("kii_consent", "yes")
	return form
}

func genericForm() url.Values {
	form := url.Values{}
	for _, row := range catalog.G1Aspects {
		form.Set("g1_"+row.Key, "positive")
	}
	for _, row := range catalog.G2Aspects {
		form.Set("g2_"+row.Key, "neutral")
	}
	form.Set("g3_technical_issues", "rarely")
	form.Set("g5_digital_literacy", "no_impact")
	form.Add("g6_challenged_groups", "salaried_class")
	return form
}

func legalForm() url.Values {
	form := url.Values{}
	form.Set("lp1_digital_support", "moderate_extent")
	for _, row := range catalog.LP2Functions {
		form.Set("lp2_"+row.Key, "minor_challenge")
	}
	for _, row := range catalog.LP3Functions {
		form.Set("lp3_"+row.Key, "no_challenge")
	}
	for _, row := range catalog.LP4Functions {
		form.Set("lp4_"+row.Key, "minor_challenge")
	}
	form.Set("lp5_visible", "0")
	form.Add("lp7_common_problems", "system_downtime")
	return form
}

func TestStepGatingRedirectsToWelcome(t *testing.T) {
	wc, _ := newWizardApp(t)
	resp := wc.post("/survey/respondent-info", respondentForm())
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/survey/welcome", resp.Header.Get("Location"))
}

func TestFullLegalWizardFlow(t *testing.T) {
	wc, db := newWizardApp(t)

	resp := wc.post("/survey/welcome", url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/survey/respondent-info", resp.Header.Get("Location"))

	resp = wc.post("/survey/respondent-info", respondentForm())
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/survey/generic-questions", resp.Header.Get("Location"))

	resp = wc.post("/survey/generic-questions", genericForm())
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = wc.post("/survey/role-specific-questions", legalForm())
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/survey/cross-system-perspectives", resp.Header.Get("Location"))

	skip := url.Values{}
	skip.Set("action", "skip_section")
	resp = wc.post("/survey/cross-system-perspectives", skip)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/survey/final-remarks", resp.Header.Get("Location"))

	final := url.Values{}
	final.Set("action", "confirm_submit")
	final.Set("final_remarks", "portal works well")
	resp = wc.post("/survey/final-remarks", final)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/survey/confirmation", resp.Header.Get("Location"))

	var saved model.SurveyResponse
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, "Ayesha Khan", saved.FullName)
	assert.Equal(t, "legal", saved.ProfessionalRole)
	assert.Equal(t, "portal works well", saved.FinalRemarks)
	assert.True(t, saved.CrossSystemSkipped())
	assert.Regexp(t, `^FBR[0-9A-F]{8}$`, saved.ReferenceNumber)

	// Confirmation page shows the reference.
	resp = wc.get("/survey/confirmation")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), saved.ReferenceNumber)

	// Everything but the reference is gone: re-entering the wizard gates
	// back to the welcome page.
	resp = wc.get("/survey/respondent-info")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/survey/welcome", resp.Header.Get("Location"))
}

func TestFinalConfirmFailsWhenStepsMissing(t *testing.T) {
	wc, db := newWizardApp(t)

	resp := wc.post("/survey/welcome", url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	final := url.Values{}
	final.Set("action", "confirm_submit")
	req := httptest.NewRequest("POST", "/survey/final-remarks", strings.NewReader(final.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	resp = wc.do(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.SurveyResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConfirmSubmitAjaxAnswersCreated(t *testing.T) {
	wc, db := newWizardApp(t)

	wc.post("/survey/welcome", url.Values{})
	wc.post("/survey/respondent-info", respondentForm())
	wc.post("/survey/generic-questions", genericForm())
	wc.post("/survey/role-specific-questions", legalForm())
	skip := url.Values{}
	skip.Set("action", "skip_section")
	wc.post("/survey/cross-system-perspectives", skip)

	final := url.Values{}
	final.Set("action", "confirm_submit")
	req := httptest.NewRequest("POST", "/survey/final-remarks", strings.NewReader(final.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	resp := wc.do(req)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var saved model.SurveyResponse
	require.NoError(t, db.First(&saved).Error)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), saved.ReferenceNumber)
	assert.Contains(t, string(body), "/survey/confirmation")
}

func TestCrossSystemDraftReturnsJSON(t *testing.T) {
	wc, _ := newWizardApp(t)

	wc.post("/survey/welcome", url.Values{})
	wc.post("/survey/respondent-info", respondentForm())
	wc.post("/survey/generic-questions", genericForm())
	wc.post("/survey/role-specific-questions", legalForm())

	draft := url.Values{}
	draft.Set("action", "save_draft")
	draft.Set("xs1_data_discrepancy", "sometimes")
	req := httptest.NewRequest("POST", "/survey/cross-system-perspectives", strings.NewReader(draft.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	resp := wc.do(req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"success"`)
}

func TestSaveProgressWhitelistsBuckets(t *testing.T) {
	wc, _ := newWizardApp(t)
	wc.post("/survey/welcome", url.Values{})

	req := httptest.NewRequest("POST", "/survey/save-progress",
		strings.NewReader(`{"bucket":"admin_flags","data":{"x":1}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := wc.do(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("POST", "/survey/save-progress",
		strings.NewReader(`{"bucket":"generic_answers","data":{"g3_technical_issues":"rarely"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp = wc.do(req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
