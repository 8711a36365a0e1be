package controller

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taxsurvey_backend/internals/features/analytics/service"
	model "taxsurvey_backend/internals/features/survey/model"
	helper "taxsurvey_backend/internals/helpers"
)

const qualitativeSampleCap = 20

type DashboardController struct {
	Service *service.Service
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewService(db)}
}

// Dashboard returns the headline view: summary, quota status and the
// submission timeline.
func (dc *DashboardController) Dashboard(c *fiber.Ctx) error {
	responses, err := dc.Service.LoadResponses()
	if err != nil {
		log.Printf("[ERROR] dashboard data load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load survey data.")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"summary":  service.SummarizeResponses(responses),
		"quota":    service.QuotaFromResponses(responses),
		"timeline": service.Timeline(responses, 7),
	})
}

// Stats returns the full analytical breakdown for the staff API.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	responses, err := dc.Service.LoadResponses()
	if err != nil {
		log.Printf("[ERROR] stats data load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load survey data.")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"summary": service.SummarizeResponses(responses),
		"quota":   service.QuotaFromResponses(responses),
		"generic": fiber.Map{
			"g1_policy_impact": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.G1PolicyImpact }),
			"g2_system_impact": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.G2SystemImpact }),
			"g3_technical_issues": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.G3TechnicalIssues }),
			"g4_disruption": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.G4Disruption }),
			"g5_digital_literacy": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.G5DigitalLiteracy }),
			"g6_challenged_groups": service.AnalyzeMultiChoice(responses,
				func(r *model.SurveyResponse) []string { return r.G6ChallengedGroups }),
		},
		"legal": fiber.Map{
			"lp1_digital_support": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.Lp1DigitalSupport }),
			"lp2_challenges": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.Lp2Challenges }),
			"lp3_challenges": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.Lp3Challenges }),
			"lp4_challenges": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.Lp4Challenges }),
			"lp7_common_problems": service.AnalyzeMultiChoice(responses,
				func(r *model.SurveyResponse) []string { return r.Lp7CommonProblems }),
		},
		"customs": fiber.Map{
			"ca1_training": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.Ca1Training }),
			"ca2_system_integration": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.Ca2SystemIntegration }),
			"ca3_challenges": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.Ca3Challenges }),
			"ca4_effectiveness": service.AnalyzeMatrix(responses,
				func(r *model.SurveyResponse) datatypes.JSONMap { return r.Ca4Effectiveness }),
			"ca5_policy_impact": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.Ca5PolicyImpact }),
			"ca6_biggest_challenge": service.AnalyzeChoice(responses,
				func(r *model.SurveyResponse) string { return r.Ca6BiggestChallenge }),
			"ca7_procedure_challenges": service.AnalyzeMultiChoice(responses,
				func(r *model.SurveyResponse) []string { return r.Ca7ProcedureChallenges }),
		},
		"cross_tabs":   service.CrossTabulations(responses),
		"qualitative":  service.Qualitative(responses, qualitativeSampleCap),
		"data_quality": service.DataQualityReport(responses),
		"timeline":     service.Timeline(responses, 7),
	})
}

// Responses lists raw submissions for the staff review table, newest first,
// with optional province/role filters.
func (dc *DashboardController) Responses(c *fiber.Ctx) error {
	page, perPage, offset := helper.ResolvePaging(c, 25, 100)

	q := dc.Service.DB.Model(&model.SurveyResponse{})
	if province := c.Query("province"); province != "" {
		q = q.Where("province = ?", province)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("professional_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] responses count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load survey data.")
	}
	var responses []model.SurveyResponse
	if err := q.Order("submission_date DESC").Limit(perPage).Offset(offset).Find(&responses).Error; err != nil {
		log.Printf("[ERROR] responses load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load survey data.")
	}

	return helper.JsonList(c, "OK", responses, helper.BuildPaginationFromPage(total, page, perPage))
}

// Export generates the requested file, streams it back as an attachment and
// removes the temp file.
func (dc *DashboardController) Export(c *fiber.Ctx) error {
	responses, err := dc.Service.LoadResponses()
	if err != nil {
		log.Printf("[ERROR] export data load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load survey data.")
	}

	format := c.Query("type", "excel")
	var path, filename, contentType string
	switch format {
	case "excel":
		path, err = dc.Service.ExportExcel(responses)
		filename = "survey_export.xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "spss":
		path, err = dc.Service.ExportSPSS(responses)
		filename = "survey_export.csv"
		contentType = "text/csv; charset=utf-8"
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown export type. Use excel or spss.")
	}
	if err != nil {
		log.Printf("[ERROR] export generation (%s): %v", format, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Export generation failed.")
	}

	payload, err := os.ReadFile(path)
	if removeErr := os.Remove(path); removeErr != nil {
		log.Printf("[WARN] remove temp export %s: %v", path, removeErr)
	}
	if err != nil {
		log.Printf("[ERROR] read export file %s: %v", path, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Export file could not be read.")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}
