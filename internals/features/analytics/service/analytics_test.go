package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	model "taxsurvey_backend/internals/features/survey/model"
)

func makeResponse(role, province string) model.SurveyResponse {
	return model.SurveyResponse{
		FullName:         "Respondent",
		Email:            role + "@" + province + ".example.com",
		Province:         province,
		District:         "Lahore",
		ProfessionalRole: role,
		SubmissionDate:   time.Now().UTC(),
	}
}

func TestQuotaFromResponses(t *testing.T) {
	t.Run("over-target cell reads completed at 150 percent", func(t *testing.T) {
		var responses []model.SurveyResponse
		for i := 0; i < 9; i++ {
			responses = append(responses, makeResponse("legal", "punjab"))
		}
		report := QuotaFromResponses(responses)
		cell := report.Cells["punjab"]["legal"]
		assert.Equal(t, 9, cell.Achieved)
		assert.Equal(t, 6, cell.Target)
		assert.Equal(t, 150.0, cell.Percentage)
		assert.Equal(t, "Completed", cell.Status)
		assert.Equal(t, 0, cell.Remaining)
		assert.Equal(t, "Low", cell.CompletionRisk)
	})

	t.Run("empty snapshot is zero not NaN", func(t *testing.T) {
		report := QuotaFromResponses(nil)
		cell := report.Cells["sindh"]["customs"]
		assert.Equal(t, 0.0, cell.Percentage)
		assert.Equal(t, "In Progress", cell.Status)
		assert.Equal(t, "High", cell.CompletionRisk)
		assert.Equal(t, 0.0, report.OverallPercentage)
		assert.False(t, report.OnTrack)
	})

	t.Run("both counts toward both role quotas", func(t *testing.T) {
		report := QuotaFromResponses([]model.SurveyResponse{makeResponse("both", "kpk")})
		assert.Equal(t, 1, report.Cells["kpk"]["legal"].Achieved)
		assert.Equal(t, 1, report.Cells["kpk"]["customs"].Achieved)
		assert.Equal(t, 2, report.TotalAchieved)
	})

	t.Run("unknown province ignored", func(t *testing.T) {
		report := QuotaFromResponses([]model.SurveyResponse{makeResponse("legal", "atlantis")})
		assert.Equal(t, 0, report.TotalAchieved)
	})
}

func TestAnalyzeMatrixSentiment(t *testing.T) {
	responses := []model.SurveyResponse{
		{G1PolicyImpact: datatypes.JSONMap{"service_delivery": "very_positive"}},
		{G1PolicyImpact: datatypes.JSONMap{"service_delivery": "negative"}},
	}
	analysis := AnalyzeMatrix(responses, func(r *model.SurveyResponse) datatypes.JSONMap {
		return r.G1PolicyImpact
	})
	// (+2 + -1) / 2
	assert.Equal(t, 0.5, analysis.AverageSentiment["service_delivery"])
	assert.Equal(t, 1, analysis.Distributions["service_delivery"]["negative"])
	assert.Equal(t, 1, analysis.Distributions["service_delivery"]["very_positive"])
}

func TestAnalyzeMatrixUnknownCodesScoreZero(t *testing.T) {
	responses := []model.SurveyResponse{
		{G1PolicyImpact: datatypes.JSONMap{"service_delivery": "dont_know"}},
		{G1PolicyImpact: datatypes.JSONMap{"service_delivery": "positive"}},
	}
	analysis := AnalyzeMatrix(responses, func(r *model.SurveyResponse) datatypes.JSONMap {
		return r.G1PolicyImpact
	})
	assert.Equal(t, 0.5, analysis.AverageSentiment["service_delivery"])
}

func TestAnalyzeChoice(t *testing.T) {
	responses := []model.SurveyResponse{
		{G3TechnicalIssues: "frequently"},
		{G3TechnicalIssues: "frequently"},
		{G3TechnicalIssues: "rarely"},
		{},
	}
	analysis := AnalyzeChoice(responses, func(r *model.SurveyResponse) string {
		return r.G3TechnicalIssues
	})
	assert.Equal(t, 3, analysis.Answered)
	assert.Equal(t, 2, analysis.Counts["frequently"])
	assert.Equal(t, 66.7, analysis.Percentages["frequently"])
	assert.Equal(t, "frequently", analysis.MostCommon)
}

func TestCrossTabulations(t *testing.T) {
	responses := []model.SurveyResponse{
		makeResponse("legal", "punjab"),
		makeResponse("legal", "sindh"),
		makeResponse("customs", "punjab"),
	}
	responses[0].ExperienceLegal = "1_5"
	responses[1].ExperienceLegal = "6_10"
	responses[2].ExperienceCustoms = "6_10"

	tabs := CrossTabulations(responses)

	rp := tabs.RoleByProvince
	assert.Equal(t, 1, rp.Rows["legal"]["punjab"])
	assert.Equal(t, 2, rp.RowTotals["legal"])
	assert.Equal(t, 2, rp.ColTotals["punjab"])
	assert.Equal(t, 3, rp.GrandTotal)
	assert.Equal(t, 50.0, rp.RowPercentages["legal"]["punjab"])

	exp := tabs.ExperienceByRole
	assert.Equal(t, 1, exp.Rows["1_5"]["legal"])
	assert.Equal(t, 1, exp.Rows["6_10"]["customs"])

	stats, ok := tabs.ExperienceStats["legal"]
	require.True(t, ok)
	assert.Equal(t, 2, stats.Count)
	// midpoints 3 and 8
	assert.Equal(t, 5.5, stats.Mean)
	assert.Equal(t, 5.5, stats.Median)
	assert.Equal(t, 3.0, stats.Min)
	assert.Equal(t, 8.0, stats.Max)
}

func TestQualitativeCapsSamples(t *testing.T) {
	var responses []model.SurveyResponse
	for i := 0; i < 5; i++ {
		responses = append(responses, model.SurveyResponse{FinalRemarks: "remark"})
	}
	responses = append(responses, model.SurveyResponse{})

	q := Qualitative(responses, 3)
	remarks := q["final_remarks"]
	assert.Len(t, remarks.Samples, 3)
	assert.Equal(t, 5, remarks.Total)
	assert.Equal(t, 83.3, remarks.ResponseRate)
}

func TestCompletionScore(t *testing.T) {
	t.Run("empty response scores zero", func(t *testing.T) {
		r := model.SurveyResponse{ProfessionalRole: "legal"}
		assert.Equal(t, 0.0, CompletionScore(&r))
	})

	t.Run("fully answered legal response scores 100", func(t *testing.T) {
		r := model.SurveyResponse{
			ProfessionalRole:   "legal",
			G1PolicyImpact:     datatypes.JSONMap{"service_delivery": "positive"},
			G2SystemImpact:     datatypes.JSONMap{"workflow_efficiency": "neutral"},
			G3TechnicalIssues:  "rarely",
			G5DigitalLiteracy:  "no_impact",
			G6ChallengedGroups: datatypes.NewJSONSlice([]string{"salaried_class"}),
			Lp1DigitalSupport:  "moderate_extent",
			FinalRemarks:       "done",
			CrossSystemAnswers: datatypes.JSONMap{"skipped": true},
		}
		assert.Equal(t, 100.0, CompletionScore(&r))
	})

	t.Run("both role with one section filled gets half the role weight", func(t *testing.T) {
		r := model.SurveyResponse{
			ProfessionalRole:  "both",
			Lp1DigitalSupport: "moderate_extent",
		}
		assert.Equal(t, 25.0, CompletionScore(&r))
	})
}

func TestTimelineTrend(t *testing.T) {
	now := time.Now().UTC()
	var responses []model.SurveyResponse
	for i := 0; i < 4; i++ {
		responses = append(responses, model.SurveyResponse{SubmissionDate: now})
	}
	report := Timeline(responses, 7)
	assert.Len(t, report.Points, 7)
	assert.Equal(t, "increasing", report.Trend)
	assert.Equal(t, 4, report.Points[6].Count)
}

func TestSummarizeResponses(t *testing.T) {
	r1 := makeResponse("legal", "punjab")
	r1.KiiConsent = "yes"
	r2 := makeResponse("customs", "sindh")
	r2.District = "Karachi East"
	sum := SummarizeResponses([]model.SurveyResponse{r1, r2})

	assert.Equal(t, 2, sum.TotalResponses)
	assert.Equal(t, 1, sum.ByRole["legal"])
	assert.Equal(t, 1, sum.ByProvince["sindh"])
	assert.Equal(t, 50.0, sum.KiiConsentRate)
	assert.Equal(t, 100.0, sum.FieldCompleteness["full_name"])
	require.NotNil(t, sum.FirstSubmission)
	assert.Len(t, sum.TopDistricts, 2)
}

func TestDataQualityReport(t *testing.T) {
	clean := makeResponse("legal", "punjab")
	clean.Lp1DigitalSupport = "moderate_extent"
	broken := makeResponse("customs", "sindh")
	dup := makeResponse("legal", "punjab")
	dup.Email = clean.Email
	dup.Lp1DigitalSupport = "moderate_extent"

	dq := DataQualityReport([]model.SurveyResponse{clean, broken, dup})
	assert.Equal(t, 1, dq.MissingRoleAnswers)
	assert.Equal(t, 1, dq.DuplicateEmails)
	assert.NotEmpty(t, dq.ConsistencyIssues)
}
