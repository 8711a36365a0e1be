package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	model "taxsurvey_backend/internals/features/survey/model"
)

func exportFixture() []model.SurveyResponse {
	r := makeResponse("legal", "punjab")
	r.ReferenceNumber = "FBR0A1B2C3D"
	r.G1PolicyImpact = datatypes.JSONMap{"service_delivery": "positive"}
	r.G3TechnicalIssues = "occasionally"
	r.Lp7CommonProblems = datatypes.NewJSONSlice([]string{"system_downtime"})
	r.FinalRemarks = "all fine"
	return []model.SurveyResponse{r}
}

func TestExportExcel(t *testing.T) {
	svc := &Service{}
	path, err := svc.ExportExcel(exportFixture())
	require.NoError(t, err)
	defer os.Remove(path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Raw Data", "Summary", "Quota Status", "Generic Questions", "Cross Tabs"} {
		assert.Contains(t, sheets, want)
	}

	ref, err := f.GetCellValue("Raw Data", "A2")
	require.NoError(t, err)
	assert.Equal(t, "FBR0A1B2C3D", ref)

	// Single-choice sections list the answer code next to its display label.
	rows, err := f.GetRows("Generic Questions")
	require.NoError(t, err)
	flat := ""
	for _, row := range rows {
		for _, cell := range row {
			flat += cell + "|"
		}
	}
	assert.Contains(t, flat, "occasionally|Occasionally")
}

func TestExportSPSS(t *testing.T) {
	svc := &Service{}
	path, err := svc.ExportSPSS(exportFixture())
	require.NoError(t, err)
	defer os.Remove(path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// UTF-8 BOM for spreadsheet tooling.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	content := string(raw)
	assert.Contains(t, content, "Reference Number")
	assert.Contains(t, content, "FBR0A1B2C3D")
	// Structured fields land as JSON text.
	assert.Contains(t, content, `""service_delivery"":""positive""`)
}
