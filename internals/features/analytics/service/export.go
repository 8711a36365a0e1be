package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"taxsurvey_backend/internals/features/survey/catalog"
	model "taxsurvey_backend/internals/features/survey/model"
)

// ExportExcel writes the full report workbook to a temp file and returns its
// path. The caller streams the file back and deletes it; generation is
// synchronous within the request.
func (s *Service) ExportExcel(responses []model.SurveyResponse) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRawDataSheet(f, responses); err != nil {
		return "", err
	}
	if err := writeSummarySheet(f, responses); err != nil {
		return "", err
	}
	if err := writeQuotaSheet(f, responses); err != nil {
		return "", err
	}
	if err := writeGenericSheet(f, responses); err != nil {
		return "", err
	}
	if err := writeCrossTabSheet(f, responses); err != nil {
		return "", err
	}
	f.DeleteSheet("Sheet1")

	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("survey_export_%s.xlsx", time.Now().UTC().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

var rawDataHeaders = []string{
	"Reference Number", "Submission Date", "Full Name", "Email", "Mobile",
	"Province", "District", "Professional Role", "Professional Roles",
	"Experience (Legal)", "Experience (Customs)", "Practice Areas", "KII Consent",
	"G1 Policy Impact", "G2 System Impact", "G3 Technical Issues", "G4 Disruption",
	"G5 Digital Literacy", "G6 Challenged Groups", "G6 Other",
	"LP1 Digital Support", "LP2 Challenges", "LP3 Challenges", "LP4 Challenges",
	"LP5 Tax Types", "LP6 Priority Improvement", "LP7 Common Problems", "LP7 Other",
	"CA1 Training", "CA2 System Integration", "CA3 Challenges", "CA4 Effectiveness",
	"CA5 Policy Impact", "CA6 Biggest Challenge", "CA6 Improvement",
	"CA7 Procedure Challenges", "CA7 Other", "CA9 System Reliability",
	"Cross-System Answers", "Final Remarks", "Survey Feedback", "Completion %",
}

func rawDataRow(r *model.SurveyResponse) []any {
	return []any{
		r.ReferenceNumber, r.SubmissionDate.UTC().Format("2006-01-02 15:04:05"),
		r.FullName, r.Email, r.Mobile,
		r.Province, r.District, r.ProfessionalRole, jsonCell(r.ProfessionalRoles),
		r.ExperienceLegal, r.ExperienceCustoms, jsonCell(r.PracticeAreas), r.KiiConsent,
		jsonCell(r.G1PolicyImpact), jsonCell(r.G2SystemImpact), r.G3TechnicalIssues, r.G4Disruption,
		r.G5DigitalLiteracy, jsonCell(r.G6ChallengedGroups), r.G6OtherText,
		r.Lp1DigitalSupport, jsonCell(r.Lp2Challenges), jsonCell(r.Lp3Challenges), jsonCell(r.Lp4Challenges),
		jsonCell(r.Lp5TaxTypes), r.Lp6PriorityImprovement, jsonCell(r.Lp7CommonProblems), r.Lp7OtherText,
		r.Ca1Training, r.Ca2SystemIntegration, jsonCell(r.Ca3Challenges), jsonCell(r.Ca4Effectiveness),
		r.Ca5PolicyImpact, r.Ca6BiggestChallenge, r.Ca6Improvement,
		jsonCell(r.Ca7ProcedureChallenges), r.Ca7OtherText, r.Ca9SystemReliability,
		jsonCell(r.CrossSystemAnswers), r.FinalRemarks, r.SurveyFeedback, CompletionScore(r),
	}
}

func writeRawDataSheet(f *excelize.File, responses []model.SurveyResponse) error {
	const sheet = "Raw Data"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, toAnySlice(rawDataHeaders)); err != nil {
		return err
	}
	for i := range responses {
		if err := writeRow(f, sheet, i+2, rawDataRow(&responses[i])); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, responses []model.SurveyResponse) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	sum := SummarizeResponses(responses)

	rows := [][]any{
		{"Metric", "Value"},
		{"Total Responses", sum.TotalResponses},
		{"KII Consent Rate (%)", sum.KiiConsentRate},
		{"Average Completion (%)", sum.AverageCompletion},
		{"Responses Today", sum.ResponsesToday},
		{"Daily Average", sum.DailyAverage},
	}
	if sum.FirstSubmission != nil {
		rows = append(rows, []any{"First Submission", sum.FirstSubmission.UTC().Format("2006-01-02 15:04:05")})
	}
	if sum.LastSubmission != nil {
		rows = append(rows, []any{"Last Submission", sum.LastSubmission.UTC().Format("2006-01-02 15:04:05")})
	}
	for _, role := range sortedKeys(sum.ByRole) {
		rows = append(rows, []any{"Role: " + role, sum.ByRole[role]})
	}
	for _, province := range sortedKeys(sum.ByProvince) {
		rows = append(rows, []any{"Province: " + province, sum.ByProvince[province]})
	}
	for _, d := range sum.TopDistricts {
		rows = append(rows, []any{"District: " + d.Value, d.Count})
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeQuotaSheet(f *excelize.File, responses []model.SurveyResponse) error {
	const sheet = "Quota Status"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	report := QuotaFromResponses(responses)

	header := []any{"Province", "Role", "Achieved", "Target", "Percentage", "Remaining", "Status", "Risk"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	rowIdx := 2
	for _, province := range sortedKeys(report.Cells) {
		for _, role := range sortedKeys(report.Cells[province]) {
			cell := report.Cells[province][role]
			row := []any{province, role, cell.Achieved, cell.Target, cell.Percentage, cell.Remaining, cell.Status, cell.CompletionRisk}
			if err := writeRow(f, sheet, rowIdx, row); err != nil {
				return err
			}
			rowIdx++
		}
	}
	total := []any{"TOTAL", "", report.TotalAchieved, report.TotalTarget, report.OverallPercentage, "", "", ""}
	return writeRow(f, sheet, rowIdx, total)
}

func writeGenericSheet(f *excelize.File, responses []model.SurveyResponse) error {
	const sheet = "Generic Questions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	matrices := []struct {
		title   string
		extract func(*model.SurveyResponse) datatypes.JSONMap
	}{
		{"G1 Policy Impact", func(r *model.SurveyResponse) datatypes.JSONMap { return r.G1PolicyImpact }},
		{"G2 System Impact", func(r *model.SurveyResponse) datatypes.JSONMap { return r.G2SystemImpact }},
	}

	rowIdx := 1
	for _, m := range matrices {
		analysis := AnalyzeMatrix(responses, m.extract)
		if err := writeRow(f, sheet, rowIdx, []any{m.title, "Aspect", "Answer", "Count", "Avg Sentiment"}); err != nil {
			return err
		}
		rowIdx++
		for _, aspect := range sortedKeys(analysis.Distributions) {
			for _, code := range sortedKeys(analysis.Distributions[aspect]) {
				row := []any{"", aspect, code, analysis.Distributions[aspect][code], analysis.AverageSentiment[aspect]}
				if err := writeRow(f, sheet, rowIdx, row); err != nil {
					return err
				}
				rowIdx++
			}
		}
		rowIdx++
	}

	singles := []struct {
		title   string
		opts    []catalog.Option
		extract func(*model.SurveyResponse) string
	}{
		{"G3 Technical Issues", catalog.G3TechnicalIssuesOptions, func(r *model.SurveyResponse) string { return r.G3TechnicalIssues }},
		{"G4 Disruption", catalog.G4DisruptionOptions, func(r *model.SurveyResponse) string { return r.G4Disruption }},
		{"G5 Digital Literacy", catalog.G5DigitalLiteracyOptions, func(r *model.SurveyResponse) string { return r.G5DigitalLiteracy }},
	}
	for _, sgl := range singles {
		analysis := AnalyzeChoice(responses, sgl.extract)
		if err := writeRow(f, sheet, rowIdx, []any{sgl.title, "Answer", "Label", "Count", "Percentage"}); err != nil {
			return err
		}
		rowIdx++
		codes := sortedKeys(analysis.Counts)
		labels := catalog.RenderCodes(sgl.opts, codes)
		for i, code := range codes {
			if err := writeRow(f, sheet, rowIdx, []any{"", code, labels[i], analysis.Counts[code], analysis.Percentages[code]}); err != nil {
				return err
			}
			rowIdx++
		}
		rowIdx++
	}
	return nil
}

func writeCrossTabSheet(f *excelize.File, responses []model.SurveyResponse) error {
	const sheet = "Cross Tabs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	tabs := CrossTabulations(responses)

	rowIdx := 1
	sections := []struct {
		title string
		tab   CrossTab
	}{
		{"Role x Province", tabs.RoleByProvince},
		{"Service Delivery Rating x Role", tabs.ServiceRatingRole},
		{"Experience x Role", tabs.ExperienceByRole},
	}
	for _, sec := range sections {
		cols := sortedKeys(sec.tab.ColTotals)
		header := append([]any{sec.title}, toAnySlice(cols)...)
		header = append(header, "Total")
		if err := writeRow(f, sheet, rowIdx, header); err != nil {
			return err
		}
		rowIdx++
		for _, rowKey := range sortedKeys(sec.tab.Rows) {
			row := []any{rowKey}
			for _, col := range cols {
				row = append(row, sec.tab.Rows[rowKey][col])
			}
			row = append(row, sec.tab.RowTotals[rowKey])
			if err := writeRow(f, sheet, rowIdx, row); err != nil {
				return err
			}
			rowIdx++
		}
		total := []any{"Total"}
		for _, col := range cols {
			total = append(total, sec.tab.ColTotals[col])
		}
		total = append(total, sec.tab.GrandTotal)
		if err := writeRow(f, sheet, rowIdx, total); err != nil {
			return err
		}
		rowIdx += 2
	}
	return nil
}

// ExportSPSS writes an SPSS-friendly flat CSV: one row per response, JSON
// text in the structured columns, UTF-8 BOM for spreadsheet tooling.
func (s *Service) ExportSPSS(responses []model.SurveyResponse) (string, error) {
	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("survey_export_%s.csv", time.Now().UTC().Format("20060102_150405")))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", err
	}

	w := csv.NewWriter(file)
	if err := w.Write(rawDataHeaders); err != nil {
		return "", err
	}
	for i := range responses {
		record := make([]string, 0, len(rawDataHeaders))
		for _, cell := range rawDataRow(&responses[i]) {
			record = append(record, csvCell(cell))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

/* ===============================
   Cell helpers
=================================*/

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func jsonCell(v any) string {
	switch t := v.(type) {
	case datatypes.JSONMap:
		if len(t) == 0 {
			return ""
		}
	case datatypes.JSONSlice[string]:
		if len(t) == 0 {
			return ""
		}
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

func csvCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
