// Package service is the reporting engine: it pulls all survey responses
// into memory once per request and derives summaries, quota status,
// distributions, cross-tabulations and exports from that snapshot. Reads are
// point-in-time; nothing here locks or coordinates with concurrent
// submissions.
package service

import (
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taxsurvey_backend/internals/features/survey/catalog"
	model "taxsurvey_backend/internals/features/survey/model"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// LoadResponses pulls the full snapshot ordered by submission time.
func (s *Service) LoadResponses() ([]model.SurveyResponse, error) {
	var responses []model.SurveyResponse
	if err := s.DB.Order("submission_date ASC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

/* ===============================
   Summary statistics
=================================*/

type CountItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalResponses    int                `json:"total_responses"`
	ByRole            map[string]int     `json:"by_role"`
	ByProvince        map[string]int     `json:"by_province"`
	TopDistricts      []CountItem        `json:"top_districts"`
	FirstSubmission   *time.Time         `json:"first_submission,omitempty"`
	LastSubmission    *time.Time         `json:"last_submission,omitempty"`
	FieldCompleteness map[string]float64 `json:"field_completeness"`
	KiiConsentRate    float64            `json:"kii_consent_rate"`
	AverageCompletion float64            `json:"average_completion"`
	ResponsesToday    int                `json:"responses_today"`
	DailyAverage      float64            `json:"daily_average"`
}

// SummarizeResponses derives the headline numbers from one snapshot.
func SummarizeResponses(responses []model.SurveyResponse) Summary {
	sum := Summary{
		ByRole:            map[string]int{},
		ByProvince:        map[string]int{},
		FieldCompleteness: map[string]float64{},
	}
	sum.TotalResponses = len(responses)
	if len(responses) == 0 {
		return sum
	}

	districts := map[string]int{}
	consent := 0
	completionTotal := 0.0
	today := time.Now().UTC().Truncate(24 * time.Hour)

	trackedFilled := map[string]int{}
	for _, r := range responses {
		sum.ByRole[r.ProfessionalRole]++
		sum.ByProvince[r.Province]++
		if r.District != "" {
			districts[r.District]++
		}
		if r.KiiConsent == "yes" {
			consent++
		}
		completionTotal += CompletionScore(&r)
		if !r.SubmissionDate.Before(today) {
			sum.ResponsesToday++
		}
		for field, filled := range trackedFields(&r) {
			if filled {
				trackedFilled[field]++
			}
		}
	}

	for field, filled := range trackedFilled {
		sum.FieldCompleteness[field] = round1(float64(filled) * 100 / float64(len(responses)))
	}
	sum.KiiConsentRate = round1(float64(consent) * 100 / float64(len(responses)))
	sum.AverageCompletion = round1(completionTotal / float64(len(responses)))

	first := responses[0].SubmissionDate
	last := responses[len(responses)-1].SubmissionDate
	sum.FirstSubmission = &first
	sum.LastSubmission = &last

	days := last.Sub(first).Hours()/24 + 1
	if days < 1 {
		days = 1
	}
	sum.DailyAverage = round1(float64(len(responses)) / days)

	for district, count := range districts {
		sum.TopDistricts = append(sum.TopDistricts, CountItem{Value: district, Count: count})
	}
	sort.Slice(sum.TopDistricts, func(i, j int) bool {
		if sum.TopDistricts[i].Count != sum.TopDistricts[j].Count {
			return sum.TopDistricts[i].Count > sum.TopDistricts[j].Count
		}
		return sum.TopDistricts[i].Value < sum.TopDistricts[j].Value
	})
	if len(sum.TopDistricts) > 10 {
		sum.TopDistricts = sum.TopDistricts[:10]
	}
	return sum
}

// trackedFields lists the completeness-tracked fields and whether each is
// filled for one response.
func trackedFields(r *model.SurveyResponse) map[string]bool {
	return map[string]bool{
		"full_name":            r.FullName != "",
		"email":                r.Email != "",
		"district":             r.District != "",
		"g1_policy_impact":     len(r.G1PolicyImpact) > 0,
		"g2_system_impact":     len(r.G2SystemImpact) > 0,
		"g3_technical_issues":  r.G3TechnicalIssues != "",
		"g5_digital_literacy":  r.G5DigitalLiteracy != "",
		"g6_challenged_groups": len(r.G6ChallengedGroups) > 0,
		"cross_system_answers": r.HasCrossSystemAnswers(),
		"final_remarks":        r.FinalRemarks != "",
	}
}

/* ===============================
   Quota status
=================================*/

type QuotaCell struct {
	Achieved       int     `json:"achieved"`
	Target         int     `json:"target"`
	Percentage     float64 `json:"percentage"`
	Remaining      int     `json:"remaining"`
	Status         string  `json:"status"`
	CompletionRisk string  `json:"completion_risk"`
}

type QuotaReport struct {
	Cells                     map[string]map[string]QuotaCell `json:"cells"`
	TotalAchieved             int                             `json:"total_achieved"`
	TotalTarget               int                             `json:"total_target"`
	OverallPercentage         float64                         `json:"overall_percentage"`
	AverageProvinceCompletion float64                         `json:"average_province_completion"`
	OnTrack                   bool                            `json:"on_track"`
}

// QuotaFromResponses computes achieved-vs-target per (province, role). A
// "both" respondent counts toward both role quotas.
func QuotaFromResponses(responses []model.SurveyResponse) QuotaReport {
	achieved := map[string]map[string]int{}
	for province := range catalog.QuotaTargets {
		achieved[province] = map[string]int{catalog.RoleLegal: 0, catalog.RoleCustoms: 0}
	}
	for _, r := range responses {
		cell, ok := achieved[r.Province]
		if !ok {
			continue
		}
		switch r.ProfessionalRole {
		case catalog.RoleLegal:
			cell[catalog.RoleLegal]++
		case catalog.RoleCustoms:
			cell[catalog.RoleCustoms]++
		case catalog.RoleBoth:
			cell[catalog.RoleLegal]++
			cell[catalog.RoleCustoms]++
		}
	}

	report := QuotaReport{Cells: map[string]map[string]QuotaCell{}}
	provinceSum := 0.0
	provinceCount := 0
	for province, targets := range catalog.QuotaTargets {
		report.Cells[province] = map[string]QuotaCell{}
		provincePct := 0.0
		for role, target := range targets {
			got := achieved[province][role]
			cell := QuotaCell{Achieved: got, Target: target}
			if target > 0 {
				cell.Percentage = round1(float64(got) * 100 / float64(target))
			}
			cell.Remaining = target - got
			if cell.Remaining < 0 {
				cell.Remaining = 0
			}
			if got >= target {
				cell.Status = "Completed"
			} else {
				cell.Status = "In Progress"
			}
			switch {
			case cell.Percentage < 50:
				cell.CompletionRisk = "High"
			case cell.Percentage < 80:
				cell.CompletionRisk = "Medium"
			default:
				cell.CompletionRisk = "Low"
			}
			report.Cells[province][role] = cell
			report.TotalAchieved += got
			report.TotalTarget += target
			provincePct += cell.Percentage
		}
		if len(targets) > 0 {
			provinceSum += provincePct / float64(len(targets))
			provinceCount++
		}
	}
	if report.TotalTarget > 0 {
		report.OverallPercentage = round1(float64(report.TotalAchieved) * 100 / float64(report.TotalTarget))
	}
	if provinceCount > 0 {
		report.AverageProvinceCompletion = round1(provinceSum / float64(provinceCount))
	}
	report.OnTrack = report.OverallPercentage >= 80
	return report
}

/* ===============================
   Distribution analysis
=================================*/

type MatrixAnalysis struct {
	Distributions    map[string]map[string]int `json:"distributions"`
	AverageSentiment map[string]float64        `json:"average_sentiment"`
	MostCommon       map[string]string         `json:"most_common"`
}

// AnalyzeMatrix tallies per-aspect value frequencies for a matrix field and
// scores average sentiment with the fixed word-to-integer mapping; codes
// outside the mapping count as 0.
func AnalyzeMatrix(responses []model.SurveyResponse, extract func(*model.SurveyResponse) datatypes.JSONMap) MatrixAnalysis {
	out := MatrixAnalysis{
		Distributions:    map[string]map[string]int{},
		AverageSentiment: map[string]float64{},
		MostCommon:       map[string]string{},
	}
	totals := map[string]int{}
	sums := map[string]int{}
	for i := range responses {
		m := extract(&responses[i])
		for aspect, raw := range m {
			code, ok := raw.(string)
			if !ok || code == "" {
				continue
			}
			if out.Distributions[aspect] == nil {
				out.Distributions[aspect] = map[string]int{}
			}
			out.Distributions[aspect][code]++
			totals[aspect]++
			sums[aspect] += catalog.SentimentScores[code]
		}
	}
	for aspect, total := range totals {
		if total > 0 {
			out.AverageSentiment[aspect] = round2(float64(sums[aspect]) / float64(total))
		}
		out.MostCommon[aspect] = mostCommon(out.Distributions[aspect])
	}
	return out
}

type ChoiceAnalysis struct {
	Counts      map[string]int     `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
	MostCommon  string             `json:"most_common"`
	Answered    int                `json:"answered"`
}

// AnalyzeChoice tallies one single-choice field across the snapshot.
func AnalyzeChoice(responses []model.SurveyResponse, extract func(*model.SurveyResponse) string) ChoiceAnalysis {
	out := ChoiceAnalysis{Counts: map[string]int{}, Percentages: map[string]float64{}}
	for i := range responses {
		if v := extract(&responses[i]); v != "" {
			out.Counts[v]++
			out.Answered++
		}
	}
	for code, count := range out.Counts {
		out.Percentages[code] = round1(float64(count) * 100 / float64(out.Answered))
	}
	out.MostCommon = mostCommon(out.Counts)
	return out
}

// AnalyzeMultiChoice tallies a multi-select field; percentages are over
// respondents who answered, so they may sum past 100.
func AnalyzeMultiChoice(responses []model.SurveyResponse, extract func(*model.SurveyResponse) []string) ChoiceAnalysis {
	out := ChoiceAnalysis{Counts: map[string]int{}, Percentages: map[string]float64{}}
	for i := range responses {
		codes := extract(&responses[i])
		if len(codes) == 0 {
			continue
		}
		out.Answered++
		for _, code := range codes {
			out.Counts[code]++
		}
	}
	for code, count := range out.Counts {
		out.Percentages[code] = round1(float64(count) * 100 / float64(out.Answered))
	}
	out.MostCommon = mostCommon(out.Counts)
	return out
}

func mostCommon(counts map[string]int) string {
	best, bestCount := "", -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

/* ===============================
   Cross-tabulations
=================================*/

type CrossTab struct {
	Rows           map[string]map[string]int     `json:"rows"`
	RowTotals      map[string]int                `json:"row_totals"`
	ColTotals      map[string]int                `json:"col_totals"`
	GrandTotal     int                           `json:"grand_total"`
	RowPercentages map[string]map[string]float64 `json:"row_percentages"`
}

func buildCrossTab(pairs [][2]string) CrossTab {
	ct := CrossTab{
		Rows:           map[string]map[string]int{},
		RowTotals:      map[string]int{},
		ColTotals:      map[string]int{},
		RowPercentages: map[string]map[string]float64{},
	}
	for _, p := range pairs {
		row, col := p[0], p[1]
		if row == "" || col == "" {
			continue
		}
		if ct.Rows[row] == nil {
			ct.Rows[row] = map[string]int{}
		}
		ct.Rows[row][col]++
		ct.RowTotals[row]++
		ct.ColTotals[col]++
		ct.GrandTotal++
	}
	for row, cols := range ct.Rows {
		total := ct.RowTotals[row]
		ct.RowPercentages[row] = map[string]float64{}
		for col, count := range cols {
			ct.RowPercentages[row][col] = round1(float64(count) * 100 / float64(total))
		}
	}
	return ct
}

type NumericStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type CrossTabs struct {
	RoleByProvince    CrossTab                `json:"role_by_province"`
	ServiceRatingRole CrossTab                `json:"service_rating_by_role"`
	ExperienceByRole  CrossTab                `json:"experience_by_role"`
	ExperienceStats   map[string]NumericStats `json:"experience_stats"`
}

// CrossTabulations derives the pairwise tables: role against province,
// the service-delivery sentiment against role, and the experience bucket
// against role with numeric stats over bucket midpoints.
func CrossTabulations(responses []model.SurveyResponse) CrossTabs {
	var roleProvince, ratingRole, expRole [][2]string
	expYears := map[string][]float64{}

	for i := range responses {
		r := &responses[i]
		roleProvince = append(roleProvince, [2]string{r.ProfessionalRole, r.Province})

		if rating, ok := r.G1PolicyImpact["service_delivery"].(string); ok && rating != "" {
			ratingRole = append(ratingRole, [2]string{rating, r.ProfessionalRole})
		}

		exp := r.ExperienceLegal
		if exp == "" {
			exp = r.ExperienceCustoms
		}
		if exp != "" {
			expRole = append(expRole, [2]string{exp, r.ProfessionalRole})
			if mid, ok := catalog.ExperienceMidpoints[exp]; ok {
				expYears[r.ProfessionalRole] = append(expYears[r.ProfessionalRole], mid)
			}
		}
	}

	stats := map[string]NumericStats{}
	for role, years := range expYears {
		stats[role] = describe(years)
	}

	return CrossTabs{
		RoleByProvince:    buildCrossTab(roleProvince),
		ServiceRatingRole: buildCrossTab(ratingRole),
		ExperienceByRole:  buildCrossTab(expRole),
		ExperienceStats:   stats,
	}
}

func describe(values []float64) NumericStats {
	st := NumericStats{Count: len(values)}
	if len(values) == 0 {
		return st
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	st.Mean = round2(sum / float64(len(sorted)))
	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		st.Median = sorted[mid]
	} else {
		st.Median = round2((sorted[mid-1] + sorted[mid]) / 2)
	}
	return st
}

/* ===============================
   Qualitative extraction
=================================*/

type QualitativeField struct {
	Samples      []string `json:"samples"`
	Total        int      `json:"total"`
	ResponseRate float64  `json:"response_rate"`
}

// Qualitative pulls non-empty free-text answers, capping the sample size per
// field.
func Qualitative(responses []model.SurveyResponse, cap int) map[string]QualitativeField {
	fields := map[string]func(*model.SurveyResponse) string{
		"final_remarks":            func(r *model.SurveyResponse) string { return r.FinalRemarks },
		"survey_feedback":          func(r *model.SurveyResponse) string { return r.SurveyFeedback },
		"lp6_priority_improvement": func(r *model.SurveyResponse) string { return r.Lp6PriorityImprovement },
		"ca6_improvement":          func(r *model.SurveyResponse) string { return r.Ca6Improvement },
		"g6_other_text":            func(r *model.SurveyResponse) string { return r.G6OtherText },
	}

	out := map[string]QualitativeField{}
	for name, extract := range fields {
		qf := QualitativeField{}
		for i := range responses {
			text := extract(&responses[i])
			if text == "" {
				continue
			}
			qf.Total++
			if len(qf.Samples) < cap {
				qf.Samples = append(qf.Samples, text)
			}
		}
		if len(responses) > 0 {
			qf.ResponseRate = round1(float64(qf.Total) * 100 / float64(len(responses)))
		}
		out[name] = qf
	}
	return out
}

/* ===============================
   Timeline
=================================*/

type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TimelineReport struct {
	Points []TimelinePoint `json:"points"`
	Trend  string          `json:"trend"`
}

// Timeline buckets submissions per day over the trailing window and labels
// the trend by comparing the two halves of the window.
func Timeline(responses []model.SurveyResponse, days int) TimelineReport {
	if days <= 0 {
		days = 7
	}
	byDay := map[string]int{}
	for _, r := range responses {
		byDay[r.SubmissionDate.UTC().Format("2006-01-02")]++
	}

	report := TimelineReport{}
	start := time.Now().UTC().AddDate(0, 0, -(days - 1))
	firstHalf, secondHalf := 0, 0
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		count := byDay[day]
		report.Points = append(report.Points, TimelinePoint{Date: day, Count: count})
		if i < days/2 {
			firstHalf += count
		} else {
			secondHalf += count
		}
	}
	switch {
	case secondHalf > firstHalf:
		report.Trend = "increasing"
	case secondHalf < firstHalf:
		report.Trend = "decreasing"
	default:
		report.Trend = "stable"
	}
	return report
}

/* ===============================
   Completion score
=================================*/

// CompletionScore blends weighted section sub-scores into a display
// percentage. It is a heuristic, not a validity check.
func CompletionScore(r *model.SurveyResponse) float64 {
	generic := 0.0
	genericChecks := []bool{
		len(r.G1PolicyImpact) > 0,
		len(r.G2SystemImpact) > 0,
		r.G3TechnicalIssues != "",
		r.G5DigitalLiteracy != "",
		len(r.G6ChallengedGroups) > 0,
	}
	for _, ok := range genericChecks {
		if ok {
			generic++
		}
	}
	generic /= float64(len(genericChecks))

	roleSpecific := 0.0
	switch r.ProfessionalRole {
	case catalog.RoleLegal:
		if r.HasLegalAnswers() {
			roleSpecific = 1
		}
	case catalog.RoleCustoms:
		if r.HasCustomsAnswers() {
			roleSpecific = 1
		}
	case catalog.RoleBoth:
		if r.HasLegalAnswers() {
			roleSpecific += 0.5
		}
		if r.HasCustomsAnswers() {
			roleSpecific += 0.5
		}
	}

	final := 0.0
	if r.FinalRemarks != "" || r.SurveyFeedback != "" {
		final += 0.5
	}
	if r.HasCrossSystemAnswers() || r.CrossSystemSkipped() {
		final += 0.5
	}

	score := generic*catalog.WeightGeneric + roleSpecific*catalog.WeightRoleSpecific + final*catalog.WeightFinal
	return round1(score)
}

/* ===============================
   Data quality
=================================*/

type DataQuality struct {
	AverageCompleteness float64  `json:"average_completeness"`
	ConsistencyIssues   []string `json:"consistency_issues"`
	DuplicateEmails     int      `json:"duplicate_emails"`
	MissingRoleAnswers  int      `json:"missing_role_answers"`
}

// DataQualityReport flags responses whose stored answers contradict their
// role tags, plus duplicate contact emails.
func DataQualityReport(responses []model.SurveyResponse) DataQuality {
	dq := DataQuality{}
	if len(responses) == 0 {
		return dq
	}

	emails := map[string]int{}
	completeness := 0.0
	for i := range responses {
		r := &responses[i]
		completeness += CompletionScore(r)
		if r.Email != "" {
			emails[r.Email]++
		}

		wantsLegal := r.ProfessionalRole == catalog.RoleLegal || r.ProfessionalRole == catalog.RoleBoth
		wantsCustoms := r.ProfessionalRole == catalog.RoleCustoms || r.ProfessionalRole == catalog.RoleBoth
		if wantsLegal && !r.HasLegalAnswers() {
			dq.MissingRoleAnswers++
			dq.ConsistencyIssues = appendIssue(dq.ConsistencyIssues,
				r.ReferenceNumber+": legal role without legal answers")
		}
		if wantsCustoms && !r.HasCustomsAnswers() {
			dq.MissingRoleAnswers++
			dq.ConsistencyIssues = appendIssue(dq.ConsistencyIssues,
				r.ReferenceNumber+": customs role without customs answers")
		}
		if !wantsLegal && r.HasLegalAnswers() {
			dq.ConsistencyIssues = appendIssue(dq.ConsistencyIssues,
				r.ReferenceNumber+": legal answers without legal role")
		}
		if !wantsCustoms && r.HasCustomsAnswers() {
			dq.ConsistencyIssues = appendIssue(dq.ConsistencyIssues,
				r.ReferenceNumber+": customs answers without customs role")
		}
	}

	for _, count := range emails {
		if count > 1 {
			dq.DuplicateEmails += count - 1
		}
	}
	dq.AverageCompleteness = round1(completeness / float64(len(responses)))
	return dq
}

const maxIssueSamples = 50

func appendIssue(issues []string, issue string) []string {
	if len(issues) >= maxIssueSamples {
		return issues
	}
	return append(issues, issue)
}

/* ===============================
   Rounding
=================================*/

func round1(v float64) float64 {
	return float64(int(v*10+signOffset(v))) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+signOffset(v))) / 100
}

func signOffset(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}
