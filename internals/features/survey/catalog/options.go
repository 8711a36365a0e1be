// Package catalog is the single source of truth for every coded answer in the
// survey: option codes, display labels, grid rows, and the conditional rules
// the step validators enforce. Validation and display both read from these
// tables so the two can never drift apart.
package catalog

// Option is one selectable answer.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// GridRow is one fixed row of a challenge/effectiveness grid. Statute is the
// legal reference shown next to the row, empty when there is none.
type GridRow struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Statute string `json:"statute,omitempty"`
}

/* ===============================
   Respondent info (step 2)
=================================*/

const (
	RoleLegal   = "legal"
	RoleCustoms = "customs"
	RoleBoth    = "both"
)

var ProfessionalRoles = []Option{
	{RoleLegal, "Legal Practitioner"},
	{RoleCustoms, "Customs Agent"},
}

var Provinces = []Option{
	{"balochistan", "Balochistan"},
	{"ict", "ICT"},
	{"kpk", "KPK"},
	{"punjab", "Punjab"},
	{"sindh", "Sindh"},
}

var ExperienceOptions = []Option{
	{"less_than_1", "Less than 1 year"},
	{"1_5", "1-5 years"},
	{"6_10", "6-10 years"},
	{"more_than_10", "More than 10 years"},
}

// ExperienceMidpoints backs the numeric experience statistics in reporting.
var ExperienceMidpoints = map[string]float64{
	"less_than_1":  0.5,
	"1_5":          3,
	"6_10":         8,
	"more_than_10": 15,
}

var PracticeAreas = []Option{
	{"income_tax", "Income Tax"},
	{"sales_tax", "Sales Tax"},
	{"customs_law", "Customs Law"},
	{"federal_excise", "Federal Excise"},
	{"corporate_advisory", "Corporate Advisory"},
}

var KiiConsentOptions = []Option{
	{"yes", "Yes"},
	{"no", "No"},
}

/* ===============================
   Sentiments (matrix values)
=================================*/

var Sentiments = []Option{
	{"very_positive", "Very positive"},
	{"positive", "Positive"},
	{"neutral", "Neutral"},
	{"negative", "Negative"},
	{"very_negative", "Very negative"},
	{"dont_know", "Don't know"},
}

// SentimentScores maps sentiment codes to the integers used for the average
// sentiment score. Unknown codes count as 0.
var SentimentScores = map[string]int{
	"very_positive": 2,
	"positive":      1,
	"neutral":       0,
	"negative":      -1,
	"very_negative": -2,
	"n/a":           0,
	"dont_know":     0,
}

/* ===============================
   Generic questions (step 3)
=================================*/

var G1Aspects = []GridRow{
	{Key: "service_delivery", Label: "Service delivery"},
	{Key: "compliance_burden", Label: "Compliance burden"},
	{Key: "dispute_resolution", Label: "Dispute resolution"},
	{Key: "client_satisfaction", Label: "Client satisfaction"},
}

var G2Aspects = []GridRow{
	{Key: "workflow_efficiency", Label: "Workflow efficiency"},
	{Key: "data_accuracy", Label: "Data accuracy"},
	{Key: "system_reliability", Label: "System reliability"},
	{Key: "user_experience", Label: "User experience"},
}

var G3TechnicalIssuesOptions = []Option{
	{"very_frequently", "Very frequently"},
	{"frequently", "Frequently"},
	{"occasionally", "Occasionally"},
	{"rarely", "Rarely"},
	{"never", "Never"},
}

// G4DisruptionTriggers are the G3 answers that make G4 required.
var G4DisruptionTriggers = []string{"very_frequently", "frequently"}

var G4DisruptionOptions = []Option{
	{"severe", "Severe disruption"},
	{"moderate", "Moderate disruption"},
	{"minor", "Minor disruption"},
	{"none", "No real disruption"},
}

var G5DigitalLiteracyOptions = []Option{
	{"major_impact", "Major impact"},
	{"moderate_impact", "Moderate impact"},
	{"minor_impact", "Minor impact"},
	{"no_impact", "No impact"},
}

var G6ChallengedGroups = []Option{
	{"limited_tax_understanding", "People with limited tax understanding"},
	{"business_community", "Business community"},
	{"salaried_class", "Salaried class"},
	{"women_taxpayers", "Women taxpayers"},
	{"differently_abled", "Differently-abled taxpayers"},
	{"low_it_literacy", "People with low IT literacy"},
	{"senior_citizens", "Senior Citizens"},
	{"others", "Others (please specify)"},
}

/* ===============================
   Legal practitioner (step 4)
=================================*/

var LP1Options = []Option{
	{"great_extent", "To a great extent"},
	{"considerable_extent", "To a considerable extent"},
	{"moderate_extent", "To a moderate extent"},
	{"slight_extent", "To a slight extent"},
	{"not_at_all", "Not at all"},
}

var LPChallengeLevels = []Option{
	{"no_challenge", "No challenge"},
	{"minor_challenge", "Minor challenge"},
	{"moderate_challenge", "Moderate challenge"},
	{"major_challenge", "Major challenge"},
	{"dont_perform", "Don't perform this function"},
}

// ChallengingLevels are the grid answers that pull a function into the LP5
// tax-type drill-down.
var ChallengingLevels = []string{"moderate_challenge", "major_challenge"}

var LP2Functions = []GridRow{
	{Key: "appeals_commissioner", Label: "Appeal filings before Commissioner", Statute: "S.127"},
	{Key: "appellate_tribunal", Label: "Appellate Tribunal representations", Statute: "S.132"},
	{Key: "high_court", Label: "High Court/Supreme Court references"},
	{Key: "audit_responses", Label: "Audit responses & compliance", Statute: "S.177"},
	{Key: "show_cause", Label: "Show cause notice responses", Statute: "S.122"},
}

var LP3Functions = []GridRow{
	{Key: "return_filing", Label: "Return filing & compliance", Statute: "S.114"},
	{Key: "amendments", Label: "Return amendments & rectifications"},
	{Key: "withholding", Label: "Withholding statements & compliance"},
	{Key: "risk_assessment", Label: "Risk assessment procedures", Statute: "S.122A"},
	{Key: "tax_planning", Label: "Tax planning advisory services"},
}

var LP4Functions = []GridRow{
	{Key: "adr", Label: "Alternate Dispute Resolution", Statute: "S.134A"},
	{Key: "settlement", Label: "Settlement procedures"},
	{Key: "epayments", Label: "e-Payments & refund processing"},
	{Key: "cpr_corrections", Label: "CPR corrections"},
	{Key: "correspondence", Label: "FBR correspondence management"},
}

const LP7MaxSelections = 3

var LP7CommonProblems = []Option{
	{"system_downtime", "System downtime or slow performance"},
	{"login_failures", "Login failures or session timeouts"},
	{"document_upload_errors", "Document upload errors"},
	{"access_issues", "Inability to access case records or notices"},
	{"data_mismatches", "Data mismatches in client records"},
	{"audit_trail_issues", "Lack of audit trail for actions taken"},
	{"vague_notices", "Vague or inconsistent system-generated notices"},
	{"client_management", "Limited functionality for managing multiple clients"},
	{"other", "Other (please specify)"},
}

/* ===============================
   Customs agent (step 4)
=================================*/

var CA1Options = []Option{
	{"effective_both", "Yes, effective training on both WeBOC and PSW"},
	{"needs_improvement", "Yes, but training needs improvement"},
	{"no_training", "No formal training received"},
	{"not_applicable", "Not applicable"},
}

var CA2Options = []Option{
	{"very_well", "Very well integrated"},
	{"well", "Well integrated"},
	{"moderately", "Moderately integrated"},
	{"poorly", "Poorly integrated"},
	{"not_integrated", "Not integrated"},
}

var CA3ChallengeLevels = []Option{
	{"no_challenge", "No challenge"},
	{"minor_challenge", "Minor challenge"},
	{"moderate_challenge", "Moderate challenge"},
	{"major_challenge", "Major challenge"},
	{"not_applicable", "Not applicable"},
}

var CA3Functions = []GridRow{
	{Key: "goods_declaration", Label: "Goods Declaration", Statute: "S.79"},
	{Key: "duty_assessment", Label: "Duty Assessment", Statute: "S.81"},
	{Key: "cargo_examination", Label: "Cargo Examination", Statute: "S.26"},
	{Key: "document_processing", Label: "Document Processing", Statute: "S.79(2)"},
	{Key: "transit_warehousing", Label: "Transit/Warehousing", Statute: "S.13, S.15"},
	{Key: "record_keeping", Label: "Record Keeping", Statute: "S.155(6)"},
	{Key: "audit_compliance", Label: "Audit Compliance", Statute: "S.26A"},
	{Key: "license_compliance", Label: "License Compliance", Statute: "S.155(4)"},
}

var CA4EffectivenessLevels = []Option{
	{"very_effective", "Very effective"},
	{"effective", "Effective"},
	{"neutral", "Neutral"},
	{"ineffective", "Ineffective"},
	{"very_ineffective", "Very ineffective"},
}

var CA4Processes = []GridRow{
	{Key: "duty_assessment", Label: "Duty assessment"},
	{Key: "cargo_examination", Label: "Cargo examination"},
	{Key: "system_reliability", Label: "System reliability"},
	{Key: "client_representation", Label: "Client representation"},
}

var CA5Options = []Option{
	{"very_positively", "Very positively"},
	{"positively", "Positively"},
	{"neutral", "Neutral"},
	{"negatively", "Negatively"},
	{"very_negatively", "Very negatively"},
}

var CA6Options = []Option{
	{"system_issues", "System reliability and performance issues"},
	{"policy_changes", "Frequent policy or procedural changes"},
	{"assessment_unpredictability", "Unpredictable assessment outcomes"},
	{"documentation_delays", "Documentation processing delays"},
	{"cargo_bottlenecks", "Cargo examination bottlenecks"},
	{"compliance_burden", "Compliance and record-keeping burden"},
	{"coordination_issues", "Inter-agency coordination challenges"},
	{"training_gaps", "Training and knowledge gaps"},
}

// CA7NoChallengesCode cannot be combined with any other CA7 selection.
const CA7NoChallengesCode = "no_challenges"

var CA7ProcedureChallenges = []Option{
	{"goods_declaration", "Goods declaration filing"},
	{"classification", "Classification under PCT codes"},
	{"customs_valuation", "Customs valuation of goods"},
	{"duty_calculation", "Duty and tax calculation"},
	{"document_submission", "Document submission and verification"},
	{"cargo_examination", "Cargo examination coordination"},
	{"client_registration", "Client registration/management"},
	{"refund_processing", "Refund/drawback processing"},
	{CA7NoChallengesCode, "No significant challenges"},
	{"other", "Other (please specify)"},
}

// CA9Options stay in the catalog for legacy submissions whose session data
// still carries the old system_reliability key.
var CA9Options = []Option{
	{"very_reliable", "Very reliable"},
	{"reliable", "Reliable"},
	{"neutral", "Neutral"},
	{"unreliable", "Unreliable"},
	{"very_unreliable", "Very unreliable"},
}

/* ===============================
   Cross-system perspectives (step 5)
=================================*/

var XSOptions = []Option{
	{"always", "Always / Almost Always"},
	{"often", "Often"},
	{"sometimes", "Sometimes"},
	{"rarely", "Rarely"},
	{"never", "Never / Almost Never"},
	{"not_applicable", "Not Applicable / Don't know"},
}

/* ===============================
   Lookup helpers
=================================*/

// IsValid reports whether code appears in the option table.
func IsValid(opts []Option, code string) bool {
	for _, o := range opts {
		if o.Code == code {
			return true
		}
	}
	return false
}

// LabelFor resolves a code to its display label, falling back to the code
// itself for values from older schema revisions.
func LabelFor(opts []Option, code string) string {
	for _, o := range opts {
		if o.Code == code {
			return o.Label
		}
	}
	return code
}

// GridKeys extracts the key column of a grid.
func GridKeys(rows []GridRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}

// RenderCodes maps a list of stored codes to display labels using one option
// table. This is the single structured-field renderer; per-field display
// methods are deliberately not a thing here.
func RenderCodes(opts []Option, codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, LabelFor(opts, c))
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IsChallengingLevel reports whether a grid answer triggers the LP5
// drill-down.
func IsChallengingLevel(level string) bool {
	return contains(ChallengingLevels, level)
}

// IsG4Trigger reports whether a G3 answer makes G4 required.
func IsG4Trigger(code string) bool {
	return contains(G4DisruptionTriggers, code)
}
