package analysis

// RateLimitStatus reports the remaining daily quota on the external
// analysis service. Fetched fresh before and after every batch, never
// cached.
type RateLimitStatus struct {
	DailyLimit   int    `json:"daily_limit"`
	CurrentCount int    `json:"current_count"`
	Remaining    int    `json:"remaining"`
	CanProceed   bool   `json:"can_proceed"`
	ResetTime    string `json:"reset_time"`
}

// FileRef is one selected document in an upload batch.
type FileRef struct {
	Name    string
	Size    int64
	Content []byte
}

// UploadBatch is the set of files submitted together in one user action.
// Consumed by Submit, not retained.
type UploadBatch struct {
	Files    []FileRef
	Industry string
}

// AnalysisResult is the per-document payload returned by the external
// analysis service, passed through to the caller verbatim.
type AnalysisResult struct {
	ID               string           `json:"id"`
	OriginalFilename string           `json:"original_filename"`
	RiskScore        float64          `json:"risk_score"`
	CreatedAt        string           `json:"created_at,omitempty"`
	DocumentAnalysis DocumentAnalysis `json:"document_analysis"`
}

type DocumentAnalysis struct {
	OverallRiskScore           float64          `json:"overall_risk_score"`
	ExecutiveSummary           ExecutiveSummary `json:"executive_summary"`
	RiskAssessment             []RiskItem       `json:"risk_assessment"`
	MissingCriticalClauses     []MissingClause  `json:"missing_critical_clauses"`
	IdentifiedRisks            []IdentifiedRisk `json:"identified_risks"`
	ImprovementRecommendations []Recommendation `json:"improvement_recommendations"`
	ComplianceCheck            ComplianceCheck  `json:"compliance_check"`
}

type ExecutiveSummary struct {
	PriorityLevel       string `json:"priority_level"`
	CriticalIssuesCount int    `json:"critical_issues_count"`
	MissingClausesCount int    `json:"missing_clauses_count"`
}

type RiskItem struct {
	Category        string `json:"category"`
	Severity        string `json:"severity"`
	Description     string `json:"description"`
	PotentialImpact string `json:"potential_impact"`
	Likelihood      string `json:"likelihood"`
}

type MissingClause struct {
	ClauseName    string `json:"clause_name"`
	Importance    string `json:"importance"`
	Reason        string `json:"reason"`
	SuggestedText string `json:"suggested_text"`
}

type IdentifiedRisk struct {
	RiskType             string `json:"risk_type"`
	Severity             string `json:"severity"`
	CurrentProtection    string `json:"current_protection"`
	MitigationSuggestion string `json:"mitigation_suggestion"`
}

type Recommendation struct {
	Priority                int    `json:"priority"`
	Category                string `json:"category"`
	Description             string `json:"description"`
	Justification           string `json:"justification"`
	SuggestedImplementation string `json:"suggested_implementation"`
}

type ComplianceCheck struct {
	IndustryStandards      string `json:"industry_standards"`
	RegulatoryRequirements string `json:"regulatory_requirements"`
	BestPractices          string `json:"best_practices"`
}
