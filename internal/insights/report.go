package insights

// Report is the structured financial insights payload. Every field is always
// populated; list fields are empty rather than nil.
type Report struct {
	TotalIncome               float64                 `json:"total_income"`
	TotalExpenses             float64                 `json:"total_expenses"`
	CurrentSavingsRate        float64                 `json:"current_savings_rate"`
	FinancialHealthScore      int                     `json:"financial_health_score"`
	SpendingAnalysis          []SpendingAnalysis      `json:"spending_analysis"`
	TopOverspendingCategories []string                `json:"top_overspending_categories"`
	SavingsRecommendations    []SavingsRecommendation `json:"savings_recommendations"`
	TotalPotentialSavings     float64                 `json:"total_potential_savings"`
	InvestmentSuggestions     []InvestmentSuggestion  `json:"investment_suggestions"`
	OverallSummary            string                  `json:"overall_summary"`
	KeyActionItems            []string                `json:"key_action_items"`
}

// SpendingAnalysis describes spending in one category.
type SpendingAnalysis struct {
	Category           string  `json:"category"`
	AmountSpent        float64 `json:"amount_spent"`
	PercentageOfIncome float64 `json:"percentage_of_income"`
	ConcernLevel       Tier    `json:"concern_level"`
	Insight            string  `json:"insight"`
}

// SavingsRecommendation suggests a lower spend for one category.
type SavingsRecommendation struct {
	Category                string   `json:"category"`
	CurrentSpending         float64  `json:"current_spending"`
	RecommendedSpending     float64  `json:"recommended_spending"`
	PotentialMonthlySavings float64  `json:"potential_monthly_savings"`
	ActionableTips          []string `json:"actionable_tips"`
}

// InvestmentSuggestion proposes where to put savings.
type InvestmentSuggestion struct {
	InvestmentType string  `json:"investment_type"`
	AmountToInvest float64 `json:"amount_to_invest"`
	Priority       Tier    `json:"priority"`
	Reason         string  `json:"reason"`
	RiskLevel      Tier    `json:"risk_level"`
}

// Source tags where a report came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Result is the outcome of one insights request. Report is always complete;
// Err is set when Source is SourceFallback.
type Result struct {
	Report Report
	Source Source
	Err    *Error
}
