package insights

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const fallbackHealthScore = 75

var (
	recommendedShare  = decimal.RequireFromString("0.8")
	savingsShare      = decimal.RequireFromString("0.2")
	potentialShare    = decimal.RequireFromString("0.15")
	emergencyShare    = decimal.RequireFromString("0.5")
	minEmergencyFund  = decimal.NewFromInt(100)
	strongSavingsRate = decimal.NewFromInt(20)

	fallbackTips = []string{
		"Track your spending daily",
		"Set a monthly budget",
		"Look for cheaper alternatives",
		"Reduce unnecessary purchases",
	}
	fallbackActionItems = []string{
		"Review your largest expense categories",
		"Set up automatic savings transfers",
		"Create a monthly budget plan",
	}
)

// Fallback builds a deterministic report from agg alone. reason is quoted in
// the summary so the user can tell the report was not generated by the model.
func Fallback(agg Aggregates, reason string) Report {
	report := Report{
		TotalIncome:               agg.TotalIncome.InexactFloat64(),
		TotalExpenses:             agg.TotalExpenses.InexactFloat64(),
		CurrentSavingsRate:        agg.SavingsRate.InexactFloat64(),
		FinancialHealthScore:      fallbackHealthScore,
		SpendingAnalysis:          []SpendingAnalysis{},
		TopOverspendingCategories: []string{},
		SavingsRecommendations:    []SavingsRecommendation{},
		TotalPotentialSavings:     0,
		InvestmentSuggestions:     []InvestmentSuggestion{emergencyFund(agg)},
		OverallSummary:            fallbackSummary(agg, reason),
		KeyActionItems:            append([]string{}, fallbackActionItems...),
	}

	for i, c := range agg.Categories {
		if i == 3 {
			break
		}
		report.SpendingAnalysis = append(report.SpendingAnalysis, SpendingAnalysis{
			Category:           c.Category,
			AmountSpent:        c.Amount.InexactFloat64(),
			PercentageOfIncome: c.Percentage.InexactFloat64(),
			ConcernLevel:       c.Concern,
			Insight:            fmt.Sprintf("You're spending %s%% of your income on %s", c.Percentage.StringFixed(1), c.Category),
		})
		if i < 2 {
			report.TopOverspendingCategories = append(report.TopOverspendingCategories, c.Category)
		}
	}

	if len(agg.Categories) > 0 {
		largest := agg.Categories[0]
		report.SavingsRecommendations = append(report.SavingsRecommendations, SavingsRecommendation{
			Category:                largest.Category,
			CurrentSpending:         largest.Amount.InexactFloat64(),
			RecommendedSpending:     largest.Amount.Mul(recommendedShare).Round(2).InexactFloat64(),
			PotentialMonthlySavings: largest.Amount.Mul(savingsShare).Round(2).InexactFloat64(),
			ActionableTips:          append([]string{}, fallbackTips...),
		})
	}

	if agg.TotalExpenses.IsPositive() {
		report.TotalPotentialSavings = agg.TotalExpenses.Mul(potentialShare).Round(2).InexactFloat64()
	}

	return report
}

func emergencyFund(agg Aggregates) InvestmentSuggestion {
	amount := minEmergencyFund
	if agg.Balance.IsPositive() {
		amount = agg.Balance.Mul(emergencyShare).Round(2)
	}
	return InvestmentSuggestion{
		InvestmentType: "Emergency Fund",
		AmountToInvest: amount.InexactFloat64(),
		Priority:       TierHigh,
		Reason:         "Build 3-6 months of expenses for financial security",
		RiskLevel:      TierLow,
	}
}

func fallbackSummary(agg Aggregates, reason string) string {
	advice := "Try to increase your savings rate."
	if agg.SavingsRate.GreaterThan(strongSavingsRate) {
		advice = "Great job!"
	}
	return fmt.Sprintf("You're currently saving %s%% of your income. %s (Note: AI unavailable - %s)",
		agg.SavingsRate.StringFixed(1), advice, reason)
}
