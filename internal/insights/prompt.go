package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Completer sends a prompt to a text generation model and returns its raw
// completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt renders the model instruction for agg. The output is
// deterministic for equal aggregates.
func BuildPrompt(agg Aggregates) string {
	var b strings.Builder

	b.WriteString("You are a financial advisor. Analyze this budget and provide insights in JSON.\n\n")
	fmt.Fprintf(&b, "Budget: Income $%s, Expenses $%s, Balance $%s, Savings %s%%\n\n",
		agg.TotalIncome.StringFixed(2),
		agg.TotalExpenses.StringFixed(2),
		agg.Balance.StringFixed(2),
		agg.SavingsRate.StringFixed(1),
	)

	b.WriteString("Expenses by category (percent of income):\n")
	if len(agg.Categories) == 0 {
		b.WriteString("- none\n")
	}
	for _, c := range agg.Categories {
		fmt.Fprintf(&b, "- %s: $%s (%s%%, %d entries)\n",
			c.Category, c.Amount.StringFixed(2), c.Percentage.StringFixed(1), c.Count)
	}

	b.WriteString("\nIncome by source:\n")
	if len(agg.IncomeSources) == 0 {
		b.WriteString("- none\n")
	}
	for _, s := range agg.IncomeSources {
		fmt.Fprintf(&b, "- %s: $%s\n", s.Name, s.Total.StringFixed(2))
	}

	b.WriteString("\nLargest individual expenses:\n")
	if len(agg.TopExpenses) == 0 {
		b.WriteString("- none\n")
	}
	for _, e := range agg.TopExpenses {
		fmt.Fprintf(&b, "- %s %s $%s: %s\n", e.Date, e.Category, e.Amount.StringFixed(2), e.Description)
	}

	b.WriteString("\nConcern levels: a category above 30% of income is \"high\", 20-30% is \"medium\", below 20% is \"low\".\n")
	b.WriteString("Savings recommendations should be realistic reductions with 3-5 actionable tips each.\n")
	b.WriteString("Investments: an emergency fund (3-6 months of expenses) comes first, then low-cost index funds or retirement accounts.\n\n")

	b.WriteString("Return ONLY this JSON structure (no markdown, no extra text):\n")
	b.WriteString(exampleReport(agg))
	b.WriteString("\n\nUse the actual budget data above. Return valid JSON only.")

	return b.String()
}

// exampleReport shows the model the exact shape it must answer with, seeded
// with the real totals.
func exampleReport(agg Aggregates) string {
	example := Report{
		TotalIncome:          agg.TotalIncome.InexactFloat64(),
		TotalExpenses:        agg.TotalExpenses.InexactFloat64(),
		CurrentSavingsRate:   agg.SavingsRate.InexactFloat64(),
		FinancialHealthScore: 75,
		SpendingAnalysis: []SpendingAnalysis{{
			Category:           "food",
			AmountSpent:        0,
			PercentageOfIncome: 0,
			ConcernLevel:       TierMedium,
			Insight:            "brief insight about this category",
		}},
		TopOverspendingCategories: []string{"category1", "category2"},
		SavingsRecommendations: []SavingsRecommendation{{
			Category:                "food",
			CurrentSpending:         0,
			RecommendedSpending:     0,
			PotentialMonthlySavings: 0,
			ActionableTips:          []string{"tip1", "tip2", "tip3"},
		}},
		TotalPotentialSavings: 0,
		InvestmentSuggestions: []InvestmentSuggestion{{
			InvestmentType: "Emergency Fund",
			AmountToInvest: 0,
			Priority:       TierHigh,
			Reason:         "why this investment",
			RiskLevel:      TierLow,
		}},
		OverallSummary: "2-3 sentence summary",
		KeyActionItems: []string{"action1", "action2", "action3"},
	}
	out, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
