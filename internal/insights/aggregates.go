// Package insights turns aggregated income and expense figures into a
// structured financial insights report. It builds the model prompt, validates
// the model's answer and synthesizes a deterministic fallback report when the
// answer is unusable.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier is a low/medium/high classification.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

var (
	hundred         = decimal.NewFromInt(100)
	highThreshold   = decimal.NewFromInt(30)
	mediumThreshold = decimal.NewFromInt(20)
)

// ConcernFor classifies a category's share of income: above 30% is high,
// 20% to 30% inclusive is medium and anything below 20% is low.
func ConcernFor(percentOfIncome decimal.Decimal) Tier {
	switch {
	case percentOfIncome.GreaterThan(highThreshold):
		return TierHigh
	case percentOfIncome.GreaterThanOrEqual(mediumThreshold):
		return TierMedium
	default:
		return TierLow
	}
}

// GroupTotal is a grouped sum over a record table.
type GroupTotal struct {
	Name  string
	Total decimal.Decimal
	Count int64
}

// CategoryShare is a category's spending with its share of total income.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Count      int64
	Percentage decimal.Decimal
	Concern    Tier
}

// ExpenseLine is a single large expense quoted in the prompt.
type ExpenseLine struct {
	Date        string
	Category    string
	Amount      decimal.Decimal
	Description string
}

// Aggregates are the figures every insights step works from.
type Aggregates struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	// SavingsRate is balance / income × 100, zero when there is no income.
	SavingsRate   decimal.Decimal
	Categories    []CategoryShare
	IncomeSources []GroupTotal
	TopExpenses   []ExpenseLine
}

// NewAggregates derives balance, savings rate and per-category shares from
// raw totals. Categories are ordered by amount descending, then by name.
func NewAggregates(totalIncome, totalExpenses decimal.Decimal, byCategory, bySource []GroupTotal, top []ExpenseLine) Aggregates {
	agg := Aggregates{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Balance:       totalIncome.Sub(totalExpenses),
		SavingsRate:   decimal.Zero,
		Categories:    make([]CategoryShare, 0, len(byCategory)),
		IncomeSources: sortedTotals(bySource),
		TopExpenses:   top,
	}
	if agg.TopExpenses == nil {
		agg.TopExpenses = []ExpenseLine{}
	}

	hasIncome := totalIncome.IsPositive()
	if hasIncome {
		agg.SavingsRate = agg.Balance.Div(totalIncome).Mul(hundred).Round(2)
	}

	for _, group := range sortedTotals(byCategory) {
		pct := decimal.Zero
		if hasIncome {
			pct = group.Total.Div(totalIncome).Mul(hundred).Round(1)
		}
		agg.Categories = append(agg.Categories, CategoryShare{
			Category:   group.Name,
			Amount:     group.Total,
			Count:      group.Count,
			Percentage: pct,
			Concern:    ConcernFor(pct),
		})
	}
	return agg
}

func sortedTotals(in []GroupTotal) []GroupTotal {
	out := make([]GroupTotal, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
