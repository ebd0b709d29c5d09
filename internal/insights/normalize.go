package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var reportValidator = newReportValidator()

func newReportValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		_, ok := parseTier(fl.Field().String())
		return ok
	})
	return v
}

func parseTier(s string) (Tier, bool) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierLow, TierMedium, TierHigh:
		return t, true
	}
	return "", false
}

// wireReport mirrors Report with pointer fields so that absent keys can be
// told apart from zero values.
type wireReport struct {
	TotalIncome               *float64         `json:"total_income" validate:"required"`
	TotalExpenses             *float64         `json:"total_expenses" validate:"required"`
	CurrentSavingsRate        *float64         `json:"current_savings_rate" validate:"required"`
	FinancialHealthScore      *float64         `json:"financial_health_score" validate:"required,min=0,max=100"`
	SpendingAnalysis          []wireSpending   `json:"spending_analysis" validate:"required,dive"`
	TopOverspendingCategories []string         `json:"top_overspending_categories" validate:"required"`
	SavingsRecommendations    []wireSaving     `json:"savings_recommendations" validate:"required,dive"`
	TotalPotentialSavings     *float64         `json:"total_potential_savings" validate:"required"`
	InvestmentSuggestions     []wireInvestment `json:"investment_suggestions" validate:"required,dive"`
	OverallSummary            *string          `json:"overall_summary" validate:"required,min=1"`
	KeyActionItems            []string         `json:"key_action_items" validate:"required"`
}

type wireSpending struct {
	Category           string   `json:"category" validate:"required"`
	AmountSpent        *float64 `json:"amount_spent" validate:"required"`
	PercentageOfIncome *float64 `json:"percentage_of_income" validate:"required"`
	ConcernLevel       string   `json:"concern_level" validate:"required,tier"`
	Insight            string   `json:"insight"`
}

type wireSaving struct {
	Category                string   `json:"category" validate:"required"`
	CurrentSpending         *float64 `json:"current_spending" validate:"required"`
	RecommendedSpending     *float64 `json:"recommended_spending" validate:"required"`
	PotentialMonthlySavings *float64 `json:"potential_monthly_savings" validate:"required"`
	ActionableTips          []string `json:"actionable_tips" validate:"required"`
}

type wireInvestment struct {
	InvestmentType string   `json:"investment_type" validate:"required"`
	AmountToInvest *float64 `json:"amount_to_invest" validate:"required"`
	Priority       string   `json:"priority" validate:"required,tier"`
	Reason         string   `json:"reason"`
	RiskLevel      string   `json:"risk_level" validate:"required,tier"`
}

// StripCodeFence removes a surrounding markdown code fence, with or without a
// json language tag in any case, and the whitespace around it.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
		if len(s) >= len("json") && strings.EqualFold(s[:len("json")], "json") {
			s = s[len("json"):]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Parse decodes and validates a model completion into a Report. Every failure
// is a KindMalformedResponse error.
func Parse(completion string) (Report, error) {
	text := StripCodeFence(completion)
	if text == "" {
		return Report{}, Malformed(errors.New("empty completion"))
	}

	var wire wireReport
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return Report{}, Malformed(fmt.Errorf("decoding report: %w", err))
	}
	if err := reportValidator.Struct(&wire); err != nil {
		return Report{}, Malformed(describeValidation(err))
	}
	return wire.toReport(), nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.TrimPrefix(fe.Namespace(), "wireReport."), fe.Tag()))
	}
	return fmt.Errorf("invalid report fields: %s", strings.Join(fields, ", "))
}

func (w wireReport) toReport() Report {
	r := Report{
		TotalIncome:               *w.TotalIncome,
		TotalExpenses:             *w.TotalExpenses,
		CurrentSavingsRate:        *w.CurrentSavingsRate,
		FinancialHealthScore:      int(math.Round(*w.FinancialHealthScore)),
		SpendingAnalysis:          make([]SpendingAnalysis, 0, len(w.SpendingAnalysis)),
		TopOverspendingCategories: append([]string{}, w.TopOverspendingCategories...),
		SavingsRecommendations:    make([]SavingsRecommendation, 0, len(w.SavingsRecommendations)),
		TotalPotentialSavings:     *w.TotalPotentialSavings,
		InvestmentSuggestions:     make([]InvestmentSuggestion, 0, len(w.InvestmentSuggestions)),
		OverallSummary:            *w.OverallSummary,
		KeyActionItems:            append([]string{}, w.KeyActionItems...),
	}
	for _, s := range w.SpendingAnalysis {
		tier, _ := parseTier(s.ConcernLevel)
		r.SpendingAnalysis = append(r.SpendingAnalysis, SpendingAnalysis{
			Category:           s.Category,
			AmountSpent:        *s.AmountSpent,
			PercentageOfIncome: *s.PercentageOfIncome,
			ConcernLevel:       tier,
			Insight:            s.Insight,
		})
	}
	for _, s := range w.SavingsRecommendations {
		r.SavingsRecommendations = append(r.SavingsRecommendations, SavingsRecommendation{
			Category:                s.Category,
			CurrentSpending:         *s.CurrentSpending,
			RecommendedSpending:     *s.RecommendedSpending,
			PotentialMonthlySavings: *s.PotentialMonthlySavings,
			ActionableTips:          append([]string{}, s.ActionableTips...),
		})
	}
	for _, s := range w.InvestmentSuggestions {
		priority, _ := parseTier(s.Priority)
		risk, _ := parseTier(s.RiskLevel)
		r.InvestmentSuggestions = append(r.InvestmentSuggestions, InvestmentSuggestion{
			InvestmentType: s.InvestmentType,
			AmountToInvest: *s.AmountToInvest,
			Priority:       priority,
			Reason:         s.Reason,
			RiskLevel:      risk,
		})
	}
	return r
}

// Normalize turns the outcome of a model call into a Result. A failed call or
// an unusable completion produces the fallback report tagged with the cause.
func Normalize(agg Aggregates, completion string, callErr error) Result {
	if callErr != nil {
		return fallbackResult(agg, classify(callErr))
	}
	report, err := Parse(completion)
	if err != nil {
		return fallbackResult(agg, classify(err))
	}
	return Result{Report: report, Source: SourceGenerated}
}

func fallbackResult(agg Aggregates, cause *Error) Result {
	return Result{
		Report: Fallback(agg, cause.Error()),
		Source: SourceFallback,
		Err:    cause,
	}
}
