package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "pencil/internal/errors"
	"pencil/internal/insights"
	"pencil/internal/logger"
	"pencil/internal/models"
	"pencil/internal/testutil"
)

// fakeCompleter returns a canned completion and records the prompt it saw.
type fakeCompleter struct {
	completion string
	err        error
	prompt     string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.completion, f.err
}

// stubSummary is a SummaryServicer whose Aggregates call fails.
type stubSummary struct {
	SummaryServicer
	err error
}

func (s stubSummary) Aggregates() (insights.Aggregates, error) {
	return insights.Aggregates{}, s.err
}

const generatedReport = "```json\n" + `{
  "total_income": 1000, "total_expenses": 500, "current_savings_rate": 50,
  "financial_health_score": 80,
  "spending_analysis": [{"category": "food", "amount_spent": 400, "percentage_of_income": 40, "concern_level": "high", "insight": "high"}],
  "top_overspending_categories": ["food"],
  "savings_recommendations": [],
  "total_potential_savings": 0,
  "investment_suggestions": [],
  "overall_summary": "Doing well.",
  "key_action_items": []
}` + "\n```"

func TestGenerateInsights(t *testing.T) {
	t.Run("not_configured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInsightsService(NewSummaryService(db), nil)

		_, err := svc.GenerateInsights(context.Background())
		testutil.AssertAppError(t, err, "INSIGHTS_UNAVAILABLE")
	})

	t.Run("generated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestIncome(t, db, "1000.00", models.IncomeSourceSalary, models.Today())
		testutil.CreateTestExpense(t, db, "400.00", models.ExpenseCategoryFood, models.Today())
		testutil.CreateTestExpense(t, db, "100.00", models.ExpenseCategoryTransport, models.Today())

		completer := &fakeCompleter{completion: generatedReport}
		svc := NewInsightsService(NewSummaryService(db), completer)

		result, err := svc.GenerateInsights(context.Background())
		testutil.AssertNoError(t, err)

		if !result.Success || result.Source != insights.SourceGenerated || result.Error != "" {
			t.Errorf("expected generated success, got %+v", result)
		}
		if result.Insights.FinancialHealthScore != 80 {
			t.Errorf("expected model score 80, got %d", result.Insights.FinancialHealthScore)
		}
		if !strings.Contains(completer.prompt, "Savings 50.0%") {
			t.Errorf("prompt missing savings rate:\n%s", completer.prompt)
		}
		if !strings.Contains(completer.prompt, "- food: $400.00 (40.0%") {
			t.Errorf("prompt missing food share:\n%s", completer.prompt)
		}
	})

	t.Run("model_failure_falls_back", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		logger.Set(zap.New(core))
		defer logger.Set(zap.NewNop())

		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestIncome(t, db, "1000.00", models.IncomeSourceSalary, models.Today())
		testutil.CreateTestExpense(t, db, "400.00", models.ExpenseCategoryFood, models.Today())

		completer := &fakeCompleter{err: insights.Upstream(errors.New("context deadline exceeded"))}
		svc := NewInsightsService(NewSummaryService(db), completer)

		result, err := svc.GenerateInsights(context.Background())
		testutil.AssertNoError(t, err)

		if !result.Success || result.Source != insights.SourceFallback {
			t.Errorf("expected fallback success, got %+v", result)
		}
		if result.Insights.FinancialHealthScore != 75 {
			t.Errorf("expected fallback score 75, got %d", result.Insights.FinancialHealthScore)
		}
		if !strings.Contains(result.Error, "upstream_error") {
			t.Errorf("expected upstream error, got %q", result.Error)
		}
		if !strings.Contains(result.Insights.OverallSummary, "context deadline exceeded") {
			t.Errorf("summary should carry the reason: %q", result.Insights.OverallSummary)
		}
		if logs.FilterMessage("Insights fell back to local report").Len() != 1 {
			t.Errorf("expected one fallback warning, got %d entries", logs.Len())
		}
	})

	t.Run("malformed_completion_falls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewInsightsService(NewSummaryService(db), &fakeCompleter{completion: "I cannot help with that."})

		result, err := svc.GenerateInsights(context.Background())
		testutil.AssertNoError(t, err)
		if result.Source != insights.SourceFallback || !strings.HasPrefix(result.Error, "malformed_response") {
			t.Errorf("expected malformed fallback, got %+v", result)
		}
		if len(result.Insights.SpendingAnalysis) != 0 {
			t.Errorf("expected empty analysis without expenses, got %+v", result.Insights.SpendingAnalysis)
		}
	})

	t.Run("aggregation_failure", func(t *testing.T) {
		summary := stubSummary{err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))}
		svc := NewInsightsService(summary, &fakeCompleter{})

		_, err := svc.GenerateInsights(context.Background())
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}
