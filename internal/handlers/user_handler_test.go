package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pencil/internal/errors"
	"pencil/internal/insights"
	"pencil/internal/middleware"
	"pencil/internal/services"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/users/overview/", handler.GetOverview)
	r.POST("/users/ai-insights/", handler.GenerateInsights)
	return r
}

func TestUserHandler_GetOverview(t *testing.T) {
	t.Run("returns overview", func(t *testing.T) {
		summary := &mockSummaryService{
			overviewFn: func() (*services.Overview, error) {
				return &services.Overview{
					TotalIncome:       1000,
					TotalExpenses:     500,
					Balance:           500,
					SavingsRate:       50,
					ExpenseByCategory: []services.CategoryTotal{},
					IncomeBySource:    []services.SourceTotal{},
				}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(summary, &mockInsightsService{}))

		rec := doRequest(r, "GET", "/users/overview/", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["savings_rate"].(float64) != 50 {
			t.Errorf("expected savings rate 50, got %v", result["savings_rate"])
		}
		if _, ok := result["expense_by_category"].([]interface{}); !ok {
			t.Errorf("expected expense_by_category list, got %v", result["expense_by_category"])
		}
	})
}

func TestUserHandler_GenerateInsights(t *testing.T) {
	t.Run("returns fallback with 200", func(t *testing.T) {
		svc := &mockInsightsService{
			generateInsightsFn: func(context.Context) (*services.InsightsResult, error) {
				agg := insights.NewAggregates(decimal.Zero, decimal.Zero, nil, nil, nil)
				report := insights.Fallback(agg, "upstream_error: timeout")
				return &services.InsightsResult{
					Success:  true,
					Source:   insights.SourceFallback,
					Insights: report,
					Error:    "upstream_error: timeout",
				}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(&mockSummaryService{}, svc))

		rec := doRequest(r, "POST", "/users/ai-insights/", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true || result["source"] != "fallback" {
			t.Errorf("unexpected envelope: %v", result)
		}
		report := result["insights"].(map[string]interface{})
		if report["financial_health_score"].(float64) != 75 {
			t.Errorf("expected score 75, got %v", report["financial_health_score"])
		}
		if _, ok := report["spending_analysis"].([]interface{}); !ok {
			t.Errorf("expected spending_analysis list, got %v", report["spending_analysis"])
		}
	})

	t.Run("omits error on generated report", func(t *testing.T) {
		svc := &mockInsightsService{
			generateInsightsFn: func(context.Context) (*services.InsightsResult, error) {
				return &services.InsightsResult{Success: true, Source: insights.SourceGenerated}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(&mockSummaryService{}, svc))

		rec := doRequest(r, "POST", "/users/ai-insights/", "")

		if _, ok := parseJSON(t, rec)["error"]; ok {
			t.Errorf("expected no error key, got %s", rec.Body.String())
		}
	})

	t.Run("returns 503 when not configured", func(t *testing.T) {
		svc := &mockInsightsService{
			generateInsightsFn: func(context.Context) (*services.InsightsResult, error) {
				return nil, apperrors.ErrInsightsUnavailable
			},
		}
		r := setupUserRouter(NewUserHandler(&mockSummaryService{}, svc))

		rec := doRequest(r, "POST", "/users/ai-insights/", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSIGHTS_UNAVAILABLE")
	})
}
