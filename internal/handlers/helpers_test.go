package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pencil/internal/insights"
	"pencil/internal/models"
	"pencil/internal/pagination"
	"pencil/internal/services"
	"pencil/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testID = "0190a4f0-1c2d-7e3f-8a4b-5c6d7e8f9a0b"

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- mock expense service ---

type mockExpenseService struct {
	createExpenseFn  func(amount decimal.Decimal, category models.ExpenseCategory, description string, date models.Date) (*models.Expense, error)
	getExpensesFn    func(filter services.ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn func(id string) (*models.Expense, error)
	updateExpenseFn  func(id string, update services.ExpenseUpdate) (*models.Expense, error)
	deleteExpenseFn  func(id string) error
}

func (m *mockExpenseService) CreateExpense(amount decimal.Decimal, category models.ExpenseCategory, description string, date models.Date) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(amount, category, description, date)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetExpenses(filter services.ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.getExpensesFn != nil {
		return m.getExpensesFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(id string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(id)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(id string, update services.ExpenseUpdate) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(id, update)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(id string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(id)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

// --- mock income service ---

type mockIncomeService struct {
	createIncomeFn  func(amount decimal.Decimal, source models.IncomeSource, description string, date models.Date) (*models.Income, error)
	getIncomesFn    func(filter services.IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	getIncomeByIDFn func(id string) (*models.Income, error)
	updateIncomeFn  func(id string, update services.IncomeUpdate) (*models.Income, error)
	deleteIncomeFn  func(id string) error
}

func (m *mockIncomeService) CreateIncome(amount decimal.Decimal, source models.IncomeSource, description string, date models.Date) (*models.Income, error) {
	if m.createIncomeFn != nil {
		return m.createIncomeFn(amount, source, description, date)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) GetIncomes(filter services.IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	if m.getIncomesFn != nil {
		return m.getIncomesFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Income{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockIncomeService) GetIncomeByID(id string) (*models.Income, error) {
	if m.getIncomeByIDFn != nil {
		return m.getIncomeByIDFn(id)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) UpdateIncome(id string, update services.IncomeUpdate) (*models.Income, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(id, update)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) DeleteIncome(id string) error {
	if m.deleteIncomeFn != nil {
		return m.deleteIncomeFn(id)
	}
	return nil
}

var _ services.IncomeServicer = (*mockIncomeService)(nil)

// --- mock summary service ---

type mockSummaryService struct {
	expenseSummaryFn func() (*services.ExpenseSummary, error)
	incomeSummaryFn  func() (*services.IncomeSummary, error)
	expenseMonthlyFn func() ([]services.MonthlyTotal, error)
	incomeMonthlyFn  func() ([]services.MonthlyTotal, error)
	overviewFn       func() (*services.Overview, error)
}

func (m *mockSummaryService) ExpenseSummary() (*services.ExpenseSummary, error) {
	if m.expenseSummaryFn != nil {
		return m.expenseSummaryFn()
	}
	return &services.ExpenseSummary{ByCategory: []services.CategoryTotal{}}, nil
}

func (m *mockSummaryService) IncomeSummary() (*services.IncomeSummary, error) {
	if m.incomeSummaryFn != nil {
		return m.incomeSummaryFn()
	}
	return &services.IncomeSummary{BySource: []services.SourceTotal{}}, nil
}

func (m *mockSummaryService) ExpenseMonthly() ([]services.MonthlyTotal, error) {
	if m.expenseMonthlyFn != nil {
		return m.expenseMonthlyFn()
	}
	return []services.MonthlyTotal{}, nil
}

func (m *mockSummaryService) IncomeMonthly() ([]services.MonthlyTotal, error) {
	if m.incomeMonthlyFn != nil {
		return m.incomeMonthlyFn()
	}
	return []services.MonthlyTotal{}, nil
}

func (m *mockSummaryService) Overview() (*services.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn()
	}
	return &services.Overview{}, nil
}

func (m *mockSummaryService) Aggregates() (insights.Aggregates, error) {
	return insights.Aggregates{}, nil
}

var _ services.SummaryServicer = (*mockSummaryService)(nil)

// --- mock insights service ---

type mockInsightsService struct {
	generateInsightsFn func(ctx context.Context) (*services.InsightsResult, error)
}

func (m *mockInsightsService) GenerateInsights(ctx context.Context) (*services.InsightsResult, error) {
	if m.generateInsightsFn != nil {
		return m.generateInsightsFn(ctx)
	}
	return &services.InsightsResult{Success: true}, nil
}

var _ services.InsightsServicer = (*mockInsightsService)(nil)
