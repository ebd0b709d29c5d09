package services

import (
	"context"

	"github.com/shopspring/decimal"

	"pencil/internal/insights"
	"pencil/internal/models"
	"pencil/internal/pagination"
)

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category *models.ExpenseCategory
	FromDate *models.Date
	ToDate   *models.Date
}

// ExpenseUpdate holds the fields to change on an expense. Nil fields are left
// untouched.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *models.ExpenseCategory
	Description *string
	Date        *models.Date
}

// ExpenseServicer defines the contract for expense records.
type ExpenseServicer interface {
	CreateExpense(amount decimal.Decimal, category models.ExpenseCategory, description string, date models.Date) (*models.Expense, error)
	GetExpenses(filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(id string) (*models.Expense, error)
	UpdateExpense(id string, update ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(id string) error
}

// IncomeFilter holds optional filter parameters for listing income.
type IncomeFilter struct {
	Source   *models.IncomeSource
	FromDate *models.Date
	ToDate   *models.Date
}

// IncomeUpdate holds the fields to change on an income entry. Nil fields are
// left untouched.
type IncomeUpdate struct {
	Amount      *decimal.Decimal
	Source      *models.IncomeSource
	Description *string
	Date        *models.Date
}

// IncomeServicer defines the contract for income records.
type IncomeServicer interface {
	CreateIncome(amount decimal.Decimal, source models.IncomeSource, description string, date models.Date) (*models.Income, error)
	GetIncomes(filter IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(id string) (*models.Income, error)
	UpdateIncome(id string, update IncomeUpdate) (*models.Income, error)
	DeleteIncome(id string) error
}

// CategoryTotal is the spending total for one expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// SourceTotal is the income total for one source.
type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
}

// ExpenseSummary is the per-category expense breakdown.
type ExpenseSummary struct {
	TotalExpenses float64         `json:"total_expenses"`
	ByCategory    []CategoryTotal `json:"by_category"`
}

// IncomeSummary is the per-source income breakdown.
type IncomeSummary struct {
	TotalIncome float64       `json:"total_income"`
	BySource    []SourceTotal `json:"by_source"`
}

// MonthlyTotal is the sum of records whose date falls in Month, the first day
// of a calendar month.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Overview is the combined income and expense position.
type Overview struct {
	TotalIncome       float64         `json:"total_income"`
	TotalExpenses     float64         `json:"total_expenses"`
	Balance           float64         `json:"balance"`
	SavingsRate       float64         `json:"savings_rate"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	IncomeBySource    []SourceTotal   `json:"income_by_source"`
}

// SummaryServicer defines the read-only aggregation queries.
type SummaryServicer interface {
	ExpenseSummary() (*ExpenseSummary, error)
	IncomeSummary() (*IncomeSummary, error)
	ExpenseMonthly() ([]MonthlyTotal, error)
	IncomeMonthly() ([]MonthlyTotal, error)
	Overview() (*Overview, error)
	Aggregates() (insights.Aggregates, error)
}

// InsightsResult is the payload of an insights request. Success stays true
// when the report had to be synthesized locally; Source and Error tell the
// two cases apart.
type InsightsResult struct {
	Success  bool            `json:"success"`
	Source   insights.Source `json:"source"`
	Insights insights.Report `json:"insights"`
	Error    string          `json:"error,omitempty"`
}

// InsightsServicer defines the contract for AI insights generation.
type InsightsServicer interface {
	GenerateInsights(ctx context.Context) (*InsightsResult, error)
}
