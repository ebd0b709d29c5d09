package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"pencil/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestExpense creates an expense with the given amount (e.g. "12.50"),
// category and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, amount string, category models.ExpenseCategory, date models.Date) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Date:        date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income entry with the given amount, source and date.
func CreateTestIncome(t *testing.T, db *gorm.DB, amount string, source models.IncomeSource, date models.Date) *models.Income {
	t.Helper()

	income := &models.Income{
		Amount:      decimal.RequireFromString(amount),
		Source:      source,
		Description: fmt.Sprintf("Test income %d", nextID()),
		Date:        date,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
