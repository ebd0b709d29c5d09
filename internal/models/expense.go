package models

import "github.com/shopspring/decimal"

// ExpenseCategory is the closed set of spending categories.
type ExpenseCategory string

const (
	ExpenseCategoryFood          ExpenseCategory = "food"
	ExpenseCategoryTransport     ExpenseCategory = "transport"
	ExpenseCategoryUtilities     ExpenseCategory = "utilities"
	ExpenseCategoryEntertainment ExpenseCategory = "entertainment"
	ExpenseCategoryHealthcare    ExpenseCategory = "healthcare"
	ExpenseCategoryShopping      ExpenseCategory = "shopping"
	ExpenseCategoryEducation     ExpenseCategory = "education"
	ExpenseCategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories lists every valid category.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryFood,
	ExpenseCategoryTransport,
	ExpenseCategoryUtilities,
	ExpenseCategoryEntertainment,
	ExpenseCategoryHealthcare,
	ExpenseCategoryShopping,
	ExpenseCategoryEducation,
	ExpenseCategoryOther,
}

// IsValid reports whether c is one of ExpenseCategories.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents a single expenditure.
type Expense struct {
	Base
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"size:50;not null;default:other;index" json:"category"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Date        Date            `gorm:"type:date;not null;index" json:"date"`
}
