package models

import "github.com/shopspring/decimal"

// IncomeSource is the closed set of income sources.
type IncomeSource string

const (
	IncomeSourceSalary     IncomeSource = "salary"
	IncomeSourceFreelance  IncomeSource = "freelance"
	IncomeSourceBusiness   IncomeSource = "business"
	IncomeSourceInvestment IncomeSource = "investment"
	IncomeSourceGift       IncomeSource = "gift"
	IncomeSourceOther      IncomeSource = "other"
)

// IncomeSources lists every valid source.
var IncomeSources = []IncomeSource{
	IncomeSourceSalary,
	IncomeSourceFreelance,
	IncomeSourceBusiness,
	IncomeSourceInvestment,
	IncomeSourceGift,
	IncomeSourceOther,
}

// IsValid reports whether s is one of IncomeSources.
func (s IncomeSource) IsValid() bool {
	for _, known := range IncomeSources {
		if s == known {
			return true
		}
	}
	return false
}

// Income represents a single income entry.
type Income struct {
	Base
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Source      IncomeSource    `gorm:"size:50;not null;default:other;index" json:"source"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Date        Date            `gorm:"type:date;not null;index" json:"date"`
}

// TableName keeps the table name aligned with the SQL migrations.
func (Income) TableName() string {
	return "incomes"
}
