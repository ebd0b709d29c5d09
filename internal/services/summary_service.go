package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pencil/internal/errors"
	"pencil/internal/insights"
	"pencil/internal/models"
)

// topExpenseLimit is how many individual expenses are quoted to the model.
const topExpenseLimit = 5

// summaryService runs read-only aggregation queries over the record tables.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

type groupRow struct {
	Name  string
	Total decimal.Decimal
	Count int64
}

type monthRow struct {
	Month string
	Total decimal.Decimal
}

// ExpenseSummary returns total spending and the per-category breakdown.
func (s *summaryService) ExpenseSummary() (*ExpenseSummary, error) {
	total, err := s.total(&models.Expense{})
	if err != nil {
		return nil, err
	}
	groups, err := s.groupTotals(&models.Expense{}, "category")
	if err != nil {
		return nil, err
	}
	return &ExpenseSummary{
		TotalExpenses: total.InexactFloat64(),
		ByCategory:    toCategoryTotals(groups),
	}, nil
}

// IncomeSummary returns total income and the per-source breakdown.
func (s *summaryService) IncomeSummary() (*IncomeSummary, error) {
	total, err := s.total(&models.Income{})
	if err != nil {
		return nil, err
	}
	groups, err := s.groupTotals(&models.Income{}, "source")
	if err != nil {
		return nil, err
	}
	return &IncomeSummary{
		TotalIncome: total.InexactFloat64(),
		BySource:    toSourceTotals(groups),
	}, nil
}

// ExpenseMonthly returns spending per calendar month, oldest first.
func (s *summaryService) ExpenseMonthly() ([]MonthlyTotal, error) {
	return s.monthly(&models.Expense{})
}

// IncomeMonthly returns income per calendar month, oldest first.
func (s *summaryService) IncomeMonthly() ([]MonthlyTotal, error) {
	return s.monthly(&models.Income{})
}

// Overview combines both summaries with balance and savings rate.
func (s *summaryService) Overview() (*Overview, error) {
	agg, err := s.collect(false)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalIncome:       agg.TotalIncome.InexactFloat64(),
		TotalExpenses:     agg.TotalExpenses.InexactFloat64(),
		Balance:           agg.Balance.InexactFloat64(),
		SavingsRate:       agg.SavingsRate.InexactFloat64(),
		ExpenseByCategory: make([]CategoryTotal, 0, len(agg.Categories)),
		IncomeBySource:    toSourceTotals(agg.IncomeSources),
	}
	for _, c := range agg.Categories {
		overview.ExpenseByCategory = append(overview.ExpenseByCategory, CategoryTotal{
			Category: c.Category,
			Total:    c.Amount.InexactFloat64(),
			Count:    c.Count,
		})
	}
	return overview, nil
}

// Aggregates gathers everything the insights pipeline needs, including the
// largest individual expenses.
func (s *summaryService) Aggregates() (insights.Aggregates, error) {
	return s.collect(true)
}

func (s *summaryService) collect(withTop bool) (insights.Aggregates, error) {
	totalIncome, err := s.total(&models.Income{})
	if err != nil {
		return insights.Aggregates{}, err
	}
	totalExpenses, err := s.total(&models.Expense{})
	if err != nil {
		return insights.Aggregates{}, err
	}
	byCategory, err := s.groupTotals(&models.Expense{}, "category")
	if err != nil {
		return insights.Aggregates{}, err
	}
	bySource, err := s.groupTotals(&models.Income{}, "source")
	if err != nil {
		return insights.Aggregates{}, err
	}

	var top []insights.ExpenseLine
	if withTop {
		if top, err = s.topExpenses(); err != nil {
			return insights.Aggregates{}, err
		}
	}

	return insights.NewAggregates(totalIncome, totalExpenses, byCategory, bySource, top), nil
}

func (s *summaryService) total(model interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.Model(model).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total.Round(2), nil
}

func (s *summaryService) groupTotals(model interface{}, column string) ([]insights.GroupTotal, error) {
	var rows []groupRow
	err := s.db.Model(model).
		Select(column + " AS name, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group(column).
		Order("total DESC").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	groups := make([]insights.GroupTotal, 0, len(rows))
	for _, r := range rows {
		groups = append(groups, insights.GroupTotal{Name: r.Name, Total: r.Total.Round(2), Count: r.Count})
	}
	return groups, nil
}

func (s *summaryService) monthly(model interface{}) ([]MonthlyTotal, error) {
	month := monthExpr(s.db)

	var rows []monthRow
	err := s.db.Model(model).
		Select(month + " AS month, COALESCE(SUM(amount), 0) AS total").
		Group(month).
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make([]MonthlyTotal, 0, len(rows))
	for _, r := range rows {
		totals = append(totals, MonthlyTotal{Month: r.Month, Total: r.Total.Round(2).InexactFloat64()})
	}
	return totals, nil
}

func (s *summaryService) topExpenses() ([]insights.ExpenseLine, error) {
	var expenses []models.Expense
	if err := s.db.Order("amount DESC, " + models.DefaultOrder).Limit(topExpenseLimit).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lines := make([]insights.ExpenseLine, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, insights.ExpenseLine{
			Date:        e.Date.String(),
			Category:    string(e.Category),
			Amount:      e.Amount,
			Description: e.Description,
		})
	}
	return lines, nil
}

// monthExpr truncates the date column to the first day of its month as a
// YYYY-MM-DD string.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-01', date)"
	}
	return "to_char(date_trunc('month', date), 'YYYY-MM-DD')"
}

func toCategoryTotals(groups []insights.GroupTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryTotal{Category: g.Name, Total: g.Total.InexactFloat64(), Count: g.Count})
	}
	return out
}

func toSourceTotals(groups []insights.GroupTotal) []SourceTotal {
	out := make([]SourceTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, SourceTotal{Source: g.Name, Total: g.Total.InexactFloat64(), Count: g.Count})
	}
	return out
}
