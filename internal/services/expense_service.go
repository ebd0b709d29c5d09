package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pencil/internal/errors"
	"pencil/internal/models"
	"pencil/internal/pagination"
)

// expenseService handles expense records.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense. An empty category defaults to other.
func (s *expenseService) CreateExpense(
	amount decimal.Decimal,
	category models.ExpenseCategory,
	description string,
	date models.Date,
) (*models.Expense, error) {
	if category == "" {
		category = models.ExpenseCategoryOther
	}

	expense := &models.Expense{
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpenses retrieves a paginated list of expenses, newest first.
func (s *expenseService) GetExpenses(filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order(models.DefaultOrder).Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies the non-nil fields of update to an expense.
func (s *expenseService) UpdateExpense(id string, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Description != nil {
		expense.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense permanently removes an expense.
func (s *expenseService) DeleteExpense(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

func validateExpense(e *models.Expense) error {
	if !models.ValidAmount(e.Amount) {
		return apperrors.ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category: "+string(e.Category))
	}
	if e.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
