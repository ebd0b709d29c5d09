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

// incomeService handles income records.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records a new income entry. An empty source defaults to other.
func (s *incomeService) CreateIncome(
	amount decimal.Decimal,
	source models.IncomeSource,
	description string,
	date models.Date,
) (*models.Income, error) {
	if source == "" {
		source = models.IncomeSourceOther
	}

	income := &models.Income{
		Amount:      amount,
		Source:      source,
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := validateIncome(income); err != nil {
		return nil, err
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetIncomes retrieves a paginated list of income entries, newest first.
func (s *incomeService) GetIncomes(filter IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{})
	if filter.Source != nil {
		base = base.Where("source = ?", *filter.Source)
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

	var incomes []models.Income
	if err := base.Order(models.DefaultOrder).Scopes(pagination.Paginate(page)).Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves a single income entry.
func (s *incomeService) GetIncomeByID(id string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ?", id).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome applies the non-nil fields of update to an income entry.
func (s *incomeService) UpdateIncome(id string, update IncomeUpdate) (*models.Income, error) {
	income, err := s.GetIncomeByID(id)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil {
		income.Amount = *update.Amount
	}
	if update.Source != nil {
		income.Source = *update.Source
	}
	if update.Description != nil {
		income.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		income.Date = *update.Date
	}
	if err := validateIncome(income); err != nil {
		return nil, err
	}

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// DeleteIncome permanently removes an income entry.
func (s *incomeService) DeleteIncome(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Income{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrIncomeNotFound
	}
	return nil
}

func validateIncome(i *models.Income) error {
	if !models.ValidAmount(i.Amount) {
		return apperrors.ErrInvalidAmount
	}
	if !i.Source.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown income source: "+string(i.Source))
	}
	if i.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
