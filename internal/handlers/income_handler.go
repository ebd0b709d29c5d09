package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pencil/internal/errors"
	"pencil/internal/models"
	"pencil/internal/pagination"
	"pencil/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService  services.IncomeServicer
	summaryService services.SummaryServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, summaryService services.SummaryServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, summaryService: summaryService}
}

// IncomeRequest represents the request payload for creating or replacing an income entry.
type IncomeRequest struct {
	Amount      *decimal.Decimal    `json:"amount" binding:"required,money" swaggertype:"string" example:"2500.00"`
	Source      models.IncomeSource `json:"source" binding:"omitempty,income_source" example:"salary"`
	Description string              `json:"description" example:"Monthly salary"`
	Date        *models.Date        `json:"date" binding:"required" swaggertype:"string" example:"2024-01-31"`
}

// PatchIncomeRequest represents the request payload for partially updating an income entry.
type PatchIncomeRequest struct {
	Amount      *decimal.Decimal     `json:"amount" binding:"omitempty,money" swaggertype:"string"`
	Source      *models.IncomeSource `json:"source" binding:"omitempty,income_source"`
	Description *string              `json:"description"`
	Date        *models.Date         `json:"date" swaggertype:"string"`
}

// CreateIncome handles the creation of a new income entry.
// @Summary     Create an income entry
// @Description Record new income. Source defaults to "other".
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       request body IncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/ [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.CreateIncome(*req.Amount, req.Source, req.Description, *req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncomes handles listing income entries.
// @Summary     List income
// @Description Get a paginated list of income entries, newest first
// @Tags        income
// @Produce     json
// @Param       source    query string false "Filter by source"
// @Param       from      query string false "Earliest date (YYYY-MM-DD)"
// @Param       to        query string false "Latest date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/ [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.IncomeFilter
	if v := c.Query("source"); v != "" {
		source := models.IncomeSource(v)
		if !source.IsValid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown income source: "+v))
			return
		}
		filter.Source = &source
	}

	var err error
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.incomeService.GetIncomes(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncome handles retrieving a specific income entry.
// @Summary     Get income by ID
// @Tags        income
// @Produce     json
// @Param       id path string true "Income ID"
// @Success     200 {object} models.Income "Income details"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id}/ [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// ReplaceIncome handles a full update of an income entry.
// @Summary     Replace income
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       id      path string        true "Income ID"
// @Param       request body IncomeRequest true "Income details"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input or income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id}/ [put]
func (h *IncomeHandler) ReplaceIncome(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source := req.Source
	if source == "" {
		source = models.IncomeSourceOther
	}
	income, err := h.incomeService.UpdateIncome(id, services.IncomeUpdate{
		Amount:      req.Amount,
		Source:      &source,
		Description: &req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// UpdateIncome handles a partial update of an income entry.
// @Summary     Update income
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Income ID"
// @Param       request body PatchIncomeRequest true "Fields to change"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input or income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id}/ [patch]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PatchIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.UpdateIncome(id, services.IncomeUpdate{
		Amount:      req.Amount,
		Source:      req.Source,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome handles deleting an income entry.
// @Summary     Delete income
// @Tags        income
// @Produce     json
// @Param       id path string true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id}/ [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}

// GetIncomeSummary handles the per-source income breakdown.
// @Summary     Income summary
// @Description Total income and per-source totals, largest first
// @Tags        income
// @Produce     json
// @Success     200 {object} services.IncomeSummary "Income summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/summary/ [get]
func (h *IncomeHandler) GetIncomeSummary(c *gin.Context) {
	summary, err := h.summaryService.IncomeSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetIncomeMonthly handles monthly income totals.
// @Summary     Monthly income
// @Description Income per calendar month, oldest first
// @Tags        income
// @Produce     json
// @Success     200 {array}  services.MonthlyTotal "Monthly totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/monthly/ [get]
func (h *IncomeHandler) GetIncomeMonthly(c *gin.Context) {
	totals, err := h.summaryService.IncomeMonthly()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}
