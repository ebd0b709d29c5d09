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

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	summaryService services.SummaryServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, summaryService services.SummaryServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, summaryService: summaryService}
}

// ExpenseRequest represents the request payload for creating or replacing an expense.
type ExpenseRequest struct {
	Amount      *decimal.Decimal       `json:"amount" binding:"required,money" swaggertype:"string" example:"12.50"`
	Category    models.ExpenseCategory `json:"category" binding:"omitempty,expense_category" example:"food"`
	Description string                 `json:"description" example:"Lunch"`
	Date        *models.Date           `json:"date" binding:"required" swaggertype:"string" example:"2024-01-05"`
}

// PatchExpenseRequest represents the request payload for partially updating an expense.
type PatchExpenseRequest struct {
	Amount      *decimal.Decimal        `json:"amount" binding:"omitempty,money" swaggertype:"string"`
	Category    *models.ExpenseCategory `json:"category" binding:"omitempty,expense_category"`
	Description *string                 `json:"description"`
	Date        *models.Date            `json:"date" swaggertype:"string"`
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Description Record a new expense. Category defaults to "other".
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/ [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(*req.Amount, req.Category, req.Description, *req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing expenses.
// @Summary     List expenses
// @Description Get a paginated list of expenses, newest first
// @Tags        expenses
// @Produce     json
// @Param       category  query string false "Filter by category"
// @Param       from      query string false "Earliest date (YYYY-MM-DD)"
// @Param       to        query string false "Latest date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/ [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ExpenseFilter
	if v := c.Query("category"); v != "" {
		category := models.ExpenseCategory(v)
		if !category.IsValid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category: "+v))
			return
		}
		filter.Category = &category
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

	result, err := h.expenseService.GetExpenses(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/ [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// ReplaceExpense handles a full update of an expense.
// @Summary     Replace expense
// @Description Overwrite every field of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path string         true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/ [put]
func (h *ExpenseHandler) ReplaceExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category := req.Category
	if category == "" {
		category = models.ExpenseCategoryOther
	}
	expense, err := h.expenseService.UpdateExpense(id, services.ExpenseUpdate{
		Amount:      req.Amount,
		Category:    &category,
		Description: &req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles a partial update of an expense.
// @Summary     Update expense
// @Description Change only the supplied fields of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Expense ID"
// @Param       request body PatchExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/ [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PatchExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(id, services.ExpenseUpdate{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/ [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetExpenseSummary handles the per-category expense breakdown.
// @Summary     Expense summary
// @Description Total spending and per-category totals, largest first
// @Tags        expenses
// @Produce     json
// @Success     200 {object} services.ExpenseSummary "Expense summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary/ [get]
func (h *ExpenseHandler) GetExpenseSummary(c *gin.Context) {
	summary, err := h.summaryService.ExpenseSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetExpenseMonthly handles monthly expense totals.
// @Summary     Monthly expenses
// @Description Spending per calendar month, oldest first
// @Tags        expenses
// @Produce     json
// @Success     200 {array}  services.MonthlyTotal "Monthly totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/monthly/ [get]
func (h *ExpenseHandler) GetExpenseMonthly(c *gin.Context) {
	totals, err := h.summaryService.ExpenseMonthly()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}
