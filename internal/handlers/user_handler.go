package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pencil/internal/services"
)

// UserHandler serves the user-level views that span both record types.
type UserHandler struct {
	summaryService  services.SummaryServicer
	insightsService services.InsightsServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(summaryService services.SummaryServicer, insightsService services.InsightsServicer) *UserHandler {
	return &UserHandler{summaryService: summaryService, insightsService: insightsService}
}

// GetOverview handles the combined financial overview.
// @Summary     Financial overview
// @Description Totals, balance, savings rate and both breakdowns
// @Tags        users
// @Produce     json
// @Success     200 {object} services.Overview "Overview"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/overview/ [get]
func (h *UserHandler) GetOverview(c *gin.Context) {
	overview, err := h.summaryService.Overview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GenerateInsights handles an AI insights request.
// @Summary     AI financial insights
// @Description Analyze all records with the configured model. When the model
// @Description call or its answer fails, a locally computed report is returned
// @Description with source "fallback" and the reason in error.
// @Tags        users
// @Produce     json
// @Success     200 {object} services.InsightsResult "Insights report"
// @Failure     500 {object} ErrorResponse "Server error"
// @Failure     503 {object} ErrorResponse "Insights not configured"
// @Router      /users/ai-insights/ [post]
func (h *UserHandler) GenerateInsights(c *gin.Context) {
	result, err := h.insightsService.GenerateInsights(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
