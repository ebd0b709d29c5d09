package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "pencil/internal/errors"
	"pencil/internal/models"
	"pencil/internal/uuid"
)

// parsePathID reads a record ID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, key string) (*models.Date, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, key+": "+err.Error())
	}
	return &d, nil
}

// respondWithError attaches err to the request; middleware.ErrorHandler
// renders it.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
}
