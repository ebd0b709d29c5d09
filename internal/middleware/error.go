package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "pencil/internal/errors"
	"pencil/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error as the
// {"error": {"code", "message"}} envelope. Errors that are not AppErrors are
// reported as INTERNAL_ERROR so their text never reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := toAppError(c.Errors.Last().Err)
		if appErr.Internal != nil || appErr.StatusCode >= 500 {
			fields := []interface{}{
				"code", appErr.Code,
				"status", appErr.StatusCode,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			}
			if id, ok := c.Get(requestIDKey); ok {
				fields = append(fields, "request_id", id)
			}
			if appErr.Internal != nil {
				fields = append(fields, "internal", appErr.Internal.Error())
			}
			logger.Get().Errorw("request failed", fields...)
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
