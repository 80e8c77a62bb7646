package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/pkg/api"
	"go.uber.org/zap"
)

const (
	msgSelectFailed = "Failed to select model"
	msgInternal     = "Internal server error"
)

// ErrorStatus maps an error onto the status code and body the API returns for it.
// Unknown errors never leak their text.
func ErrorStatus(err error) (int, api.ErrorResponse) {
	e, ok := domain.AsError(err)
	if !ok {
		return http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal}
	}

	switch e.Kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest, api.ErrorResponse{Error: e.Message, Details: e.Details}
	case domain.KindClassificationFailed:
		return http.StatusInternalServerError, api.ErrorResponse{Error: msgSelectFailed}
	case domain.KindUpstreamUnavailable:
		if e.Cause == domain.CauseRateLimited {
			return http.StatusTooManyRequests, api.ErrorResponse{Error: e.Message}
		}
		return http.StatusInternalServerError, api.ErrorResponse{Error: e.Message}
	case domain.KindConfig, domain.KindNoEligibleModel:
		return http.StatusInternalServerError, api.ErrorResponse{Error: e.Message}
	default:
		return http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal}
	}
}

// ErrorHandler is a custom error handling middleware that handles all errors returned by handlers
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// check if there is an error, if so, get the last error
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status, body := ErrorStatus(err)

		fields := []zap.Field{zap.Int("status", status), zap.Error(err)}
		var e *domain.Error
		if errors.As(err, &e) {
			fields = append(fields, zap.String("kind", string(e.Kind)))
			if e.Cause != "" {
				fields = append(fields, zap.String("cause", string(e.Cause)))
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", fields...)
		} else {
			logger.Debug("Request rejected", fields...)
		}

		// we want to prevent the other middleware from writing to the response
		c.AbortWithStatusJSON(status, body)
	}
}
