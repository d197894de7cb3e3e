package http

import (
	"errors"
	"net/http"

	"equipment-loan/internal/domain/submission"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps domain errors onto status codes. Unknown errors are
// logged and reported as 500 without their text.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, submission.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "submission not found"})
	case errors.Is(err, submission.ErrInvalidStatus):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "status", Message: "must not be blank"}},
		})
	case errors.Is(err, submission.ErrNoEmail):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "submission has no email on file"})
	case errors.Is(err, submission.ErrDeliveryFailed):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	case errors.Is(err, submission.ErrStoreUnavailable):
		log.Error("store unavailable", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage temporarily unavailable"})
	default:
		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// errorHandler renders echo's own errors (404 route, 401 basic auth, bind
// failures) in the same payload shape as handler errors.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Error: msg})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
