package middleware

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Structured checkout failures carry extra data the frontend renders.
	var missingErr *domainerrors.MissingProofError
	if errors.As(err, &missingErr) {
		c.JSON(missingErr.HTTPCode(), response.Response{
			Success: false,
			Code:    missingErr.HTTPCode(),
			Message: missingErr.Message(),
			Data:    map[string]any{"missing": missingErr.Missing()},
			Error: &response.ErrorInfo{
				Code:    missingErr.ErrorCode(),
				Details: missingErr.Details(),
			},
		})

		return
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(validationErr.HTTPCode(), response.Response{
			Success: false,
			Code:    validationErr.HTTPCode(),
			Message: validationErr.Message(),
			Data:    map[string]any{"fields": validationErr.Fields()},
			Error: &response.ErrorInfo{
				Code:    validationErr.ErrorCode(),
				Details: validationErr.Details(),
			},
		})

		return
	}

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPCode(), response.Response{
			Success: false,
			Code:    appErr.HTTPCode(),
			Message: appErr.Message(),
			Error: &response.ErrorInfo{
				Code:    appErr.ErrorCode(),
				Details: appErr.Details(),
			},
		})

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if text, ok := httpErr.Message.(string); ok {
			message = text
		}
		c.JSON(httpErr.Code, response.Response{
			Success: false,
			Code:    httpErr.Code,
			Message: message,
			Error: &response.ErrorInfo{
				Code:    "HTTP_ERROR",
				Details: message,
			},
		})

		return
	}

	// Default to internal error, log error and return generic error
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	c.JSON(http.StatusInternalServerError, response.Response{
		Success: false,
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Error: &response.ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		},
	})
}
