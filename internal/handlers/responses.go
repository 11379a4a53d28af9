package handlers

import (
	"log/slog"
	"net/http"

	"retail-sales-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors (4xx responses)
//    Use cases:
//    - Invalid query parameters: SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("..."))
//    - Not found errors: SendError(c, errors.TransactionNotFound)
//
// 2. SendSystemError - For storage and internal errors (500 responses)
//    The underlying error text is attached only when the handler is allowed
//    to expose it (outside production).
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs err and answers 500 with the given code.
// When expose is set the error text is included in the response.
func SendSystemError(c echo.Context, code errors.ErrorCode, err error, expose bool) error {
	traceID := getTraceID(c)

	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", traceID,
		"error_code", code,
		"path", c.Request().URL.Path,
		"error", err.Error(),
	)

	opts := []errors.ErrorOption{}
	if expose {
		opts = append(opts, errors.WithCause(err))
	}
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
