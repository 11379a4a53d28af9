package handlers

import (
	"fmt"

	"retail-sales-api/internal/errors"
	"retail-sales-api/internal/query"
	"retail-sales-api/internal/repositories"

	"github.com/labstack/echo/v4"
)

// sendError maps query, repository and service failures onto the API envelope
func (h *TransactionHandler) sendError(c echo.Context, err error) error {
	var paramErr *query.InvalidParameterError
	switch {
	case errors.As(err, &paramErr):
		code := errors.ValidationInvalidFormat
		if paramErr.Date {
			code = errors.ValidationInvalidDate
		}
		return SendError(c, code,
			errors.WithDetails(fmt.Sprintf("%s: %s", paramErr.Param, paramErr.Reason)),
		)
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	default:
		return SendSystemError(c, errors.SystemDatabaseError, err, h.config.ExposeErrors)
	}
}
