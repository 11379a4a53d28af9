package handlers

import (
	"fmt"
	"net/http"
	"time"

	"retail-sales-api/internal/dto"
	"retail-sales-api/internal/errors"
	"retail-sales-api/internal/query"
	"retail-sales-api/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandlerConfig tunes request parsing and error exposure
type TransactionHandlerConfig struct {
	PageOptions query.PageOptions
	// ExposeErrors attaches internal error text to 500 responses
	ExposeErrors bool
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	exportService      services.ExportServiceInterface
	config             TransactionHandlerConfig
	now                func() time.Time
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	exportService services.ExportServiceInterface,
	config TransactionHandlerConfig,
) *TransactionHandler {
	if config.PageOptions.DefaultLimit < 1 {
		config.PageOptions = query.DefaultPageOptions()
	}
	return &TransactionHandler{
		transactionService: transactionService,
		exportService:      exportService,
		config:             config,
		now:                time.Now,
	}
}

type transactionIDParam struct {
	ID int64 `param:"id" validate:"positive_id"`
}

// ListTransactions retrieves one page of filtered, sorted transactions
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param keyword query string false "Keyword matched against customer name, phone, product name and customer ID"
// @Param region query []string false "Customer region (repeatable)"
// @Param gender query []string false "Customer gender"
// @Param paymentMethod query []string false "Payment method"
// @Param status query []string false "Order status"
// @Param productCategory query []string false "Product category"
// @Param deliveryType query []string false "Delivery type"
// @Param storeLocation query []string false "Store location"
// @Param tags query []string false "Tags; any match"
// @Param minAge query number false "Minimum age"
// @Param maxAge query number false "Maximum age"
// @Param minAmount query number false "Minimum total amount"
// @Param maxAmount query number false "Maximum total amount"
// @Param minFinalAmount query number false "Minimum final amount"
// @Param maxFinalAmount query number false "Maximum final amount"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Param sortBy query string false "Sort token, e.g. date_desc, amount_asc, name_asc"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Results per page (max 100)" default(10)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid query parameter"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid date format or range"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Failed to read transactions"
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	req, err := query.Parse(c.QueryParams(), h.config.PageOptions)
	if err != nil {
		return h.sendError(c, err)
	}

	page, err := h.transactionService.ListTransactions(c.Request().Context(), req)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Success:    true,
		Data:       page.Transactions,
		Pagination: page.Pagination,
	})
}

// GetTransaction retrieves a single transaction by its numeric ID
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid transaction ID"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	var params transactionIDParam
	if err := c.Bind(&params); err != nil {
		return SendError(c, errors.TransactionInvalidID, errors.WithDetails("id must be a positive integer"))
	}
	if err := c.Validate(&params); err != nil {
		return SendError(c, errors.TransactionInvalidID, errors.WithDetails("id must be a positive integer"))
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), params.ID)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{
		Success: true,
		Data:    transaction,
	})
}

// GetFilterOptions lists the distinct values available for each filter
// @Summary Filter options
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.FilterOptionsResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Failed to read transactions"
// @Router /api/transactions/filters [get]
func (h *TransactionHandler) GetFilterOptions(c echo.Context) error {
	opts, err := h.transactionService.GetFilterOptions(c.Request().Context())
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.FilterOptionsResponse{
		Success: true,
		Data:    opts,
	})
}

// GetTransactionStats aggregates the transactions matching the filters
// @Summary Transaction statistics
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.TransactionStatsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid query parameter"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid date format or range"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Failed to read transactions"
// @Router /api/transactions/stats [get]
func (h *TransactionHandler) GetTransactionStats(c echo.Context) error {
	req, err := query.ParseUnpaged(c.QueryParams())
	if err != nil {
		return h.sendError(c, err)
	}

	stats, err := h.transactionService.GetStats(c.Request().Context(), req)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionStatsResponse{
		Success: true,
		Data:    stats,
	})
}

// ExportTransactions streams every matching transaction as a CSV or XLSX download
// @Summary Export transactions
// @Tags Transactions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "Transactions document, at most 50,000 rows"
// @Failure 400 {object} errors.ErrorResponse "EXPORT_002 - Unsupported export format"
// @Failure 500 {object} errors.ErrorResponse "EXPORT_001 - Failed to export transactions"
// @Router /api/transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c echo.Context) error {
	format, err := services.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return SendError(c, errors.ExportUnsupportedFormat, errors.WithDetails("format must be csv or xlsx"))
	}

	req, err := query.ParseUnpaged(c.QueryParams())
	if err != nil {
		return h.sendError(c, err)
	}

	res := c.Response()
	header := res.Header()
	header.Set(echo.HeaderContentType, h.exportService.ContentType(format))
	header.Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", h.exportService.Filename(format, h.now())))

	// export writers buffer their output, so a read that fails before the
	// first rows arrive can still be answered with a JSON error
	_, err = h.transactionService.ExportTransactions(c.Request().Context(), req, format, res)
	if err != nil {
		if res.Committed {
			return fmt.Errorf("export interrupted: %w", err)
		}
		header.Del(echo.HeaderContentType)
		header.Del(echo.HeaderContentDisposition)
		return SendSystemError(c, errors.ExportFailed, err, h.config.ExposeErrors)
	}

	if !res.Committed {
		res.WriteHeader(http.StatusOK)
	}
	return nil
}
