package handlers

import (
	"context"
	"net/http"
	"time"

	"retail-sales-api/internal/dto"
	"retail-sales-api/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	APIVersion         = "1.0.0"
	healthCheckTimeout = 2 * time.Second
)

// Pinger reports database connectivity
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckHandler handles the health check and service index endpoints
type HealthCheckHandler struct {
	db Pinger
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck reports API and database connectivity
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (database connection failed)"
// @Router /api/health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable,
			errors.WithDetails("Database connection failed"),
		)
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "connected",
	})
}

// Index lists the public endpoints
// @Summary Service index
// @Tags Health
// @Produce json
// @Success 200 {object} dto.IndexResponse
// @Router / [get]
func (h *HealthCheckHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.IndexResponse{
		Message: "Retail Sales Management System API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"transactions": "/api/transactions",
			"filters":      "/api/transactions/filters",
			"export":       "/api/transactions/export",
			"stats":        "/api/transactions/stats",
			"health":       "/api/health",
			"metrics":      "/metrics",
		},
	})
}
