package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movemate/logistics-api/internal/core/ports"
)

// AnalyticsHandler serves the console dashboard aggregate.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Report handles GET /v1/admin/analytics.
//
// @Summary      Dashboard aggregates over the full shipment table
// @Tags         admin-analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analyticsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/admin/analytics [get]
func (h *AnalyticsHandler) Report(c echo.Context) error {
	report, err := h.service.Report(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnalyticsResponse(report))
}
