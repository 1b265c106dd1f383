package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movemate/logistics-api/internal/core/ports"
	"github.com/movemate/logistics-api/internal/export"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
	baseURL string
}

// NewShipmentHandler creates a ShipmentHandler. baseURL is the public site
// prefix embedded in receipts and QR codes.
func NewShipmentHandler(service ports.ShipmentService, baseURL string) *ShipmentHandler {
	return &ShipmentHandler{service: service, baseURL: baseURL}
}

// Create handles POST /v1/shipments.
//
// @Summary      Create a shipment and generate its tracking id
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.service.Create(c.Request().Context(), ports.CreateShipmentInput{
		SenderName:         req.SenderName,
		SenderPhone:        req.SenderPhone,
		ReceiverName:       req.ReceiverName,
		ReceiverPhone:      req.ReceiverPhone,
		PickupLocation:     req.PickupLocation,
		DeliveryLocation:   req.DeliveryLocation,
		PackageDescription: req.PackageDescription,
		WeightKg:           req.Weight,
		Category:           req.Category,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// Track handles GET /v1/shipments/:tracking_id.
//
// @Summary      Track a shipment by tracking id
// @Tags         shipments
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id (e.g. MM-LX-A1B2C)"
// @Success      200          {object}  shipmentResponse
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id} [get]
func (h *ShipmentHandler) Track(c echo.Context) error {
	shipment, err := h.service.Track(c.Request().Context(), c.Param("tracking_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Receipt handles GET /v1/shipments/:tracking_id/receipt.
//
// @Summary      Download the plain-text shipment receipt
// @Tags         shipments
// @Produce      plain
// @Param        tracking_id  path  string  true  "Tracking id"
// @Success      200  {string}  string
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/receipt [get]
func (h *ShipmentHandler) Receipt(c echo.Context) error {
	shipment, err := h.service.Track(c.Request().Context(), c.Param("tracking_id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.ReceiptFilename(shipment.TrackingID)+`"`)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, export.Receipt(shipment, h.baseURL))
}

// QRCode handles GET /v1/shipments/:tracking_id/qrcode.
//
// @Summary      QR code image linking to the tracking page
// @Tags         shipments
// @Produce      png
// @Param        tracking_id  path  string  true  "Tracking id"
// @Success      200  {string}  binary
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/qrcode [get]
func (h *ShipmentHandler) QRCode(c echo.Context) error {
	shipment, err := h.service.Track(c.Request().Context(), c.Param("tracking_id"))
	if err != nil {
		return err
	}

	png, err := export.TrackingQR(h.baseURL, shipment.TrackingID)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// List handles GET /v1/admin/shipments.
//
// @Summary      List shipments with filter, search and sort
// @Tags         admin-shipments
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Free-text search"
// @Param        status    query     string  false  "Status filter"
// @Param        category  query     string  false  "Category filter"
// @Param        sort_by   query     string  false  "Sort key"
// @Param        sort_dir  query     string  false  "asc or desc"
// @Success      200  {object}  listShipmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/admin/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	shipments, err := h.service.List(c.Request().Context(), ports.ListShipmentsInput{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort_by"),
		SortDir:  c.QueryParam("sort_dir"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListShipmentsResponse(shipments))
}

// Update handles PUT /v1/admin/shipments/:tracking_id.
//
// @Summary      Edit a shipment; a status change advances the timeline
// @Tags         admin-shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_id  path      string                 true  "Tracking id"
// @Param        body         body      updateShipmentRequest  true  "Fields to change"
// @Success      200          {object}  shipmentResponse
// @Failure      404          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/admin/shipments/{tracking_id} [put]
func (h *ShipmentHandler) Update(c echo.Context) error {
	var req updateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shipment, err := h.service.Update(c.Request().Context(), c.Param("tracking_id"), ports.UpdateShipmentInput{
		Status:            req.Status,
		CurrentLocation:   req.CurrentLocation,
		WeightKg:          req.Weight,
		Category:          req.Category,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// MarkDelivered handles POST /v1/admin/shipments/:tracking_id/deliver.
//
// @Summary      Mark a shipment delivered
// @Tags         admin-shipments
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  shipmentResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/admin/shipments/{tracking_id}/deliver [post]
func (h *ShipmentHandler) MarkDelivered(c echo.Context) error {
	shipment, err := h.service.MarkDelivered(c.Request().Context(), c.Param("tracking_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// AddTimelineEvent handles POST /v1/admin/shipments/:tracking_id/events.
//
// @Summary      Append an ad-hoc timeline entry
// @Tags         admin-shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_id  path      string                true  "Tracking id"
// @Param        body         body      timelineEventRequest  true  "Event details"
// @Success      200          {object}  shipmentResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/admin/shipments/{tracking_id}/events [post]
func (h *ShipmentHandler) AddTimelineEvent(c echo.Context) error {
	var req timelineEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shipment, err := h.service.AddTimelineEvent(c.Request().Context(), c.Param("tracking_id"), req.Location, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Delete handles DELETE /v1/admin/shipments/:tracking_id.
//
// @Summary      Delete a shipment
// @Tags         admin-shipments
// @Security     BearerAuth
// @Param        tracking_id  path  string  true  "Tracking id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/shipments/{tracking_id} [delete]
func (h *ShipmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("tracking_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportCSV handles GET /v1/admin/shipments/export. The export honors the
// same filter and search parameters as List, so what the admin sees is what
// downloads.
//
// @Summary      Download the filtered shipment table as CSV
// @Tags         admin-shipments
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/admin/shipments/export [get]
func (h *ShipmentHandler) ExportCSV(c echo.Context) error {
	shipments, err := h.service.List(c.Request().Context(), ports.ListShipmentsInput{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort_by"),
		SortDir:  c.QueryParam("sort_dir"),
	})
	if err != nil {
		return err
	}

	filename := "shipments-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", export.ShipmentsCSV(shipments))
}
