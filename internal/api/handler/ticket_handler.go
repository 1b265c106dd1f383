package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movemate/logistics-api/internal/core/ports"
	"github.com/movemate/logistics-api/internal/export"
)

// TicketHandler handles HTTP requests for support tickets.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Create handles POST /v1/tickets (public contact form) and
// POST /v1/admin/tickets (console-created tickets); both run through the
// same flow and id generator.
//
// @Summary      Submit a support ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// Get handles GET /v1/admin/tickets/:ticket_id.
//
// @Summary      Get a ticket by ticket id
// @Tags         admin-tickets
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string  true  "Ticket id"
// @Success      200        {object}  ticketResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/admin/tickets/{ticket_id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.service.Get(c.Request().Context(), c.Param("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// List handles GET /v1/admin/tickets.
//
// @Summary      List tickets with filter and search
// @Tags         admin-tickets
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Free-text search"
// @Param        status    query     string  false  "Status filter"
// @Param        category  query     string  false  "Category filter"
// @Success      200  {object}  listTicketsResponse
// @Router       /v1/admin/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.service.List(c.Request().Context(), ports.ListTicketsInput{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListTicketsResponse(tickets))
}

// UpdateStatus handles PUT /v1/admin/tickets/:ticket_id/status.
//
// @Summary      Set a ticket's workflow status
// @Tags         admin-tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string                     true  "Ticket id"
// @Param        body       body      updateTicketStatusRequest  true  "New status"
// @Success      200        {object}  ticketResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/admin/tickets/{ticket_id}/status [put]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	var req updateTicketStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.UpdateStatus(c.Request().Context(), c.Param("ticket_id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// AddResponse handles POST /v1/admin/tickets/:ticket_id/responses. The first
// admin reply to an open ticket advances it to in_progress.
//
// @Summary      Append a reply to a ticket
// @Tags         admin-tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_id  path      string                 true  "Ticket id"
// @Param        body       body      ticketResponseRequest  true  "Reply body"
// @Success      200        {object}  ticketResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/admin/tickets/{ticket_id}/responses [post]
func (h *TicketHandler) AddResponse(c echo.Context) error {
	var req ticketResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.AddResponse(c.Request().Context(), c.Param("ticket_id"), req.Message, req.IsAdmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// ExportCSV handles GET /v1/admin/tickets/export.
//
// @Summary      Download the filtered ticket table as CSV
// @Tags         admin-tickets
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/admin/tickets/export [get]
func (h *TicketHandler) ExportCSV(c echo.Context) error {
	tickets, err := h.service.List(c.Request().Context(), ports.ListTicketsInput{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}

	filename := "tickets-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", export.TicketsCSV(tickets))
}
