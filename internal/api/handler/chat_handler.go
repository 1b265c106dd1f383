package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movemate/logistics-api/internal/core/ports"
)

// ChatHandler handles HTTP requests for the chat widget and the console's
// chat management view.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// StartSession handles POST /v1/chat/sessions. A request carrying a known
// session_id resumes that conversation; otherwise a new session is opened
// with the greeting message.
//
// @Summary      Start or resume a chat session
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      startChatRequest  true  "Visitor details"
// @Success      201   {object}  chatSessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/chat/sessions [post]
func (h *ChatHandler) StartSession(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.StartSession(c.Request().Context(), ports.StartChatInput{
		SessionID:     req.SessionID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Language:      req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toChatSessionResponse(session))
}

// GetSession handles GET /v1/chat/sessions/:session_id (widget reload).
//
// @Summary      Fetch a chat session
// @Tags         chat
// @Produce      json
// @Param        session_id  path      string  true  "Session id"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/chat/sessions/{session_id} [get]
func (h *ChatHandler) GetSession(c echo.Context) error {
	session, err := h.service.GetSession(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// VisitorMessage handles POST /v1/chat/sessions/:session_id/messages.
//
// @Summary      Send a visitor message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        session_id  path      string              true  "Session id"
// @Param        body        body      chatMessageRequest  true  "Message body"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/chat/sessions/{session_id}/messages [post]
func (h *ChatHandler) VisitorMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.VisitorMessage(c.Request().Context(), c.Param("session_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// List handles GET /v1/admin/chat/sessions.
//
// @Summary      List chat sessions with filter and search
// @Tags         admin-chat
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Free-text search"
// @Param        status  query     string  false  "Status filter"
// @Success      200  {object}  listChatSessionsResponse
// @Router       /v1/admin/chat/sessions [get]
func (h *ChatHandler) List(c echo.Context) error {
	sessions, err := h.service.List(c.Request().Context(), ports.ListChatsInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListChatSessionsResponse(sessions))
}

// OpenSession handles GET /v1/admin/chat/sessions/:session_id. Opening a
// session from the console clears its unread counter.
//
// @Summary      Open a session in the console
// @Tags         admin-chat
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path      string  true  "Session id"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/admin/chat/sessions/{session_id} [get]
func (h *ChatHandler) OpenSession(c echo.Context) error {
	session, err := h.service.OpenSession(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// AgentMessage handles POST /v1/admin/chat/sessions/:session_id/messages.
//
// @Summary      Send an agent reply
// @Tags         admin-chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path      string              true  "Session id"
// @Param        body        body      chatMessageRequest  true  "Message body"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/admin/chat/sessions/{session_id}/messages [post]
func (h *ChatHandler) AgentMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.AgentMessage(c.Request().Context(), c.Param("session_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// UpdateStatus handles PUT /v1/admin/chat/sessions/:session_id/status.
//
// @Summary      Set a session's workflow status
// @Tags         admin-chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path      string             true  "Session id"
// @Param        body        body      chatStatusRequest  true  "New status"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /v1/admin/chat/sessions/{session_id}/status [put]
func (h *ChatHandler) UpdateStatus(c echo.Context) error {
	var req chatStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.UpdateStatus(c.Request().Context(), c.Param("session_id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// SetBotMode handles POST /v1/admin/chat/sessions/:session_id/bot.
//
// @Summary      Toggle bot mode for a session
// @Tags         admin-chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path      string              true  "Session id"
// @Param        body        body      chatBotModeRequest  true  "Bot mode flag"
// @Success      200         {object}  chatSessionResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/admin/chat/sessions/{session_id}/bot [post]
func (h *ChatHandler) SetBotMode(c echo.Context) error {
	var req chatBotModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.SetBotMode(c.Request().Context(), c.Param("session_id"), req.Enabled)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatSessionResponse(session))
}

// Delete handles DELETE /v1/admin/chat/sessions/:session_id.
//
// @Summary      Delete a chat session
// @Tags         admin-chat
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/chat/sessions/{session_id} [delete]
func (h *ChatHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("session_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
