package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
)

type MessageHandler struct {
	tracker ports.TrackerService
}

func NewMessageHandler(tracker ports.TrackerService) *MessageHandler {
	return &MessageHandler{tracker: tracker}
}

// Send handles POST /v1/messages. Friends may omit receiverId to write to
// the supporter.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.tracker.SendMessage(c.Request().Context(), req.ReceiverID, req.Content, req.Attachment.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Conversation handles GET /v1/messages?with=<user id>.
//
// @Summary      Conversation with another user, oldest first
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        with  query     string  false  "Peer user id (defaults to the supporter for friends)"
// @Success      200   {array}   domain.Message
// @Failure      404   {object}  errorResponse
// @Router       /v1/messages [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	msgs, err := h.tracker.Conversation(c.QueryParam("with"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}
