package handler

import (
	"net/http"

	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	messages *store.MessageStore
}

func NewMessageHandler(messages *store.MessageStore) *MessageHandler {
	return &MessageHandler{
		messages: messages,
	}
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	return c.JSON(http.StatusOK, h.messages.List())
}

func (h *MessageHandler) DismissMessage(c echo.Context) error {
	if !h.messages.Remove(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	return c.NoContent(http.StatusNoContent)
}
