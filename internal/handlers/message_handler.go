package handlers

import (
	"net/http"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MessageHandler handles direct message requests
type MessageHandler struct {
	messageService *services.MessageService
	log            *zap.Logger
}

func NewMessageHandler(messageService *services.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, log: log}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetMessages)
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversation/:userId", h.GetConversation)
	g.PUT("/messages/:id/read", h.MarkAsRead)
}

func (h *MessageHandler) GetMessages(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	messages, err := h.messageService.ListMessages(c.Request().Context(), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, messages)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.messageService.SendMessage(c.Request().Context(), userID, req.Receiver, req.Content)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusCreated, message)
}

func (h *MessageHandler) GetConversation(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	messages, err := h.messageService.Conversation(c.Request().Context(), userID, c.Param("userId"))
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, messages)
}

func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.messageService.MarkRead(c.Request().Context(), c.Param("id"), userID); err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, echo.Map{"read": true})
}
