package handler

import (
	"github.com/labstack/echo/v4"

	"garagemap/internal/usecase"
	"garagemap/pkg/errors"
	"garagemap/pkg/response"
	"garagemap/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) OpenChat(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	uid := c.Get("uid").(string)

	chat, err := h.chatUseCase.OpenChat(c.Request().Context(), uid, requestID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		RequestID: requestID,
		Text:      req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, requestID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) MarkChatAsRead(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkChatAsRead(c.Request().Context(), uid, requestID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Chat marked as read"})
}
