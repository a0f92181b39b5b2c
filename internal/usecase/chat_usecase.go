package usecase

import (
	"context"
	"strings"
	"time"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/internal/infrastructure/ratelimit"
	ws "garagemap/internal/infrastructure/websocket"
	"garagemap/pkg/errors"
	"garagemap/pkg/logger"
)

// ChatUseCase manages the message thread bound to a service request. A chat
// is created lazily on first access by either participant; once the request
// completes, access stays open only for the visibility window.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type SendMessageInput struct {
	RequestID string
	Text      string
}

type ChatResponse struct {
	*entity.Chat
	Request *entity.Request `json:"request,omitempty"`
}

// OpenChat returns the chat thread for a request, creating it on first
// access. Both participants may open it while the visibility rule allows.
func (uc *ChatUseCase) OpenChat(ctx context.Context, userID, requestID string) (*ChatResponse, error) {
	request, chat, err := uc.accessChat(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{Chat: chat, Request: request}, nil
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.Validation("message text cannot be empty", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	request, chat, err := uc.accessChat(ctx, senderID, input.RequestID)
	if err != nil {
		return nil, err
	}

	// Timestamps must increase strictly even when two sends land within the
	// clock's resolution; the thread is ordered by them.
	now := time.Now()
	if !now.After(chat.LastMessageAt) {
		now = chat.LastMessageAt.Add(time.Millisecond)
	}

	message := &entity.Message{
		ChatID:         chat.ID,
		SenderID:       senderID,
		Text:           text,
		IsFromMechanic: senderID == request.MechanicUserID,
		ReadBy:         []string{senderID},
		CreatedAt:      now,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = text
	chat.LastMessageAt = message.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, participantID := range chat.Participants {
		if participantID != senderID {
			chat.UnreadCount[participantID]++
		}
	}

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("Failed to update chat %s after message: %v", chat.ID, err)
	}

	recipients := make([]string, 0, 1)
	for _, participantID := range chat.Participants {
		if participantID != senderID {
			recipients = append(recipients, participantID)
		}
	}
	uc.wsManager.PushEvent(recipients, ws.Event{Type: "message", Data: message})

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, requestID string, limit, offset int) ([]*entity.Message, int64, error) {
	_, chat, err := uc.accessChat(ctx, userID, requestID)
	if err != nil {
		return nil, 0, err
	}

	return uc.chatRepo.GetMessagesByChat(ctx, chat.ID, limit, offset)
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

// MarkChatAsRead clears the caller's unread counter and stamps unseen
// messages as read.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, requestID string) error {
	_, chat, err := uc.accessChat(ctx, userID, requestID)
	if err != nil {
		return err
	}

	if chat.UnreadCount == nil || chat.UnreadCount[userID] == 0 {
		return nil
	}

	messages, _, err := uc.chatRepo.GetMessagesByChat(ctx, chat.ID, 0, 0)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if message.SenderID == userID {
			continue
		}
		if err := uc.chatRepo.UpdateMessageReadStatus(ctx, chat.ID, message.ID, userID); err != nil {
			logger.Error("Failed to mark message %s as read: %v", message.ID, err)
		}
	}

	chat.UnreadCount[userID] = 0
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return err
	}

	uc.wsManager.PushEvent([]string{userID}, ws.Event{Type: "chat_read", Data: chat})
	return nil
}

// accessChat enforces the access rule shared by every chat operation:
// participant identity plus the post-completion visibility window. The chat
// document itself is created on first successful access.
func (uc *ChatUseCase) accessChat(ctx context.Context, userID, requestID string) (*entity.Request, *entity.Chat, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	if !request.IsParticipant(userID) {
		return nil, nil, errors.Forbidden("you are not a participant of this chat", nil)
	}

	if !request.IsChatAvailable(time.Now()) {
		return nil, nil, errors.PreconditionFailed("chat history is no longer available for this completed request")
	}

	chat, err := uc.chatRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, nil, err
		}

		chat = &entity.Chat{
			RequestID:      request.ID,
			UserID:         request.UserID,
			MechanicUserID: request.MechanicUserID,
			Participants:   []string{request.UserID, request.MechanicUserID},
			UserName:       request.UserName,
			MechanicName:   request.MechanicName,
			UnreadCount:    make(map[string]int),
			LastMessageAt:  time.Now(),
		}

		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, nil, err
		}
		logger.Info("Chat %s created for request %s", chat.ID, request.ID)
	}

	return request, chat, nil
}
