package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/pkg/errors"
)

var (
	_ repository.UserRepository     = (*fakeUserRepo)(nil)
	_ repository.MechanicRepository = (*fakeMechanicRepo)(nil)
	_ repository.RequestRepository  = (*fakeRequestRepo)(nil)
	_ repository.ChatRepository     = (*fakeChatRepo)(nil)
	_ repository.ReviewRepository   = (*fakeReviewRepo)(nil)
)

// In-memory repositories backing the usecase tests. They mirror the
// Firestore adapters' contract, including the CAS check in UpdateStatus.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeMechanicRepo struct {
	mechanics map[string]*entity.Mechanic
	seq       int
}

func newFakeMechanicRepo() *fakeMechanicRepo {
	return &fakeMechanicRepo{mechanics: make(map[string]*entity.Mechanic)}
}

func (r *fakeMechanicRepo) Create(ctx context.Context, mechanic *entity.Mechanic) error {
	if mechanic.ID == "" {
		r.seq++
		mechanic.ID = fmt.Sprintf("mech-%d", r.seq)
	}
	now := time.Now()
	mechanic.CreatedAt = now
	mechanic.UpdatedAt = now
	copied := *mechanic
	r.mechanics[mechanic.ID] = &copied
	return nil
}

func (r *fakeMechanicRepo) GetByID(ctx context.Context, id string) (*entity.Mechanic, error) {
	mechanic, ok := r.mechanics[id]
	if !ok {
		return nil, errors.NotFound("Mechanic", nil)
	}
	copied := *mechanic
	return &copied, nil
}

func (r *fakeMechanicRepo) GetByUserID(ctx context.Context, userID string) (*entity.Mechanic, error) {
	for _, mechanic := range r.mechanics {
		if mechanic.UserID == userID {
			copied := *mechanic
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Mechanic", nil)
}

func (r *fakeMechanicRepo) Update(ctx context.Context, mechanic *entity.Mechanic) error {
	if _, ok := r.mechanics[mechanic.ID]; !ok {
		return errors.NotFound("Mechanic", nil)
	}
	mechanic.UpdatedAt = time.Now()
	copied := *mechanic
	r.mechanics[mechanic.ID] = &copied
	return nil
}

func (r *fakeMechanicRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Mechanic, int64, error) {
	var result []*entity.Mechanic
	for _, mechanic := range r.mechanics {
		if city, ok := filter["city"]; ok && mechanic.City != city {
			continue
		}
		if isOpen, ok := filter["isOpen"]; ok && mechanic.IsOpen != isOpen {
			continue
		}
		copied := *mechanic
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	return result, int64(len(result)), nil
}

type fakeRequestRepo struct {
	requests map[string]*entity.Request
	seq      int

	// invoked inside UpdateStatus before the CAS check, to simulate a
	// concurrent writer
	beforeUpdateStatus func()
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*entity.Request)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *entity.Request) error {
	if request.ID == "" {
		r.seq++
		request.ID = fmt.Sprintf("req-%d", r.seq)
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	request.Version = 1
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Request", nil)
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, request *entity.Request) error {
	if _, ok := r.requests[request.ID]; !ok {
		return errors.NotFound("Request", nil)
	}
	request.UpdatedAt = time.Now()
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fromVersion int64) (*entity.Request, error) {
	if r.beforeUpdateStatus != nil {
		r.beforeUpdateStatus()
	}

	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Request", nil)
	}
	if request.Status != fromStatus || request.Version != fromVersion {
		return nil, errors.Conflict("Request was modified concurrently, please retry")
	}

	now := time.Now()
	request.Status = toStatus
	request.Version++
	request.UpdatedAt = now

	switch toStatus {
	case entity.StatusAccepted:
		request.AcceptedAt = &now
	case entity.StatusCompleted:
		request.CompletedAt = &now
	}

	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) ListByUserID(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Request, int64, error) {
	return r.list(func(req *entity.Request) bool { return req.UserID == userID }, status)
}

func (r *fakeRequestRepo) ListByMechanicID(ctx context.Context, mechanicID, status string, limit, offset int) ([]*entity.Request, int64, error) {
	return r.list(func(req *entity.Request) bool { return req.MechanicID == mechanicID }, status)
}

func (r *fakeRequestRepo) list(match func(*entity.Request) bool, status string) ([]*entity.Request, int64, error) {
	var result []*entity.Request
	for _, request := range r.requests {
		if !match(request) {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		copied := *request
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

type fakeChatRepo struct {
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	seq      int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		r.seq++
		chat.ID = fmt.Sprintf("chat-%d", r.seq)
	}
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Chat, error) {
	for _, chat := range r.chats {
		if chat.RequestID == requestID {
			copied := *chat
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	var result []*entity.Chat
	for _, chat := range r.chats {
		for _, p := range chat.Participants {
			if p == userID {
				copied := *chat
				result = append(result, &copied)
				break
			}
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UpdatedAt = time.Now()
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", len(r.messages[message.ChatID])+1)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	stored := r.messages[chatID]
	result := make([]*entity.Message, 0, len(stored))
	for _, message := range stored {
		copied := *message
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (r *fakeChatRepo) UpdateMessageReadStatus(ctx context.Context, chatID, messageID, userID string) error {
	for _, message := range r.messages[chatID] {
		if message.ID != messageID {
			continue
		}
		for _, reader := range message.ReadBy {
			if reader == userID {
				return nil
			}
		}
		message.ReadBy = append(message.ReadBy, userID)
		return nil
	}
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		r.seq++
		review.ID = fmt.Sprintf("review-%d", r.seq)
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.RequestID == requestID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Review, int64, error) {
	var result []*entity.Review
	for _, review := range r.reviews {
		if target, ok := filter["targetId"]; ok && review.TargetID != target {
			continue
		}
		if rating, ok := filter["rating"]; ok && review.Rating != rating {
			continue
		}
		copied := *review
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}
