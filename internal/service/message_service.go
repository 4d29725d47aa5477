package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

type messageService struct {
	messages domain.MessageRepository
	users    domain.UserRepository
	typing   domain.TypingRepository
	log      *logger.Logger
	now      func() time.Time
	policy   *bluemonday.Policy
}

// NewMessageService builds the private messaging service. typing may be the
// document store or the Redis-backed repository.
func NewMessageService(messages domain.MessageRepository, users domain.UserRepository, typing domain.TypingRepository, log *logger.Logger, opts ...Option) domain.MessageService {
	o := buildOptions(opts)
	return &messageService{
		messages: messages,
		users:    users,
		typing:   typing,
		log:      log.WithComponent("messages"),
		now:      o.now,
		policy:   bluemonday.UGCPolicy(),
	}
}

func (s *messageService) GetConversation(ctx context.Context, user *domain.User, otherUserID string) ([]*domain.PrivateMessage, error) {
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" {
		return nil, domain.NewBadRequest("User ID required")
	}
	messages, err := s.messages.GetMessages(ctx, user.ID, otherUserID)
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}

func (s *messageService) SendMessage(ctx context.Context, sender *domain.User, req domain.SendMessageRequest) (*domain.PrivateMessage, error) {
	receiverID := strings.TrimSpace(req.ReceiverID)
	content := strings.TrimSpace(s.policy.Sanitize(req.Content))
	if receiverID == "" || content == "" {
		return nil, domain.NewBadRequest("Receiver ID and content are required")
	}
	msgType := req.Type
	if msgType == "" {
		msgType = domain.MessageText
	}
	if !msgType.Valid() {
		return nil, domain.NewBadRequest("Invalid message type")
	}
	receiver, err := s.users.GetUserByID(ctx, receiverID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("Receiver not found")
		}
		return nil, storeError(err)
	}

	now := s.now()
	msg := &domain.PrivateMessage{
		ID:               uuid.NewString(),
		SenderID:         sender.ID,
		SenderUsername:   sender.Username,
		ReceiverID:       receiver.ID,
		ReceiverUsername: receiver.Username,
		Content:          content,
		Type:             msgType,
		MediaURL:         strings.TrimSpace(req.MediaURL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.messages.SaveMessage(ctx, msg); err != nil {
		return nil, storeError(err)
	}
	return msg, nil
}

// MarkRead flags a message as read. Only its receiver may do so.
func (s *messageService) MarkRead(ctx context.Context, user *domain.User, messageID string) error {
	msg, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("Message not found")
		}
		return storeError(err)
	}
	if msg.ReceiverID != user.ID {
		return domain.NewForbidden("Forbidden")
	}
	if msg.IsRead {
		return nil
	}
	if err := s.messages.MarkMessageAsRead(ctx, messageID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("Message not found")
		}
		return storeError(err)
	}
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, user *domain.User) (int64, error) {
	n, err := s.messages.GetUnreadCount(ctx, user.ID)
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

func (s *messageService) SetTyping(ctx context.Context, user *domain.User, req domain.TypingRequest) error {
	status := &domain.TypingStatus{
		UserID:     user.ID,
		Username:   user.Username,
		IsTyping:   req.IsTyping,
		LastUpdate: s.now(),
	}
	if err := s.typing.UpdateTypingStatus(ctx, status); err != nil {
		return storeError(err)
	}
	return nil
}

// GetTyping returns nil when the user never reported a status. Stale statuses read as not typing.
func (s *messageService) GetTyping(ctx context.Context, userID string) (*domain.TypingStatus, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewBadRequest("User ID required")
	}
	status, err := s.typing.GetTypingStatus(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	if status.Stale(s.now()) {
		status.IsTyping = false
	}
	return status, nil
}
