package domain

import (
	"context"
	"time"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageGIF   MessageType = "gif"
)

func (t MessageType) Valid() bool {
	return t == MessageText || t == MessageImage || t == MessageGIF
}

// TypingStaleAfter is how long a typing flag stays meaningful without a refresh.
const TypingStaleAfter = 5 * time.Second

type PrivateMessage struct {
	ID               string      `json:"id" bson:"id"`
	SenderID         string      `json:"senderId" bson:"senderId"`
	SenderUsername   string      `json:"senderUsername" bson:"senderUsername"`
	ReceiverID       string      `json:"receiverId" bson:"receiverId"`
	ReceiverUsername string      `json:"receiverUsername" bson:"receiverUsername"`
	Content          string      `json:"content" bson:"content"`
	Type             MessageType `json:"type" bson:"type"`
	MediaURL         string      `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	IsRead           bool        `json:"isRead" bson:"isRead"`
	CreatedAt        time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt" bson:"updatedAt"`
}

type TypingStatus struct {
	UserID     string    `json:"userId" bson:"userId"`
	Username   string    `json:"username" bson:"username"`
	IsTyping   bool      `json:"isTyping" bson:"isTyping"`
	LastUpdate time.Time `json:"lastUpdate" bson:"lastUpdate"`
}

// Stale reports whether the status is too old to trust at now.
func (t *TypingStatus) Stale(now time.Time) bool {
	return now.Sub(t.LastUpdate) > TypingStaleAfter
}

type SendMessageRequest struct {
	ReceiverID string      `json:"receiverId"`
	Content    string      `json:"content"`
	Type       MessageType `json:"type,omitempty"`
	MediaURL   string      `json:"mediaUrl,omitempty"`
}

type TypingRequest struct {
	IsTyping bool `json:"isTyping"`
}

type MessageRepository interface {
	GetMessages(ctx context.Context, userID1, userID2 string) ([]*PrivateMessage, error)
	SaveMessage(ctx context.Context, message *PrivateMessage) error
	GetMessageByID(ctx context.Context, id string) (*PrivateMessage, error)
	MarkMessageAsRead(ctx context.Context, id string) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type TypingRepository interface {
	GetTypingStatus(ctx context.Context, userID string) (*TypingStatus, error)
	UpdateTypingStatus(ctx context.Context, status *TypingStatus) error
}

type MessageService interface {
	GetConversation(ctx context.Context, user *User, otherUserID string) ([]*PrivateMessage, error)
	SendMessage(ctx context.Context, sender *User, req SendMessageRequest) (*PrivateMessage, error)
	MarkRead(ctx context.Context, user *User, messageID string) error
	UnreadCount(ctx context.Context, user *User) (int64, error)
	SetTyping(ctx context.Context, user *User, req TypingRequest) error
	GetTyping(ctx context.Context, userID string) (*TypingStatus, error)
}
