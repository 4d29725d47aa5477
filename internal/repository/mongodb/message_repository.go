package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// GetMessages returns the conversation between two users in both directions, oldest first.
func (s *store) GetMessages(ctx context.Context, userID1, userID2 string) ([]*domain.PrivateMessage, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"senderId": userID1, "receiverId": userID2},
		bson.M{"senderId": userID2, "receiverId": userID1},
	}}
	return findMany[domain.PrivateMessage](ctx, s, messagesCollection, filter, oldestFirst, "get messages")
}

func (s *store) SaveMessage(ctx context.Context, message *domain.PrivateMessage) error {
	return s.upsert(ctx, messagesCollection, bson.M{"id": message.ID}, message, "save message")
}

func (s *store) GetMessageByID(ctx context.Context, id string) (*domain.PrivateMessage, error) {
	return findOne[domain.PrivateMessage](ctx, s, messagesCollection, bson.M{"id": id}, "get message")
}

func (s *store) MarkMessageAsRead(ctx context.Context, id string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	_, err := s.db.Collection(messagesCollection).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return unavailable("mark message as read", err)
	}
	return nil
}

func (s *store) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.count(ctx, messagesCollection, bson.M{"receiverId": userID, "isRead": false})
}

func (s *store) GetTypingStatus(ctx context.Context, userID string) (*domain.TypingStatus, error) {
	return findOne[domain.TypingStatus](ctx, s, typingCollection, bson.M{"userId": userID}, "get typing status")
}

func (s *store) UpdateTypingStatus(ctx context.Context, status *domain.TypingStatus) error {
	return s.upsert(ctx, typingCollection, bson.M{"userId": status.UserID}, status, "update typing status")
}
