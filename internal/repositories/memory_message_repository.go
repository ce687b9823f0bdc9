package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryMessageRepository is an in-process MessageRepository. Messages are kept
// in creation order.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

func (r *MemoryMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *MemoryMessageRepository) GetMessagesForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Message{}
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if m.Sender == userID || m.Receiver == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryMessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Message{}
	for _, m := range r.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryMessageRepository) MarkAsRead(ctx context.Context, id, receiverID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id && r.messages[i].Receiver == receiverID {
			r.messages[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of stored messages
func (r *MemoryMessageRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
