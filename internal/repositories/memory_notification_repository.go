package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
)

// MemoryNotificationRepository is an in-process NotificationRepository
type MemoryNotificationRepository struct {
	mu            sync.RWMutex
	nextID        uint
	notifications []models.Notification
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{}
}

func (r *MemoryNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	notification.ID = r.nextID
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

// newestFirst returns the recipient's notifications matching keep, newest first.
func (r *MemoryNotificationRepository) newestFirst(recipientID string, keep func(models.Notification) bool) []models.Notification {
	out := []models.Notification{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.RecipientID == recipientID && keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func (r *MemoryNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.newestFirst(recipientID, func(models.Notification) bool { return true })
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []models.Notification{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *MemoryNotificationRepository) GetGrouped(ctx context.Context, recipientID string) (*GroupedNotifications, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today, yesterday, week := dayBoundaries(time.Now())
	g := &GroupedNotifications{
		Today: r.newestFirst(recipientID, func(n models.Notification) bool {
			return !n.CreatedAt.Before(today)
		}),
		Yesterday: r.newestFirst(recipientID, func(n models.Notification) bool {
			return !n.CreatedAt.Before(yesterday) && n.CreatedAt.Before(today)
		}),
		ThisWeek: r.newestFirst(recipientID, func(n models.Notification) bool {
			return !n.CreatedAt.Before(week) && n.CreatedAt.Before(yesterday)
		}),
		Older: r.newestFirst(recipientID, func(n models.Notification) bool {
			return n.CreatedAt.Before(week)
		}),
	}
	if len(g.Older) > olderLimit {
		g.Older = g.Older[:olderLimit]
	}
	return g, nil
}

func (r *MemoryNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	unread := r.newestFirst(recipientID, func(n models.Notification) bool { return !n.Read })
	return int64(len(unread)), nil
}

func (r *MemoryNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

// All returns every stored notification in creation order
func (r *MemoryNotificationRepository) All() []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Notification{}, r.notifications...)
}
