package services

import (
	"context"
	"fmt"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var notificationTemplates = map[models.NotificationType]string{
	models.NotificationFollow:  "%s started following you",
	models.NotificationLike:    "%s liked your post",
	models.NotificationComment: "%s commented on your post",
	models.NotificationMessage: "%s sent you a message",
}

// Related points a notification at the post or message it is about
type Related struct {
	PostID    primitive.ObjectID
	MessageID primitive.ObjectID
}

// Notifier creates notification records as a side effect of user actions
type Notifier struct {
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(notifRepo repositories.NotificationRepository, log *zap.Logger) *Notifier {
	return &Notifier{notificationRepository: notifRepo, log: log}
}

// Notify records that actor did kind to recipientID. Self-targeted actions
// produce no notification.
func (n *Notifier) Notify(ctx context.Context, actor *models.User, recipientID primitive.ObjectID, kind models.NotificationType, related Related) error {
	if actor.ID == recipientID {
		return nil
	}
	tmpl, ok := notificationTemplates[kind]
	if !ok {
		return fmt.Errorf("unknown notification type %q", kind)
	}

	notif := &models.Notification{
		Type:        kind,
		SenderID:    actor.ID.Hex(),
		RecipientID: recipientID.Hex(),
		Message:     fmt.Sprintf(tmpl, actor.Name),
	}
	if !related.PostID.IsZero() {
		id := related.PostID.Hex()
		notif.RelatedPostID = &id
	}
	if !related.MessageID.IsZero() {
		id := related.MessageID.Hex()
		notif.RelatedMessageID = &id
	}

	if err := n.notificationRepository.CreateNotification(ctx, notif); err != nil {
		return fmt.Errorf("create %s notification: %w", kind, err)
	}
	return nil
}

// notifyBestEffort emits a notification and logs failure instead of returning
// it. The result reports whether a notification was stored.
func (n *Notifier) notifyBestEffort(ctx context.Context, actor *models.User, recipientID primitive.ObjectID, kind models.NotificationType, related Related) bool {
	if actor.ID == recipientID {
		return false
	}
	if err := n.Notify(ctx, actor, recipientID, kind, related); err != nil {
		n.log.Warn("notification not delivered",
			zap.String("type", string(kind)),
			zap.String("sender", actor.ID.Hex()),
			zap.String("recipient", recipientID.Hex()),
			zap.Error(err),
		)
		return false
	}
	return true
}
