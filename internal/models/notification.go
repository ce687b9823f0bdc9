package models

import "time"

// NotificationType is the action that produced a notification
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationMessage NotificationType = "message"
)

// Notification represents a user notification (PostgreSQL).
// User, post and message references are MongoDB ObjectIDs as hex strings.
type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	Type             NotificationType `json:"type" gorm:"size:20;index"`
	SenderID         string           `json:"sender" gorm:"size:24;index"`
	RecipientID      string           `json:"recipient" gorm:"size:24;index"`
	Message          string           `json:"message"`
	Read             bool             `json:"read" gorm:"default:false;index"`
	RelatedPostID    *string          `json:"relatedPost,omitempty" gorm:"size:24"`
	RelatedMessageID *string          `json:"relatedMessage,omitempty" gorm:"size:24"`
	CreatedAt        time.Time        `json:"createdAt" gorm:"index"`
}
