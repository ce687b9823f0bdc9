package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
)

// MessageService handles direct messages between users
type MessageService struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	notifier          *Notifier
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *Notifier) *MessageService {
	return &MessageService{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// SendMessage delivers content from senderID to receiverID. The receiver must
// be one of the sender's connections, unless the sender is messaging themself.
func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, New(ErrValidation, "message content is required")
	}
	senderOID, receiverOID, err := parsePair(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	receiver, err := loadUser(ctx, s.userRepository, receiverOID, "receiver not found")
	if err != nil {
		return nil, err
	}
	sender, err := loadUser(ctx, s.userRepository, senderOID, "user not found")
	if err != nil {
		return nil, err
	}
	if sender.ID != receiver.ID && !sender.ConnectionSet().Has(receiver.ID) {
		return nil, New(ErrForbidden, "you can only message people in your network")
	}

	message := &models.Message{Sender: sender.ID, Receiver: receiver.ID, Content: content}
	if err := s.messageRepository.CreateMessage(ctx, message); err != nil {
		return nil, Wrap(ErrInternal, "failed to send message", err)
	}

	s.notifier.notifyBestEffort(ctx, sender, receiver.ID, models.NotificationMessage, Related{MessageID: message.ID})
	return message, nil
}

// ListMessages returns everything userID sent or received, newest first
func (s *MessageService) ListMessages(ctx context.Context, userID string) ([]models.Message, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepository.GetMessagesForUser(ctx, id)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to load messages", err)
	}
	return messages, nil
}

// Conversation returns the messages between userID and otherID, oldest first
func (s *MessageService) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	a, b, err := parsePair(userID, otherID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepository.GetConversation(ctx, a, b)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to load conversation", err)
	}
	return messages, nil
}

// MarkRead flags a message received by userID as read
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID string) error {
	mid, err := ParseID(messageID, "message")
	if err != nil {
		return err
	}
	uid, err := ParseID(userID, "user")
	if err != nil {
		return err
	}
	if err := s.messageRepository.MarkAsRead(ctx, mid, uid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return New(ErrNotFound, "message not found")
		}
		return Wrap(ErrInternal, "failed to mark message read", err)
	}
	return nil
}
