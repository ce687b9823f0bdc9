package services

import (
	"context"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionService mutates and lists a user's connections
type ConnectionService struct {
	userRepository repositories.UserRepository
	notifier       *Notifier
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(userRepo repositories.UserRepository, notifier *Notifier) *ConnectionService {
	return &ConnectionService{userRepository: userRepo, notifier: notifier}
}

// Follow appends targetID to actorID's connections and notifies the target.
// A failed notification is logged and reported in the result; the follow stands.
func (s *ConnectionService) Follow(ctx context.Context, actorID, targetID string) (*models.FollowResult, error) {
	actorOID, targetOID, err := parsePair(actorID, targetID)
	if err != nil {
		return nil, err
	}
	if actorOID == targetOID {
		return nil, New(ErrInvalidOperation, "cannot follow yourself")
	}

	target, err := loadUser(ctx, s.userRepository, targetOID, "user not found")
	if err != nil {
		return nil, err
	}
	actor, err := loadUser(ctx, s.userRepository, actorOID, "user not found")
	if err != nil {
		return nil, err
	}
	if actor.ConnectionSet().Has(target.ID) {
		return nil, New(ErrAlreadyExists, "already following this user")
	}

	added, err := s.userRepository.AddConnection(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to follow user", err)
	}
	if !added {
		// lost a race with a concurrent follow of the same target
		return nil, New(ErrAlreadyExists, "already following this user")
	}

	notified := s.notifier.notifyBestEffort(ctx, actor, target.ID, models.NotificationFollow, Related{})
	return &models.FollowResult{Following: true, Notified: notified}, nil
}

// Unfollow removes targetID from actorID's connections
func (s *ConnectionService) Unfollow(ctx context.Context, actorID, targetID string) error {
	actorOID, targetOID, err := parsePair(actorID, targetID)
	if err != nil {
		return err
	}

	actor, err := loadUser(ctx, s.userRepository, actorOID, "user not found")
	if err != nil {
		return err
	}
	if !actor.ConnectionSet().Has(targetOID) {
		return New(ErrNotFollowing, "not following this user")
	}

	removed, err := s.userRepository.RemoveConnection(ctx, actor.ID, targetOID)
	if err != nil {
		return Wrap(ErrInternal, "failed to unfollow user", err)
	}
	if !removed {
		return New(ErrNotFollowing, "not following this user")
	}
	return nil
}

// Connections lists userID's connections in follow order. References to
// users that no longer exist are skipped.
func (s *ConnectionService) Connections(ctx context.Context, userID string) ([]models.ConnectionSummary, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepository, id, "user not found")
	if err != nil {
		return nil, err
	}

	byID, err := usersByID(ctx, s.userRepository, user.Connections)
	if err != nil {
		return nil, err
	}
	out := make([]models.ConnectionSummary, 0, len(user.Connections))
	for _, cid := range user.ConnectionSet().IDs() {
		if c, ok := byID[cid]; ok {
			out = append(out, models.ConnectionSummary{UserCompact: c.ToCompact(), Headline: c.Headline})
		}
	}
	return out, nil
}

func parsePair(actorID, targetID string) (primitive.ObjectID, primitive.ObjectID, error) {
	actor, err := ParseID(actorID, "user")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	target, err := ParseID(targetID, "user")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return actor, target, nil
}

func usersByID(ctx context.Context, repo repositories.UserRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	users, err := repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to load users", err)
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}
