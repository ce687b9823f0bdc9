package services

import (
	"context"
	"errors"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserService handles profile reads and updates
type UserService struct {
	userRepository repositories.UserRepository
	log            *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepository: userRepo, log: log}
}

// GetUser returns the profile of userID
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return loadUser(ctx, s.userRepository, id, "user not found")
}

// UpdateProfile applies the non-empty fields of req to userID's profile
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.UpdateProfile(ctx, id, req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, New(ErrNotFound, "user not found")
		}
		return nil, Wrap(ErrInternal, "failed to update profile", err)
	}
	return user, nil
}

// ResolveFirebaseUser returns the id of the user linked to firebaseUID,
// creating the user on first sight.
func (s *UserService) ResolveFirebaseUser(ctx context.Context, firebaseUID, name, email string) (string, error) {
	user, err := s.userRepository.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user.ID.Hex(), nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return "", Wrap(ErrInternal, "failed to load user", err)
	}

	user = &models.User{Name: name, Email: email, FirebaseUID: firebaseUID}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return "", Wrap(ErrInternal, "failed to create user", err)
	}
	s.log.Info("provisioned user for firebase account",
		zap.String("user_id", user.ID.Hex()),
		zap.String("firebase_uid", firebaseUID),
	)
	return user.ID.Hex(), nil
}

func loadUser(ctx context.Context, repo repositories.UserRepository, id primitive.ObjectID, notFound string) (*models.User, error) {
	user, err := repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, New(ErrNotFound, notFound)
		}
		return nil, Wrap(ErrInternal, "failed to load user", err)
	}
	return user, nil
}
