package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository is an in-process UserRepository used for local runs and tests.
// Documents are copied on the way in and out so callers never share state with the store.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]*models.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}
	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *MemoryUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *MemoryUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.users[id]; u.FirebaseUID != "" && u.FirebaseUID == firebaseUID {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []models.User{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !seen[id] {
			seen[id] = true
			users = append(users, *copyUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) FindUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skip := make(map[primitive.ObjectID]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	users := []models.User{}
	for _, id := range r.order {
		if int64(len(users)) >= limit {
			break
		}
		if !skip[id] {
			users = append(users, *copyUser(r.users[id]))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.ProfilePicture != "" {
		u.ProfilePicture = req.ProfilePicture
	}
	if req.Headline != "" {
		u.Headline = req.Headline
	}
	if req.Location != "" {
		u.Location = req.Location
	}
	if req.About != "" {
		u.About = req.About
	}
	if req.Experience != nil {
		u.Experience = append([]models.Experience(nil), req.Experience...)
	}
	if req.Education != nil {
		u.Education = append([]models.Education(nil), req.Education...)
	}
	if req.Skills != nil {
		u.Skills = append([]string(nil), req.Skills...)
	}
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func (r *MemoryUserRepository) AddConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	for _, id := range u.Connections {
		if id == targetID {
			return false, nil
		}
	}
	u.Connections = append(u.Connections, targetID)
	u.UpdatedAt = time.Now()
	return true, nil
}

func (r *MemoryUserRepository) RemoveConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	kept := u.Connections[:0]
	removed := false
	for _, id := range u.Connections {
		if id == targetID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	u.Connections = kept
	if removed {
		u.UpdatedAt = time.Now()
	}
	return removed, nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Connections = append([]primitive.ObjectID{}, u.Connections...)
	c.Skills = append([]string(nil), u.Skills...)
	c.Experience = append([]models.Experience(nil), u.Experience...)
	c.Education = append([]models.Education(nil), u.Education...)
	return &c
}
