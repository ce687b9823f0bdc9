package services

import (
	"context"
	"testing"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	users         *repositories.MemoryUserRepository
	posts         *repositories.MemoryPostRepository
	messages      *repositories.MemoryMessageRepository
	notifications *repositories.MemoryNotificationRepository

	connections *ConnectionService
	graph       *GraphService
	postSvc     *PostService
	messageSvc  *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:         repositories.NewMemoryUserRepository(),
		posts:         repositories.NewMemoryPostRepository(),
		messages:      repositories.NewMemoryMessageRepository(),
		notifications: repositories.NewMemoryNotificationRepository(),
	}
	f.wire(t, f.notifications)
	return f
}

// wire builds the services on top of the fixture's stores, sending
// notifications to notifRepo.
func (f *fixture) wire(t *testing.T, notifRepo repositories.NotificationRepository) {
	notifier := NewNotifier(notifRepo, zaptest.NewLogger(t))
	f.connections = NewConnectionService(f.users, notifier)
	f.graph = NewGraphService(f.users, 2)
	f.postSvc = NewPostService(f.posts, f.users, notifier)
	f.messageSvc = NewMessageService(f.messages, f.users, notifier)
}

// user creates a user connected to conns, in that order
func (f *fixture) user(t *testing.T, name string, conns ...*models.User) *models.User {
	t.Helper()
	u := &models.User{Name: name, ProfilePicture: name + ".png", Headline: name + " headline"}
	for _, c := range conns {
		u.Connections = append(u.Connections, c.ID)
	}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

// connect appends conns to u's connections directly in the store
func (f *fixture) connect(t *testing.T, u *models.User, conns ...*models.User) {
	t.Helper()
	for _, c := range conns {
		_, err := f.users.AddConnection(context.Background(), u.ID, c.ID)
		require.NoError(t, err)
	}
}

func (f *fixture) reload(t *testing.T, u *models.User) *models.User {
	t.Helper()
	got, err := f.users.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	return got
}

func (f *fixture) post(t *testing.T, author *models.User) *models.Post {
	t.Helper()
	p := &models.Post{Author: author.ID, Content: "post by " + author.Name}
	require.NoError(t, f.posts.CreatePost(context.Background(), p))
	return p
}

func ids(users ...*models.User) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// MockNotificationRepository is a testify mock of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, page, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetGrouped(ctx context.Context, recipientID string) (*repositories.GroupedNotifications, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.GroupedNotifications), args.Error(1)
}

func (m *MockNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint, recipientID string) error {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}
