package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUserRepository_Connections(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	ann := &models.User{Name: "Ann"}
	bob := &models.User{Name: "Bob"}
	require.NoError(t, repo.CreateUser(ctx, ann))
	require.NoError(t, repo.CreateUser(ctx, bob))

	added, err := repo.AddConnection(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddConnection(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, added, "duplicate connection must not be appended")

	got, err := repo.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, got.Connections)

	removed, err := repo.RemoveConnection(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveConnection(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	u := &models.User{Name: "Ann"}
	require.NoError(t, repo.CreateUser(ctx, u))

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Connections = append(got.Connections, primitive.NewObjectID())

	again, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Connections)

	_, err = repo.GetUserByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_FindUsersExcludesAndLimits(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	var users []*models.User
	for i := 0; i < 4; i++ {
		u := &models.User{Name: "user"}
		require.NoError(t, repo.CreateUser(ctx, u))
		users = append(users, u)
	}

	found, err := repo.FindUsers(ctx, []primitive.ObjectID{users[0].ID, users[2].ID}, 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, users[1].ID, found[0].ID)
	assert.Equal(t, users[3].ID, found[1].ID)

	found, err = repo.FindUsers(ctx, nil, 3)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestMemoryPostRepository_ToggleLikeAndOwnership(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPostRepository()
	author, liker := primitive.NewObjectID(), primitive.NewObjectID()
	post := &models.Post{Author: author, Content: "hello"}
	require.NoError(t, repo.CreatePost(ctx, post))

	liked, err := repo.ToggleLike(ctx, post.ID, liker)
	require.NoError(t, err)
	assert.True(t, liked.LikedBy(liker))

	unliked, err := repo.ToggleLike(ctx, post.ID, liker)
	require.NoError(t, err)
	assert.False(t, unliked.LikedBy(liker))
	assert.Empty(t, unliked.Likes)

	assert.ErrorIs(t, repo.DeletePost(ctx, post.ID, liker), ErrNotFound)
	assert.NoError(t, repo.DeletePost(ctx, post.ID, author))
	_, err = repo.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNotificationRepository_GroupsAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository()
	recipient := primitive.NewObjectID().Hex()

	require.NoError(t, repo.CreateNotification(ctx, &models.Notification{RecipientID: recipient, Type: models.NotificationLike}))
	require.NoError(t, repo.CreateNotification(ctx, &models.Notification{
		RecipientID: recipient,
		Type:        models.NotificationFollow,
		CreatedAt:   time.Now().AddDate(0, 0, -30),
	}))
	require.NoError(t, repo.CreateNotification(ctx, &models.Notification{RecipientID: "someone-else"}))

	g, err := repo.GetGrouped(ctx, recipient)
	require.NoError(t, err)
	assert.Len(t, g.Today, 1)
	assert.Len(t, g.Older, 1)
	assert.Empty(t, g.Yesterday)

	count, err := repo.GetUnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.MarkAllAsRead(ctx, recipient))
	count, err = repo.GetUnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.MarkAsRead(ctx, 3, recipient), ErrNotFound)
}

func TestDayBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	today, yesterday, week := dayBoundaries(now)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), yesterday)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), week)
}
