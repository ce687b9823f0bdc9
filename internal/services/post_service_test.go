package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleLike_IsAnInvolution(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "Author")
	fan := f.user(t, "Fan")
	other := f.user(t, "Other")
	post := f.post(t, author)
	ctx := context.Background()

	_, err := f.postSvc.ToggleLike(ctx, post.ID.Hex(), other.ID.Hex())
	require.NoError(t, err)

	first, err := f.postSvc.ToggleLike(ctx, post.ID.Hex(), fan.ID.Hex())
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Len(t, first.Post.Likes, 2)

	second, err := f.postSvc.ToggleLike(ctx, post.ID.Hex(), fan.ID.Hex())
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.False(t, second.Notified)
	assert.Equal(t, []primitive.ObjectID{other.ID}, second.Post.Likes)
}

func TestToggleLike_TwiceCreatesOneNotification(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "Author")
	fan := f.user(t, "Fan")
	post := f.post(t, author)
	ctx := context.Background()

	_, err := f.postSvc.ToggleLike(ctx, post.ID.Hex(), fan.ID.Hex())
	require.NoError(t, err)
	_, err = f.postSvc.ToggleLike(ctx, post.ID.Hex(), fan.ID.Hex())
	require.NoError(t, err)

	notifs := f.notifications.All()
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationLike, notifs[0].Type)
	assert.Equal(t, "Fan liked your post", notifs[0].Message)
	assert.Equal(t, author.ID.Hex(), notifs[0].RecipientID)
	require.NotNil(t, notifs[0].RelatedPostID)
	assert.Equal(t, post.ID.Hex(), *notifs[0].RelatedPostID)
}

func TestToggleLike_OwnPostDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "Author")
	post := f.post(t, author)

	res, err := f.postSvc.ToggleLike(context.Background(), post.ID.Hex(), author.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.False(t, res.Notified)
	assert.Empty(t, f.notifications.All())
}

func TestToggleLike_MissingPost(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "Fan")

	_, err := f.postSvc.ToggleLike(context.Background(), primitive.NewObjectID().Hex(), fan.ID.Hex())
	assert.Equal(t, ErrNotFound, GetErrorCode(err))
}

func TestToggleLike_NotificationFailureKeepsLike(t *testing.T) {
	f := newFixture(t)
	notifRepo := new(MockNotificationRepository)
	notifRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("boom"))
	f.wire(t, notifRepo)
	author := f.user(t, "Author")
	fan := f.user(t, "Fan")
	post := f.post(t, author)

	res, err := f.postSvc.ToggleLike(context.Background(), post.ID.Hex(), fan.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.False(t, res.Notified)

	stored, err := f.posts.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.True(t, stored.LikedBy(fan.ID))
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "Author")
	reader := f.user(t, "Reader")
	post := f.post(t, author)
	ctx := context.Background()

	_, err := f.postSvc.AddComment(ctx, post.ID.Hex(), reader.ID.Hex(), "   ")
	assert.Equal(t, ErrValidation, GetErrorCode(err))

	updated, err := f.postSvc.AddComment(ctx, post.ID.Hex(), reader.ID.Hex(), "nice")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, reader.ID, updated.Comments[0].User)
	assert.Equal(t, "nice", updated.Comments[0].Text)
	assert.False(t, updated.Comments[0].CreatedAt.IsZero())

	_, err = f.postSvc.AddComment(ctx, post.ID.Hex(), author.ID.Hex(), "thanks")
	require.NoError(t, err)

	notifs := f.notifications.All()
	require.Len(t, notifs, 1, "commenting on your own post does not notify")
	assert.Equal(t, models.NotificationComment, notifs[0].Type)
	assert.Equal(t, "Reader commented on your post", notifs[0].Message)

	_, err = f.postSvc.AddComment(ctx, primitive.NewObjectID().Hex(), reader.ID.Hex(), "hi")
	assert.Equal(t, ErrNotFound, GetErrorCode(err))
}

func TestPostOwnership(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "Author")
	stranger := f.user(t, "Stranger")
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, author.ID.Hex(), &models.CreatePostRequest{Content: "first"})
	require.NoError(t, err)

	_, err = f.postSvc.UpdatePost(ctx, post.ID.Hex(), stranger.ID.Hex(), &models.UpdatePostRequest{Content: "hijack"})
	assert.Equal(t, ErrNotFound, GetErrorCode(err))

	updated, err := f.postSvc.UpdatePost(ctx, post.ID.Hex(), author.ID.Hex(), &models.UpdatePostRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.Equal(t, ErrNotFound, GetErrorCode(f.postSvc.DeletePost(ctx, post.ID.Hex(), stranger.ID.Hex())))
	require.NoError(t, f.postSvc.DeletePost(ctx, post.ID.Hex(), author.ID.Hex()))

	posts, err := f.postSvc.ListPosts(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
