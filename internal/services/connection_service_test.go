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

func TestFollow_AppendsConnectionAndNotifies(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "Ann")
	bob := f.user(t, "Bob")
	cat := f.user(t, "Cat")
	f.connect(t, ann, cat)

	res, err := f.connections.Follow(context.Background(), ann.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.True(t, res.Notified)

	assert.Equal(t, ids(cat, bob), f.reload(t, ann).Connections)
	assert.Empty(t, f.reload(t, bob).Connections, "follow is directional")

	notifs := f.notifications.All()
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationFollow, notifs[0].Type)
	assert.Equal(t, bob.ID.Hex(), notifs[0].RecipientID)
	assert.Equal(t, ann.ID.Hex(), notifs[0].SenderID)
	assert.Equal(t, "Ann started following you", notifs[0].Message)
	assert.False(t, notifs[0].Read)
}

func TestFollow_SelfIsInvalidAndDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "Ann")

	_, err := f.connections.Follow(context.Background(), ann.ID.Hex(), ann.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, ErrInvalidOperation, GetErrorCode(err))

	assert.Empty(t, f.reload(t, ann).Connections)
	assert.Empty(t, f.notifications.All())
}

func TestFollow_TwiceFailsAlreadyExists(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "Ann")
	bob := f.user(t, "Bob")
	ctx := context.Background()

	_, err := f.connections.Follow(ctx, ann.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)

	_, err = f.connections.Follow(ctx, ann.ID.Hex(), bob.ID.Hex())
	assert.True(t, IsCode(err, ErrAlreadyExists))
	assert.Len(t, f.reload(t, ann).Connections, 1)
	assert.Len(t, f.notifications.All(), 1)
}

func TestFollow_MissingUsers(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "Ann")
	ghost := primitive.NewObjectID().Hex()
	ctx := context.Background()

	_, err := f.connections.Follow(ctx, ann.ID.Hex(), ghost)
	assert.Equal(t, ErrNotFound, GetErrorCode(err))

	_, err = f.connections.Follow(ctx, ghost, ann.ID.Hex())
	assert.Equal(t, ErrNotFound, GetErrorCode(err))

	_, err = f.connections.Follow(ctx, ann.ID.Hex(), "not-an-id")
	assert.Equal(t, ErrValidation, GetErrorCode(err))
}

func TestFollow_NotificationFailureKeepsConnection(t *testing.T) {
	f := newFixture(t)
	notifRepo := new(MockNotificationRepository)
	notifRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("postgres down"))
	f.wire(t, notifRepo)

	ann := f.user(t, "Ann")
	bob := f.user(t, "Bob")

	res, err := f.connections.Follow(context.Background(), ann.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.False(t, res.Notified)
	assert.Equal(t, ids(bob), f.reload(t, ann).Connections)
	notifRepo.AssertNumberOfCalls(t, "CreateNotification", 1)
}

func TestUnfollow(t *testing.T) {
	f := newFixture(t)
	bob := f.user(t, "Bob")
	cat := f.user(t, "Cat")
	ann := f.user(t, "Ann", bob, cat)
	ctx := context.Background()

	err := f.connections.Unfollow(ctx, ann.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, ids(cat), f.reload(t, ann).Connections)
	assert.Empty(t, f.notifications.All())

	err = f.connections.Unfollow(ctx, ann.ID.Hex(), bob.ID.Hex())
	assert.Equal(t, ErrNotFollowing, GetErrorCode(err))

	err = f.connections.Unfollow(ctx, primitive.NewObjectID().Hex(), bob.ID.Hex())
	assert.Equal(t, ErrNotFound, GetErrorCode(err))
}

func TestConnections_ListsInFollowOrderAndSkipsDangling(t *testing.T) {
	f := newFixture(t)
	bob := f.user(t, "Bob")
	cat := f.user(t, "Cat")
	ann := f.user(t, "Ann", cat)
	_, err := f.users.AddConnection(context.Background(), ann.ID, primitive.NewObjectID())
	require.NoError(t, err)
	f.connect(t, ann, bob)

	list, err := f.connections.Connections(context.Background(), ann.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, cat.ID.Hex(), list[0].ID)
	assert.Equal(t, "Cat headline", list[0].Headline)
	assert.Equal(t, bob.ID.Hex(), list[1].ID)
}
