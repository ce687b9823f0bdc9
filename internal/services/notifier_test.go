package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

func TestNotifier_RendersMessages(t *testing.T) {
	cases := map[models.NotificationType]string{
		models.NotificationFollow:  "Dana started following you",
		models.NotificationLike:    "Dana liked your post",
		models.NotificationComment: "Dana commented on your post",
		models.NotificationMessage: "Dana sent you a message",
	}
	for kind, want := range cases {
		t.Run(string(kind), func(t *testing.T) {
			repo := repositories.NewMemoryNotificationRepository()
			n := NewNotifier(repo, zaptest.NewLogger(t))
			actor := &models.User{ID: primitive.NewObjectID(), Name: "Dana"}

			require.NoError(t, n.Notify(context.Background(), actor, primitive.NewObjectID(), kind, Related{}))

			all := repo.All()
			require.Len(t, all, 1)
			assert.Equal(t, want, all[0].Message)
			assert.Nil(t, all[0].RelatedPostID)
			assert.Nil(t, all[0].RelatedMessageID)
		})
	}
}

func TestNotifier_SkipsSelf(t *testing.T) {
	repo := repositories.NewMemoryNotificationRepository()
	n := NewNotifier(repo, zaptest.NewLogger(t))
	actor := &models.User{ID: primitive.NewObjectID(), Name: "Dana"}

	require.NoError(t, n.Notify(context.Background(), actor, actor.ID, models.NotificationLike, Related{}))
	assert.Empty(t, repo.All())
}

func TestNotifier_UnknownType(t *testing.T) {
	n := NewNotifier(repositories.NewMemoryNotificationRepository(), zaptest.NewLogger(t))
	actor := &models.User{ID: primitive.NewObjectID(), Name: "Dana"}

	err := n.Notify(context.Background(), actor, primitive.NewObjectID(), "poke", Related{})
	assert.Error(t, err)
}

func TestGetErrorCode(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(ErrForbidden, "nope"))
	assert.Equal(t, ErrForbidden, GetErrorCode(err))
	assert.Equal(t, ErrInternal, GetErrorCode(errors.New("plain")))

	wrapped := Wrap(ErrInternal, "failed", repositories.ErrNotFound)
	assert.ErrorIs(t, wrapped, repositories.ErrNotFound)
	assert.Equal(t, "failed: not found", wrapped.Error())
	assert.Equal(t, "forbidden", ErrForbidden.String())
}
