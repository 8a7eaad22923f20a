package service

import (
	"context"
	"testing"

	"craveconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_RecipientOnly(t *testing.T) {
	t.Parallel()

	svc := NewNotificationService(noopNotificationRepo())
	ctx := context.Background()

	_, err := svc.List(ctx, chef, foodie.ID)
	assertForbiddenError(t, err)
	_, err = svc.UnreadCount(ctx, admin, foodie.ID)
	assertForbiddenError(t, err)
	_, err = svc.MarkRead(ctx, chef, 1)
	assertForbiddenError(t, err)

	list, err := svc.List(ctx, foodie, foodie.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)

	n, err := svc.UnreadCount(ctx, foodie, foodie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	read, err := svc.MarkRead(ctx, foodie, 1)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}

func TestNotificationService_List_UsesLimit(t *testing.T) {
	t.Parallel()

	repo := noopNotificationRepo()
	var limit int
	repo.listFn = func(_ context.Context, _ uint, l int) ([]models.Notification, error) {
		limit = l
		return nil, nil
	}
	_, err := NewNotificationService(repo).List(context.Background(), foodie, foodie.ID)
	require.NoError(t, err)
	assert.Equal(t, NotificationListLimit, limit)
}
