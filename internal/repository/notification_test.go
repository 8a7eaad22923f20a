package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"craveconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_DeliverOutbox(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	chef := createUser(t, db, "chef", models.RoleChef)
	fan := createUser(t, db, "fan", models.RoleFoodie)
	entry := &models.NotificationOutbox{
		RecipientID: chef.ID, SenderID: fan.ID, Type: models.NotificationFollow,
		Message: "fan started following you", Link: "/profile/2",
	}
	require.NoError(t, db.Create(entry).Error)

	n, err := repo.DeliverOutbox(ctx, entry)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, chef.ID, n.RecipientID)

	again, err := repo.DeliverOutbox(ctx, entry)
	require.NoError(t, err)
	assert.Nil(t, again, "a processed entry is not delivered twice")

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, pendingOutbox(t, repo))

	list, err := repo.ListForRecipient(ctx, chef.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fan", list[0].Sender.Username)

	unread, err := repo.CountUnread(ctx, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	read, err := repo.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err = repo.CountUnread(ctx, chef.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationRepository_FailOutbox(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	entry := &models.NotificationOutbox{RecipientID: 1, SenderID: 2, Type: models.NotificationLike, Message: "x"}
	require.NoError(t, db.Create(entry).Error)

	require.NoError(t, repo.FailOutbox(ctx, entry.ID, errors.New("boom"), false))
	pending := pendingOutbox(t, repo)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "boom", pending[0].LastError)

	require.NoError(t, repo.FailOutbox(ctx, entry.ID, errors.New("boom again"), true))
	assert.Empty(t, pendingOutbox(t, repo))

	var dead models.NotificationOutbox
	require.NoError(t, db.First(&dead, entry.ID).Error)
	assert.Equal(t, 2, dead.Attempts)
	assert.NotNil(t, dead.ProcessedAt)
	assert.Nil(t, dead.NotificationID)
}

func TestNotificationRepository_FailOutbox_TruncatesOnRuneBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	entry := &models.NotificationOutbox{RecipientID: 1, SenderID: 2, Type: models.NotificationComment, Message: "x"}
	require.NoError(t, db.Create(entry).Error)

	// One ASCII byte first so a byte cut at 500 would land inside a two-byte rune.
	cause := errors.New("x" + strings.Repeat("é", 600))
	require.NoError(t, repo.FailOutbox(context.Background(), entry.ID, cause, false))

	var stored models.NotificationOutbox
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.True(t, utf8.ValidString(stored.LastError))
	assert.Equal(t, maxLastError, utf8.RuneCountInString(stored.LastError))
	assert.True(t, strings.HasPrefix(stored.LastError, "xé"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "crè", truncateRunes("crème brûlée", 3))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
