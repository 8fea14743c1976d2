package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-backend/internal/models"
)

func TestNotify_PersistsInboxRow(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env.db)

	env.notifications.Notify(user, models.NotificationSystem, "Welcome", "Hello there", map[string]string{"k": "v"})

	list, err := env.notifications.GetNotifications(user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Welcome", list.Notifications[0].Title)
	assert.Equal(t, models.NotificationSystem, list.Notifications[0].Type)
	assert.Equal(t, int64(1), list.UnreadCount)
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := createTestUser(t, env.db)
	other := createTestUser(t, env.db)

	env.notifications.Notify(owner, models.NotificationSystem, "Title", "Body", nil)

	list, err := env.notifications.GetNotifications(owner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	id := list.Notifications[0].ID

	_, err = env.notifications.MarkRead(id, other.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	notification, err := env.notifications.MarkRead(id, owner.ID)
	require.NoError(t, err)
	assert.True(t, notification.IsRead)

	unread, err := env.notifications.GetUnreadCount(owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env.db)

	for i := 0; i < 3; i++ {
		env.notifications.Notify(user, models.NotificationSystem, "Title", "Body", nil)
	}

	require.NoError(t, env.notifications.MarkAllRead(user.ID))

	unread, err := env.notifications.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestDeleteNotification_ScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := createTestUser(t, env.db)
	other := createTestUser(t, env.db)

	env.notifications.Notify(owner, models.NotificationSystem, "Title", "Body", nil)

	list, err := env.notifications.GetNotifications(owner.ID, 1, 10)
	require.NoError(t, err)
	id := list.Notifications[0].ID

	assert.ErrorIs(t, env.notifications.Delete(id, other.ID), ErrNotificationNotFound)
	require.NoError(t, env.notifications.Delete(id, owner.ID))

	list, err = env.notifications.GetNotifications(owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
}
