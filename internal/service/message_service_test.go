package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-backend/internal/models"
)

func newMessageService(env *testEnv) *MessageService {
	return NewMessageService(env.messageRepo, env.eventRepo, env.attendanceRepo, env.notifications, zap.NewNop())
}

func TestSendMessage_RequiresJoinedAttendance(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	stranger := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := messages.SendMessage(stranger, event.ID, models.SendMessageRequest{Content: "hello"})
	assert.ErrorIs(t, err, ErrMustBeAttending)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendMessage_PendingAttendeeRefused(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)
	require.NoError(t, env.db.Model(event).Update("requires_approval", true).Error)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	_, err = messages.SendMessage(joiner, event.ID, models.SendMessageRequest{Content: "hello"})
	assert.ErrorIs(t, err, ErrMustBeAttending)
}

func TestSendMessage_PersistsWithDefaults(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	message, err := messages.SendMessage(joiner, event.ID, models.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, message.MessageType)
	assert.Equal(t, joiner.ID, message.SenderID)
	assert.False(t, message.IsEdited)
}

func TestGetMessages_ChronologicalPage(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, env.messageRepo.Create(&models.Message{
			EventID:  event.ID,
			SenderID: joiner.ID,
			Content:  fmt.Sprintf("message %d", i),
		}))
	}

	page, pagination, err := messages.GetMessages(joiner.ID, event.ID, 1, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, int64(5), pagination.Total)

	// The newest page, rendered oldest first.
	assert.Equal(t, "message 3", page[0].Content)
	assert.Equal(t, "message 5", page[2].Content)
}

func TestGetMessages_NonAttendeeRefused(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	stranger := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, _, err := messages.GetMessages(stranger.ID, event.ID, 1, 10)
	assert.ErrorIs(t, err, ErrMustBeAttending)
}

func TestEditMessage_SenderOnly(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	other := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	message, err := messages.SendMessage(joiner, event.ID, models.SendMessageRequest{Content: "draft"})
	require.NoError(t, err)

	_, err = messages.EditMessage(other, message.ID, models.EditMessageRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := messages.EditMessage(joiner, message.ID, models.EditMessageRequest{Content: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", edited.Content)
	assert.True(t, edited.IsEdited)
}

func TestDeleteMessage_SenderOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	messages := newMessageService(env)
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	admin := createTestUser(t, env.db)
	admin.Role = models.RoleAdmin
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	first, err := messages.SendMessage(joiner, event.ID, models.SendMessageRequest{Content: "one"})
	require.NoError(t, err)
	second, err := messages.SendMessage(joiner, event.ID, models.SendMessageRequest{Content: "two"})
	require.NoError(t, err)

	assert.ErrorIs(t, messages.DeleteMessage(creator, first.ID), ErrForbidden)
	require.NoError(t, messages.DeleteMessage(joiner, first.ID))
	require.NoError(t, messages.DeleteMessage(admin, second.ID))

	err = messages.DeleteMessage(joiner, first.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
