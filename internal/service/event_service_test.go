package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/email"
)

func newEventService(env *testEnv, store *fakeStorage) *EventService {
	logger := zap.NewNop()
	emailService := email.NewEmailService("", "noreply@gatherly.test", "Gatherly", "http://localhost:5173", logger)
	return NewEventService(env.eventRepo, env.attendanceRepo, env.notifications, emailService, store, logger)
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, _ string) error {
	return nil
}

func TestCreateEvent_DefaultsToUpcoming(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})
	creator := createTestUser(t, env.db)

	start := time.Now().Add(48 * time.Hour)
	event, err := events.CreateEvent(creator.ID, models.CreateEventRequest{
		Title:         "Board game night",
		Description:   "Bring your favorite games",
		Location:      "Community center, main hall",
		StartDateTime: start,
		EndDateTime:   start.Add(3 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusUpcoming, event.Status)
	assert.Equal(t, creator.ID, event.CreatorID)
	assert.Zero(t, event.CurrentAttendees)
	require.NotNil(t, event.Creator)
}

func TestUpdateEvent_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})
	creator := createTestUser(t, env.db)
	stranger := createTestUser(t, env.db)
	admin := createTestUser(t, env.db)
	admin.Role = models.RoleAdmin
	event := createTestEvent(t, env.db, creator.ID, nil)

	title := "Renamed"
	_, err := events.UpdateEvent(stranger, event.ID, models.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := events.UpdateEvent(admin, event.ID, models.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestUpdateEvent_PartialFieldsOnly(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})
	creator := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, intPtr(20))

	capacity := 30
	updated, err := events.UpdateEvent(creator, event.ID, models.UpdateEventRequest{MaxAttendees: &capacity})
	require.NoError(t, err)

	require.NotNil(t, updated.MaxAttendees)
	assert.Equal(t, 30, *updated.MaxAttendees)
	assert.Equal(t, event.Title, updated.Title)
	assert.Equal(t, event.Location, updated.Location)
}

func TestListEvents_ExcludesPrivate(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})
	creator := createTestUser(t, env.db)

	createTestEvent(t, env.db, creator.ID, nil)
	private := createTestEvent(t, env.db, creator.ID, nil)
	require.NoError(t, env.db.Model(private).Update("is_private", true).Error)

	listed, pagination, err := events.ListEvents(models.EventFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestNotifyReschedule_ReachesJoinedAttendees(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})
	creator := createTestUser(t, env.db)
	joiner := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := env.admission.RequestJoin(joiner, event.ID)
	require.NoError(t, err)

	events.notifyReschedule(event)

	list, err := env.notifications.GetNotifications(joiner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, models.NotificationEventUpdate, list.Notifications[0].Type)
}

func TestLikeEvent_UnknownEvent(t *testing.T) {
	env := newTestEnv(t)
	events := newEventService(env, &fakeStorage{})

	assert.ErrorIs(t, events.LikeEvent(9999), ErrEventNotFound)
}

func TestUploadEventImage_CreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStorage{}
	events := newEventService(env, store)
	creator := createTestUser(t, env.db)
	stranger := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	_, err := events.UploadEventImage(context.Background(), stranger, event.ID, "photo.jpg", bytes.NewReader([]byte("img")), "image/jpeg")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, store.keys)

	url, err := events.UploadEventImage(context.Background(), creator, event.ID, "photo.jpg", bytes.NewReader([]byte("img")), "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, url, "https://cdn.test/events/")

	updated, err := env.eventRepo.GetByID(event.ID)
	require.NoError(t, err)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, url, updated.Images[0])
}
