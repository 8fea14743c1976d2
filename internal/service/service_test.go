package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/push"
)

// newTestDB opens an isolated in-memory database per test with the same
// error translation the production connection uses, so unique-constraint
// violations surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Message{},
		&models.Review{},
		&models.Notification{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      models.RoleUser,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, creatorID uint, maxAttendees *int) *models.Event {
	t.Helper()

	event := &models.Event{
		CreatorID:     creatorID,
		Title:         gofakeit.Sentence(3),
		Description:   gofakeit.Paragraph(1, 2, 5, " "),
		Location:      gofakeit.City(),
		StartDateTime: time.Now().Add(24 * time.Hour),
		EndDateTime:   time.Now().Add(26 * time.Hour),
		MaxAttendees:  maxAttendees,
		Status:        models.EventStatusUpcoming,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func intPtr(i int) *int {
	return &i
}

type testEnv struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	eventRepo        *repository.EventRepository
	attendanceRepo   *repository.AttendanceRepository
	messageRepo      *repository.MessageRepository
	reviewRepo       *repository.ReviewRepository
	notificationRepo *repository.NotificationRepository
	notifications    *NotificationService
	admission        *AdmissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	logger := zap.NewNop()

	env := &testEnv{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		eventRepo:        repository.NewEventRepository(db),
		attendanceRepo:   repository.NewAttendanceRepository(db),
		messageRepo:      repository.NewMessageRepository(db),
		reviewRepo:       repository.NewReviewRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
	env.notifications = NewNotificationService(env.notificationRepo, &nopPushSender{}, logger)
	env.admission = NewAdmissionService(db, env.eventRepo, env.attendanceRepo, env.userRepo, env.notifications, logger)
	return env
}

type nopPushSender struct{}

func (s *nopPushSender) Send(_ context.Context, _ string, _ push.Payload) error {
	return nil
}
