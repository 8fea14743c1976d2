package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The capacity guard and the counter bump must travel in one UPDATE.
func TestIncrementAttendees_GuardedUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET "current_attendees"=current_attendees \+ 1 WHERE id = \$1 AND \(max_attendees IS NULL OR current_attendees < max_attendees\)`).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.IncrementAttendees(7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttendees_AtCapacityReturnsFalse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET "current_attendees"=current_attendees \+ 1`).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.IncrementAttendees(7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementAttendees_FlooredAtZero(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET "current_attendees"=CASE WHEN current_attendees > 0 THEN current_attendees - 1 ELSE 0 END WHERE id = \$1`).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DecrementAttendees(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET "likes"=likes \+ 1 WHERE id = \$1`).
		WithArgs(uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.IncrementLikes(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
