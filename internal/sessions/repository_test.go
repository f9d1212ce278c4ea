package sessions

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cinehall/internal/rooms"
	"cinehall/internal/schedule"
	"cinehall/internal/shared/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestScheduleLocksRoomRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	roomID := uuid.New()
	mock.ExpectBegin()
	// The expectation only matches when the room SELECT carries the row
	// lock; an unknown room rolls the transaction back.
	mock.ExpectQuery(`SELECT id FROM "rooms" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(roomID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.ScheduleWithRoomLock(context.Background(), &Session{
		RoomID:     roomID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: schedule.MustTimeOfDay("19:45"),
	})

	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTicketsHidesDriverFaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WithArgs(sessionID).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connection refused"))

	_, err := repo.CountTickets(context.Background(), sessionID)
	require.ErrorIs(t, err, store.ErrUnavailable)
	assert.Equal(t, "store unavailable", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
