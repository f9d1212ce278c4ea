package seats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSeatsTakenQueriesBookedSeats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	// The timestamp's clock part must be stripped before it hits SQL
	withClock := time.Date(2026, 9, 3, 15, 45, 12, 0, time.UTC)
	mock.ExpectQuery(`SELECT "seat_number" FROM "tickets"`).
		WithArgs(sessionID, date("2026-09-03")).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(2).AddRow(4))

	taken, err := repo.SeatsTaken(context.Background(), sessionID, withClock)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCapacityJoinsRoom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	mock.ExpectQuery(`SELECT rooms\.seats_count FROM "sessions" JOIN rooms`).
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"seats_count"}).AddRow(40))

	capacity, err := repo.SessionCapacity(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 40, capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsTakenHidesDriverFaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	mock.ExpectQuery(`SELECT "seat_number" FROM "tickets"`).
		WithArgs(sessionID, date("2026-09-03")).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connection refused"))

	_, err := repo.SeatsTaken(context.Background(), sessionID, date("2026-09-03"))
	require.ErrorIs(t, err, store.ErrUnavailable)
	assert.Equal(t, "store unavailable", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
