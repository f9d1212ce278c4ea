package bookings

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
	"gorm.io/gorm/logger"

	"cinehall/internal/sessions"
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
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestPurchaseLocksSessionRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	mock.ExpectBegin()
	// The expectation only matches when the session SELECT carries the
	// row lock; an unknown session rolls the transaction back.
	mock.ExpectQuery(`SELECT id FROM "sessions" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(sessionID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.CreateBatchWithSeatCheck(context.Background(), []Ticket{{
		SessionID:  sessionID,
		UserID:     uuid.New(),
		Date:       date("2026-09-03"),
		SeatNumber: 1,
		Price:      10,
	}})

	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseHidesDriverFaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM "sessions" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(sessionID, 1).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connection refused"))
	mock.ExpectRollback()

	err := repo.CreateBatchWithSeatCheck(context.Background(), []Ticket{{
		SessionID:  sessionID,
		UserID:     uuid.New(),
		Date:       date("2026-09-03"),
		SeatNumber: 1,
		Price:      10,
	}})

	require.ErrorIs(t, err, store.ErrUnavailable)
	// The driver message stays out of the error text handlers render.
	assert.Equal(t, "store unavailable", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForSessionNormalizesDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	sessionID := uuid.New()
	// The timestamp's clock part must be stripped before it hits SQL
	withClock := time.Date(2026, 9, 3, 15, 45, 12, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "tickets" WHERE session_id = \$1 AND date = \$2`).
		WithArgs(sessionID, date("2026-09-03")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "seat_number"}))

	tickets, err := repo.ListForSession(context.Background(), sessionID, &withClock)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
