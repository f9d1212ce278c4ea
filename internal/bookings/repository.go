package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cinehall/internal/schedule"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/store"
)

type Repository interface {
	// CreateBatchWithSeatCheck inserts the whole batch atomically,
	// re-validating seat availability under a session row lock.
	CreateBatchWithSeatCheck(ctx context.Context, tickets []Ticket) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	ListForSession(ctx context.Context, sessionID uuid.UUID, date *time.Time) ([]Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBatchWithSeatCheck runs the check-then-insert under a lock on
// the session row so two concurrent purchases for the same session
// serialize. The unique index on (date, session_id, seat_number) is the
// final backstop: a race that slips past the in-transaction check
// surfaces as ErrConflict, never as a partial booking.
func (r *repository) CreateBatchWithSeatCheck(ctx context.Context, tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	sessionID := tickets[0].SessionID
	date := tickets[0].Date

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessionRow struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("sessions").
			Select("id").
			Where("id = ?", sessionID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sessionRow).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return sessions.ErrSessionNotFound
			}
			return store.Unavailable(err)
		}

		var taken []int
		err = tx.Model(&Ticket{}).
			Where("session_id = ?", sessionID).
			Where("date = ?", date).
			Pluck("seat_number", &taken).Error
		if err != nil {
			return store.Unavailable(err)
		}

		takenSet := make(map[int]bool, len(taken))
		for _, seat := range taken {
			takenSet[seat] = true
		}
		for i := range tickets {
			if takenSet[tickets[i].SeatNumber] {
				return fmt.Errorf("%w: seat %d was booked concurrently", ErrConflict, tickets[i].SeatNumber)
			}
		}

		return tx.Create(&tickets).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: a seat was booked concurrently", ErrConflict)
	case errors.Is(err, sessions.ErrSessionNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, store.ErrUnavailable):
		return err
	default:
		return store.Unavailable(err)
	}
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Room").
		Preload("Session.Movie").
		Where("user_id = ?", userID).
		Order("date DESC, seat_number ASC").
		Find(&tickets).Error
	return tickets, store.Unavailable(err)
}

func (r *repository) ListForSession(ctx context.Context, sessionID uuid.UUID, date *time.Time) ([]Ticket, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("session_id = ?", sessionID)
	if date != nil {
		query = query.Where("date = ?", schedule.DateOnly(*date))
	}

	var tickets []Ticket
	err := query.Order("date ASC, seat_number ASC").Find(&tickets).Error
	return tickets, store.Unavailable(err)
}
