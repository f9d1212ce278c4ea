package seats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehall/internal/schedule"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/store"
)

type Repository interface {
	// SeatsTaken returns the seat numbers already ticketed for the
	// session on the given day.
	SeatsTaken(ctx context.Context, sessionID uuid.UUID, date time.Time) ([]int, error)
	// SessionCapacity returns the seat count of the session's room.
	SessionCapacity(ctx context.Context, sessionID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SeatsTaken(ctx context.Context, sessionID uuid.UUID, date time.Time) ([]int, error) {
	var taken []int
	err := r.db.WithContext(ctx).
		Table("tickets").
		Where("session_id = ?", sessionID).
		Where("date = ?", schedule.DateOnly(date)).
		Order("seat_number ASC").
		Pluck("seat_number", &taken).Error
	return taken, store.Unavailable(err)
}

func (r *repository) SessionCapacity(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var seatsCount int
	err := r.db.WithContext(ctx).
		Table("sessions").
		Select("rooms.seats_count").
		Joins("JOIN rooms ON rooms.id = sessions.room_id").
		Where("sessions.id = ?", sessionID).
		Scan(&seatsCount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, sessions.ErrSessionNotFound
		}
		return 0, store.Unavailable(err)
	}
	if seatsCount == 0 {
		return 0, sessions.ErrSessionNotFound
	}
	return seatsCount, nil
}
