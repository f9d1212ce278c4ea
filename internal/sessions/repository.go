package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cinehall/internal/rooms"
	"cinehall/internal/schedule"
	"cinehall/internal/shared/store"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	ListActiveOn(ctx context.Context, date time.Time, filter ListFilter) ([]Session, error)
	FindOverlapping(ctx context.Context, roomID uuid.UUID, dates schedule.DateRange, excludeID *uuid.UUID) ([]Session, error)
	CountTickets(ctx context.Context, sessionID uuid.UUID) (int64, error)
	ScheduleWithRoomLock(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListFilter narrows the active-session listings.
type ListFilter struct {
	MinTime *schedule.TimeOfDay
	MaxTime *schedule.TimeOfDay
	RoomID  *uuid.UUID
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Movie").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, store.Unavailable(err)
	}
	return &session, nil
}

// ListActiveOn returns the sessions whose date range covers the given
// day, ordered by start time.
func (r *repository) ListActiveOn(ctx context.Context, date time.Time, filter ListFilter) ([]Session, error) {
	date = schedule.DateOnly(date)

	query := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Movie").
		Where("date_start <= ?", date).
		Where("COALESCE(date_finish, date_start) >= ?", date)

	if filter.MinTime != nil {
		query = query.Where("time_start >= ?", *filter.MinTime)
	}
	if filter.MaxTime != nil {
		query = query.Where("time_start <= ?", *filter.MaxTime)
	}
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}

	var result []Session
	err := query.Order("time_start ASC").Find(&result).Error
	return result, store.Unavailable(err)
}

func (r *repository) FindOverlapping(ctx context.Context, roomID uuid.UUID, dates schedule.DateRange, excludeID *uuid.UUID) ([]Session, error) {
	return findOverlapping(r.db.WithContext(ctx), roomID, dates, excludeID)
}

// findOverlapping fetches the sessions in the room whose active date
// range intersects the candidate's. It runs against either the base
// connection or an open transaction.
func findOverlapping(tx *gorm.DB, roomID uuid.UUID, dates schedule.DateRange, excludeID *uuid.UUID) ([]Session, error) {
	query := tx.
		Preload("Movie").
		Where("room_id = ?", roomID).
		Where("date_start <= ?", dates.Finish).
		Where("COALESCE(date_finish, date_start) >= ?", dates.Start)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var result []Session
	err := query.Order("date_start ASC, time_start ASC").Find(&result).Error
	return result, store.Unavailable(err)
}

func (r *repository) CountTickets(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tickets").
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, store.Unavailable(err)
}

// ScheduleWithRoomLock persists the session atomically with the overlap
// check. The room row is locked for the duration of the
// check-then-write so two concurrent schedule attempts for the same
// room serialize instead of both passing validation.
func (r *repository) ScheduleWithRoomLock(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomRow struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("rooms").
			Select("id").
			Where("id = ?", session.RoomID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&roomRow).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rooms.ErrRoomNotFound
			}
			return store.Unavailable(err)
		}

		var excludeID *uuid.UUID
		if session.ID != uuid.Nil {
			excludeID = &session.ID
		}

		existing, err := findOverlapping(tx, session.RoomID, session.ActiveDates(), excludeID)
		if err != nil {
			return err
		}
		if err := conflictWith(existing, session); err != nil {
			return err
		}

		if session.ID == uuid.Nil {
			return store.Unavailable(tx.Create(session).Error)
		}
		return store.Unavailable(tx.Save(session).Error)
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{})
	if result.Error != nil {
		return store.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
