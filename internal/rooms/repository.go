package rooms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehall/internal/shared/store"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasTicketsFrom(ctx context.Context, roomID uuid.UUID, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	err := r.db.WithContext(ctx).Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoomTitleTaken
	}
	return store.Unavailable(err)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, store.Unavailable(err)
	}
	return &room, nil
}

func (r *repository) List(ctx context.Context) ([]Room, error) {
	var result []Room
	err := r.db.WithContext(ctx).Order("title ASC").Find(&result).Error
	return result, store.Unavailable(err)
}

func (r *repository) Update(ctx context.Context, room *Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoomTitleTaken
	}
	return store.Unavailable(err)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Room{})
	if result.Error != nil {
		return store.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// HasTicketsFrom reports whether any session in the room has tickets
// sold for the given date or later. Such a room is frozen: its seat
// count and schedule can no longer be changed safely.
func (r *repository) HasTicketsFrom(ctx context.Context, roomID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tickets").
		Joins("JOIN sessions ON sessions.id = tickets.session_id").
		Where("sessions.room_id = ?", roomID).
		Where("tickets.date >= ?", date).
		Count(&count).Error
	if err != nil {
		return false, store.Unavailable(err)
	}
	return count > 0, nil
}
