package rooms

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title      string    `json:"title" gorm:"uniqueIndex;not null;size:120"`
	SeatsCount int       `json:"seats_count" gorm:"not null;check:seats_count > 0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}

type CreateRoomRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=120"`
	SeatsCount int    `json:"seats_count" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=120"`
	SeatsCount *int    `json:"seats_count" binding:"omitempty,min=1"`
}

type RoomResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SeatsCount int       `json:"seats_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Room) ToResponse() RoomResponse {
	return RoomResponse{
		ID:         r.ID.String(),
		Title:      r.Title,
		SeatsCount: r.SeatsCount,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
