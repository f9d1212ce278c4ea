package sessions

import (
	"time"

	"github.com/google/uuid"

	"cinehall/internal/movies"
	"cinehall/internal/rooms"
	"cinehall/internal/schedule"
)

// Session is a scheduled screening: a movie shown in a room over an
// inclusive date range, in the same wall-clock window every day.
type Session struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RoomID     uuid.UUID          `json:"room_id" gorm:"type:uuid;not null;index"`
	MovieID    *uuid.UUID         `json:"movie_id" gorm:"type:uuid"`
	DateStart  time.Time          `json:"date_start" gorm:"type:date;not null;index"`
	DateFinish *time.Time         `json:"date_finish" gorm:"type:date"`
	TimeStart  schedule.TimeOfDay `json:"time_start" gorm:"not null"`
	TimeFinish schedule.TimeOfDay `json:"time_finish" gorm:"not null"`
	Price      float64            `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt  time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time          `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Room  *rooms.Room   `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
	Movie *movies.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Session) TableName() string {
	return "sessions"
}

// ActiveDates returns the inclusive date range the session runs over.
// A missing finish date means the session runs on its start date only.
func (s *Session) ActiveDates() schedule.DateRange {
	finish := time.Time{}
	if s.DateFinish != nil {
		finish = *s.DateFinish
	}
	return schedule.NewDateRange(s.DateStart, finish)
}

// Window returns the session's daily time window.
func (s *Session) Window() schedule.Window {
	return schedule.Window{Start: s.TimeStart, Finish: s.TimeFinish}
}

// MovieTitle is safe against a detached movie reference.
func (s *Session) MovieTitle() string {
	if s.Movie != nil {
		return s.Movie.Title
	}
	return ""
}

// ScheduleRequest carries the fields shared by session creation and
// update. TimeFinish is optional: when absent the scheduler derives it
// from the movie duration plus the configured break.
type ScheduleRequest struct {
	RoomID     uuid.UUID
	MovieID    uuid.UUID
	DateStart  time.Time
	DateFinish *time.Time
	TimeStart  schedule.TimeOfDay
	TimeFinish *schedule.TimeOfDay
	Price      float64
}

// CreateSessionRequest is the HTTP payload; dates are "2006-01-02" and
// times are "HH:MM" strings, parsed by the controller.
type CreateSessionRequest struct {
	RoomID     string  `json:"room_id" binding:"required,uuid"`
	MovieID    string  `json:"movie_id" binding:"required,uuid"`
	DateStart  string  `json:"date_start" binding:"required"`
	DateFinish string  `json:"date_finish"`
	TimeStart  string  `json:"time_start" binding:"required"`
	TimeFinish string  `json:"time_finish"`
	Price      float64 `json:"price" binding:"min=0"`
}

type SessionResponse struct {
	ID         string                `json:"id"`
	Room       *rooms.RoomResponse   `json:"room,omitempty"`
	Movie      *movies.MovieResponse `json:"movie,omitempty"`
	DateStart  string                `json:"date_start"`
	DateFinish string                `json:"date_finish,omitempty"`
	TimeStart  string                `json:"time_start"`
	TimeFinish string                `json:"time_finish"`
	Price      float64               `json:"price"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func (s *Session) ToResponse() SessionResponse {
	resp := SessionResponse{
		ID:         s.ID.String(),
		DateStart:  s.DateStart.Format(dateLayout),
		TimeStart:  s.TimeStart.String(),
		TimeFinish: s.TimeFinish.String(),
		Price:      s.Price,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.DateFinish != nil {
		resp.DateFinish = s.DateFinish.Format(dateLayout)
	}
	if s.Room != nil {
		room := s.Room.ToResponse()
		resp.Room = &room
	}
	if s.Movie != nil {
		movie := s.Movie.ToResponse()
		resp.Movie = &movie
	}
	return resp
}

// ListQuery filters the public today/tomorrow listings.
type ListQuery struct {
	MinTime string `form:"min_time"`
	MaxTime string `form:"max_time"`
	RoomID  string `form:"room" binding:"omitempty,uuid"`
}
