package movies

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title           string    `json:"title" gorm:"not null;size:120"`
	Description     string    `json:"description" gorm:"type:text"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Director        string    `json:"director" gorm:"size:120"`
	Year            int       `json:"year"`
	PosterURL       string    `json:"poster_url" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// DurationFormat renders the running time as "1h. 30m." or "45m.".
// The scheduler reuses this string in its too-short error message.
func (m *Movie) DurationFormat() string {
	if m.DurationMinutes/60 > 0 {
		return fmt.Sprintf("%dh. %dm.", m.DurationMinutes/60, m.DurationMinutes%60)
	}
	return fmt.Sprintf("%dm.", m.DurationMinutes)
}

type CreateMovieRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=120"`
	Description     string `json:"description" binding:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Director        string `json:"director" binding:"omitempty,max=120"`
	Year            int    `json:"year" binding:"omitempty,min=1888"`
	PosterURL       string `json:"poster_url" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Director    *string `json:"director" binding:"omitempty,max=120"`
	Year        *int    `json:"year" binding:"omitempty,min=1888"`
	PosterURL   *string `json:"poster_url" binding:"omitempty,url"`
}

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Duration        string    `json:"duration"`
	Director        string    `json:"director,omitempty"`
	Year            int       `json:"year,omitempty"`
	PosterURL       string    `json:"poster_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Duration:        m.DurationFormat(),
		Director:        m.Director,
		Year:            m.Year,
		PosterURL:       m.PosterURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
