package bookings

import (
	"time"

	"github.com/google/uuid"

	"cinehall/internal/sessions"
	"cinehall/internal/users"
)

// Ticket is one purchased seat for one session on one concrete
// calendar date. Tickets are never updated after creation.
type Ticket struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID  uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tickets_seat,priority:2"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Date       time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_tickets_seat,priority:1"`
	SeatNumber int       `json:"seat_number" gorm:"not null;check:seat_number > 0;uniqueIndex:idx_tickets_seat,priority:3"`
	Price      float64   `json:"price" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Session *sessions.Session `json:"session,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	User    *users.User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// PurchaseRequest buys a batch of seats for one session and date.
type PurchaseRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	Seats     []int  `json:"seats" binding:"required,min=1,dive,min=1"`
}

type TicketResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Date       string    `json:"date"`
	SeatNumber int       `json:"seat_number"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"created_at"`

	Session *sessions.SessionResponse `json:"session,omitempty"`
}

const dateLayout = "2006-01-02"

func (t *Ticket) ToResponse() TicketResponse {
	resp := TicketResponse{
		ID:         t.ID.String(),
		SessionID:  t.SessionID.String(),
		Date:       t.Date.Format(dateLayout),
		SeatNumber: t.SeatNumber,
		Price:      t.Price,
		CreatedAt:  t.CreatedAt,
	}
	if t.Session != nil {
		session := t.Session.ToResponse()
		resp.Session = &session
	}
	return resp
}

// PurchaseResponse returns the whole batch created by one purchase.
type PurchaseResponse struct {
	SessionID  string           `json:"session_id"`
	Date       string           `json:"date"`
	Seats      []int            `json:"seats"`
	TotalPrice float64          `json:"total_price"`
	Tickets    []TicketResponse `json:"tickets"`
}
