package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// TicketNotification is the event emitted after a purchase commits.
// One event covers the whole batch of seats bought together.
type TicketNotification struct {
	ID uuid.UUID `json:"id"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	SessionID  uuid.UUID `json:"session_id"`
	MovieTitle string    `json:"movie_title"`
	RoomTitle  string    `json:"room_title"`
	Date       string    `json:"date"`
	TimeStart  string    `json:"time_start"`
	Seats      []int     `json:"seats"`
	TotalPrice float64   `json:"total_price"`

	Status    NotificationStatus `json:"status"`
	LastError *string            `json:"last_error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}

func NewTicketNotification() *TicketNotification {
	now := time.Now()
	return &TicketNotification{
		ID:        uuid.New(),
		Status:    NotificationStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetPartitionKey routes all events for one user to the same partition
// so per-user ordering holds.
func (tn *TicketNotification) GetPartitionKey() string {
	return tn.RecipientID.String()
}

func (tn *TicketNotification) ToJSON() ([]byte, error) {
	return json.Marshal(tn)
}

func (tn *TicketNotification) MarkSent() {
	now := time.Now()
	tn.Status = NotificationStatusSent
	tn.SentAt = &now
	tn.UpdatedAt = now
}

func (tn *TicketNotification) MarkFailed(err error) {
	tn.Status = NotificationStatusFailed
	tn.UpdatedAt = time.Now()

	errorStr := err.Error()
	tn.LastError = &errorStr
}
