package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cinehall/internal/bookings"
	"cinehall/internal/sessions"
	"cinehall/pkg/logger"
)

// UserDirectory resolves recipient contact details. The auth package
// provides an adapter over its user repository.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, name string, err error)
}

// SessionStore loads session details for notification enrichment.
type SessionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*sessions.Session, error)
}

// Service builds and publishes purchase confirmations. It satisfies
// the bookings notifier contract.
type Service struct {
	producer Producer
	users    UserDirectory
	sessions SessionStore
	log      *logger.Logger
}

func NewService(producer Producer, users UserDirectory, sessionStore SessionStore) *Service {
	return &Service{
		producer: producer,
		users:    users,
		sessions: sessionStore,
		log:      logger.GetDefault(),
	}
}

// PublishTicketPurchase emits one event covering the whole purchased batch.
func (s *Service) PublishTicketPurchase(ctx context.Context, userID uuid.UUID, tickets []bookings.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	email, name, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	notification := NewTicketNotification()
	notification.RecipientID = userID
	notification.RecipientEmail = email
	notification.RecipientName = name
	notification.SessionID = tickets[0].SessionID
	notification.Date = tickets[0].Date.Format("2006-01-02")

	for _, t := range tickets {
		notification.Seats = append(notification.Seats, t.SeatNumber)
		notification.TotalPrice += t.Price
	}

	session, err := s.sessions.GetByID(ctx, tickets[0].SessionID)
	if err != nil {
		// Publish without enrichment rather than drop the event
		s.log.ErrorWithContext(ctx, "session lookup failed for notification", err, map[string]interface{}{
			"session_id": tickets[0].SessionID.String(),
		})
	} else {
		notification.MovieTitle = session.MovieTitle()
		notification.TimeStart = session.TimeStart.String()
		if session.Room != nil {
			notification.RoomTitle = session.Room.Title
		}
	}

	return s.producer.Publish(ctx, notification)
}
