package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cinehall/internal/schedule"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/clock"
	"cinehall/pkg/logger"
)

var (
	// ErrDateOutOfRange: the requested day is outside the session's
	// active date range.
	ErrDateOutOfRange = errors.New("date is outside the session's date range")
	// ErrPurchaseWindow: tickets are sold for today and tomorrow only.
	ErrPurchaseWindow = errors.New("tickets can only be purchased for today or tomorrow")
	// ErrCutoffPassed: same-day purchase after the session has started.
	ErrCutoffPassed = errors.New("session has already started today")
	// ErrConflict: a concurrent purchase won the race at commit time.
	// The caller may retry with fresh seat data.
	ErrConflict = errors.New("booking conflict")
)

// SessionStore is the slice of the session repository the purchase
// flow needs.
type SessionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*sessions.Session, error)
}

// SeatValidator checks a requested seat set against capacity and the
// committed bookings (to avoid a circular dependency on the seats
// package service type).
type SeatValidator interface {
	ValidateSeats(ctx context.Context, sessionID uuid.UUID, date time.Time, requested []int) error
	InvalidateSeatMap(ctx context.Context, sessionID uuid.UUID)
}

// Notifier publishes purchase confirmations. Delivery is best-effort:
// a failed publish never fails the booking.
type Notifier interface {
	PublishTicketPurchase(ctx context.Context, userID uuid.UUID, tickets []Ticket) error
}

type Service interface {
	SetNotifier(notifier Notifier)
	Purchase(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, date time.Time, seats []int) (*PurchaseResponse, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID) ([]TicketResponse, error)
	GetSessionTickets(ctx context.Context, sessionID uuid.UUID, date *time.Time) ([]TicketResponse, error)
}

type service struct {
	repo         Repository
	sessionStore SessionStore
	seats        SeatValidator
	clock        clock.Clock
	notifier     Notifier
	log          *logger.Logger
}

func NewService(repo Repository, sessionStore SessionStore, seatValidator SeatValidator, clk clock.Clock) Service {
	return &service{
		repo:         repo,
		sessionStore: sessionStore,
		seats:        seatValidator,
		clock:        clk,
		log:          logger.GetDefault(),
	}
}

// SetNotifier wires the optional purchase-notification producer.
func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Purchase admits or rejects a batch seat purchase as one atomic unit.
// Validation order is fixed: seat availability, session date range,
// today/tomorrow window, same-day cutoff. The single clock snapshot
// taken here is used for every date comparison in the operation.
func (s *service) Purchase(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, date time.Time, seats []int) (*PurchaseResponse, error) {
	now := s.clock.Now()
	date = schedule.DateOnly(date)

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 1. Requested seats must be free and within capacity.
	if err := s.seats.ValidateSeats(ctx, sessionID, date, seats); err != nil {
		return nil, err
	}

	// 2. The day must fall within the session's active range.
	if !session.ActiveDates().ContainsDate(date) {
		return nil, fmt.Errorf("%w: session runs %s", ErrDateOutOfRange, formatActiveDates(session))
	}

	// 3. Sales are open for today and tomorrow only.
	today := schedule.DateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)
	if date.Before(today) || date.After(tomorrow) {
		return nil, ErrPurchaseWindow
	}

	// 4. No same-day sales once the screening has started.
	nowTime := schedule.TimeOfDay(now.Hour()*60 + now.Minute())
	if date.Equal(today) && session.TimeStart < nowTime {
		return nil, ErrCutoffPassed
	}

	tickets := make([]Ticket, 0, len(seats))
	for _, seat := range seats {
		tickets = append(tickets, Ticket{
			SessionID:  sessionID,
			UserID:     userID,
			Date:       date,
			SeatNumber: seat,
			Price:      session.Price,
		})
	}

	// All-or-nothing: the repository re-checks under a session lock and
	// the unique index catches anything that still slips through.
	if err := s.repo.CreateBatchWithSeatCheck(ctx, tickets); err != nil {
		return nil, err
	}

	s.seats.InvalidateSeatMap(ctx, sessionID)

	if s.notifier != nil {
		if err := s.notifier.PublishTicketPurchase(ctx, userID, tickets); err != nil {
			// Best-effort: the purchase is committed either way.
			s.log.ErrorWithContext(ctx, "purchase notification failed", err, map[string]interface{}{
				"session_id": sessionID.String(),
				"user_id":    userID.String(),
			})
		}
	}

	response := &PurchaseResponse{
		SessionID:  sessionID.String(),
		Date:       date.Format(dateLayout),
		Seats:      seats,
		TotalPrice: session.Price * float64(len(seats)),
		Tickets:    make([]TicketResponse, 0, len(tickets)),
	}
	for i := range tickets {
		response.Tickets = append(response.Tickets, tickets[i].ToResponse())
	}
	return response, nil
}

func formatActiveDates(session *sessions.Session) string {
	dates := session.ActiveDates()
	if dates.Start.Equal(dates.Finish) {
		return dates.Start.Format(dateLayout)
	}
	return dates.Start.Format(dateLayout) + " - " + dates.Finish.Format(dateLayout)
}

func (s *service) GetUserTickets(ctx context.Context, userID uuid.UUID) ([]TicketResponse, error) {
	tickets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, tickets[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetSessionTickets(ctx context.Context, sessionID uuid.UUID, date *time.Time) ([]TicketResponse, error) {
	tickets, err := s.repo.ListForSession(ctx, sessionID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, tickets[i].ToResponse())
	}
	return responses, nil
}
