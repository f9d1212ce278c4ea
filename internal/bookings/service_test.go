package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehall/internal/schedule"
	"cinehall/internal/seats"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/clock"
)

type stubSessionStore struct {
	sessions map[uuid.UUID]*sessions.Session
}

func (s *stubSessionStore) GetByID(_ context.Context, id uuid.UUID) (*sessions.Session, error) {
	if found, ok := s.sessions[id]; ok {
		return found, nil
	}
	return nil, sessions.ErrSessionNotFound
}

type stubSeatValidator struct {
	err          error
	invalidated  int
	lastSession  uuid.UUID
	lastRequest  []int
	validateDate time.Time
}

func (s *stubSeatValidator) ValidateSeats(_ context.Context, sessionID uuid.UUID, date time.Time, requested []int) error {
	s.lastSession = sessionID
	s.lastRequest = requested
	s.validateDate = date
	return s.err
}

func (s *stubSeatValidator) InvalidateSeatMap(_ context.Context, _ uuid.UUID) {
	s.invalidated++
}

type stubRepo struct {
	createErr error
	created   []Ticket
	byUser    []Ticket
}

func (r *stubRepo) CreateBatchWithSeatCheck(_ context.Context, tickets []Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	for i := range tickets {
		tickets[i].ID = uuid.New()
	}
	r.created = append(r.created, tickets...)
	return nil
}

func (r *stubRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]Ticket, error) {
	return r.byUser, nil
}

func (r *stubRepo) ListForSession(_ context.Context, _ uuid.UUID, _ *time.Time) ([]Ticket, error) {
	return r.created, nil
}

type recordingNotifier struct {
	published [][]Ticket
	err       error
}

func (n *recordingNotifier) PublishTicketPurchase(_ context.Context, _ uuid.UUID, tickets []Ticket) error {
	n.published = append(n.published, tickets)
	return n.err
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// testSession runs daily from Sep 1 through Sep 10, 18:00 to 19:45.
func testSession(id uuid.UUID) *sessions.Session {
	finish := date("2026-09-10")
	return &sessions.Session{
		ID:         id,
		RoomID:     uuid.New(),
		DateStart:  date("2026-09-01"),
		DateFinish: &finish,
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: schedule.MustTimeOfDay("19:45"),
		Price:      10,
	}
}

func newPurchaseService(session *sessions.Session, repo *stubRepo, validator *stubSeatValidator, clk clock.Clock) Service {
	store := &stubSessionStore{sessions: map[uuid.UUID]*sessions.Session{session.ID: session}}
	return NewService(repo, store, validator, clk)
}

func TestPurchaseHappyPath(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	validator := &stubSeatValidator{}
	// Buying at noon for the same evening
	svc := newPurchaseService(session, repo, validator, clock.At(2026, time.September, 3, "12:00"))

	userID := uuid.New()
	resp, err := svc.Purchase(context.Background(), userID, sessionID, date("2026-09-03"), []int{5, 6})

	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, resp.Seats)
	assert.Equal(t, 20.0, resp.TotalPrice)
	assert.Len(t, repo.created, 2)
	assert.Equal(t, 1, validator.invalidated)
	for _, ticket := range repo.created {
		assert.Equal(t, userID, ticket.UserID)
		assert.Equal(t, 10.0, ticket.Price)
	}
}

func TestPurchaseForTomorrow(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	svc := newPurchaseService(session, repo, &stubSeatValidator{}, clock.At(2026, time.September, 3, "23:00"))

	// Late evening purchase for tomorrow's screening is fine even
	// though today's has started.
	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-04"), []int{1})
	assert.NoError(t, err)
}

func TestPurchaseUnknownSession(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubSessionStore{sessions: map[uuid.UUID]*sessions.Session{}},
		&stubSeatValidator{}, clock.At(2026, time.September, 3, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), uuid.New(), date("2026-09-03"), []int{1})
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestPurchaseSeatValidationFailsFirst(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	validator := &stubSeatValidator{err: seats.ErrSeatsUnavailable}
	// The date is also outside the purchase window; the seat check
	// still reports first.
	svc := newPurchaseService(session, repo, validator, clock.At(2026, time.September, 3, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-08"), []int{1})
	assert.ErrorIs(t, err, seats.ErrSeatsUnavailable)
	assert.Empty(t, repo.created)
}

func TestPurchaseDateOutsideSessionRange(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	svc := newPurchaseService(session, &stubRepo{}, &stubSeatValidator{}, clock.At(2026, time.September, 11, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-11"), []int{1})
	require.ErrorIs(t, err, ErrDateOutOfRange)
	assert.Contains(t, err.Error(), "2026-09-01 - 2026-09-10")
}

func TestPurchaseWindowRejectsDayAfterTomorrow(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	svc := newPurchaseService(session, &stubRepo{}, &stubSeatValidator{}, clock.At(2026, time.September, 3, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-05"), []int{1})
	assert.ErrorIs(t, err, ErrPurchaseWindow)
}

func TestPurchaseWindowRejectsYesterday(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	svc := newPurchaseService(session, &stubRepo{}, &stubSeatValidator{}, clock.At(2026, time.September, 3, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-02"), []int{1})
	assert.ErrorIs(t, err, ErrPurchaseWindow)
}

func TestPurchaseCutoffAfterStart(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	// 20:00 is past the 18:00 start: same-day sales are closed
	svc := newPurchaseService(session, &stubRepo{}, &stubSeatValidator{}, clock.At(2026, time.September, 3, "20:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-03"), []int{1})
	assert.ErrorIs(t, err, ErrCutoffPassed)
}

func TestPurchaseBeforeStartSameDayAllowed(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	svc := newPurchaseService(session, repo, &stubSeatValidator{}, clock.At(2026, time.September, 3, "17:59"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-03"), []int{1})
	assert.NoError(t, err)
}

func TestPurchaseConflictPropagates(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{createErr: ErrConflict}
	validator := &stubSeatValidator{}
	svc := newPurchaseService(session, repo, validator, clock.At(2026, time.September, 3, "12:00"))

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-03"), []int{1, 2})
	assert.ErrorIs(t, err, ErrConflict)
	// Nothing committed, nothing invalidated
	assert.Empty(t, repo.created)
	assert.Zero(t, validator.invalidated)
}

func TestPurchaseNotifiesAfterCommit(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	notifier := &recordingNotifier{}
	svc := newPurchaseService(session, repo, &stubSeatValidator{}, clock.At(2026, time.September, 3, "12:00"))
	svc.SetNotifier(notifier)

	_, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-03"), []int{7, 8})
	require.NoError(t, err)
	require.Len(t, notifier.published, 1)
	assert.Len(t, notifier.published[0], 2)
}

func TestPurchaseSucceedsWhenNotifierFails(t *testing.T) {
	sessionID := uuid.New()
	session := testSession(sessionID)
	repo := &stubRepo{}
	notifier := &recordingNotifier{err: assert.AnError}
	svc := newPurchaseService(session, repo, &stubSeatValidator{}, clock.At(2026, time.September, 3, "12:00"))
	svc.SetNotifier(notifier)

	resp, err := svc.Purchase(context.Background(), uuid.New(), sessionID, date("2026-09-03"), []int{7})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.TotalPrice)
}

func TestGetUserTickets(t *testing.T) {
	repo := &stubRepo{byUser: []Ticket{
		{ID: uuid.New(), SessionID: uuid.New(), Date: date("2026-09-03"), SeatNumber: 4, Price: 10},
	}}
	svc := NewService(repo, &stubSessionStore{}, &stubSeatValidator{}, clock.System{})

	tickets, err := svc.GetUserTickets(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 4, tickets[0].SeatNumber)
	assert.Equal(t, "2026-09-03", tickets[0].Date)
}
