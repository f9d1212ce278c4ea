package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehall/internal/movies"
	"cinehall/internal/schedule"
)

type stubMovieStore struct {
	movies map[uuid.UUID]*movies.Movie
}

func (s *stubMovieStore) GetByID(_ context.Context, id uuid.UUID) (*movies.Movie, error) {
	if m, ok := s.movies[id]; ok {
		return m, nil
	}
	return nil, movies.ErrMovieNotFound
}

// stubRepo mimics the room-locked schedule path in memory. It reuses
// the same conflictWith check the real transaction runs.
type stubRepo struct {
	sessions    map[uuid.UUID]*Session
	overlapping []Session
	ticketCount map[uuid.UUID]int64
	scheduled   *Session
	deleted     []uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		sessions:    make(map[uuid.UUID]*Session),
		ticketCount: make(map[uuid.UUID]int64),
	}
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

func (r *stubRepo) ListActiveOn(_ context.Context, date time.Time, _ ListFilter) ([]Session, error) {
	date = schedule.DateOnly(date)
	var result []Session
	for _, s := range r.sessions {
		if s.ActiveDates().ContainsDate(date) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *stubRepo) FindOverlapping(_ context.Context, _ uuid.UUID, _ schedule.DateRange, _ *uuid.UUID) ([]Session, error) {
	return r.overlapping, nil
}

func (r *stubRepo) CountTickets(_ context.Context, sessionID uuid.UUID) (int64, error) {
	return r.ticketCount[sessionID], nil
}

func (r *stubRepo) ScheduleWithRoomLock(_ context.Context, session *Session) error {
	var candidates []Session
	for i := range r.overlapping {
		if session.ID == uuid.Nil || r.overlapping[i].ID != session.ID {
			candidates = append(candidates, r.overlapping[i])
		}
	}
	if err := conflictWith(candidates, session); err != nil {
		return err
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	stored := *session
	r.sessions[session.ID] = &stored
	r.scheduled = session
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testMovie(minutes int) *movies.Movie {
	return &movies.Movie{
		ID:              uuid.New(),
		Title:           "Solaris",
		DurationMinutes: minutes,
	}
}

func TestCreateSessionDerivesFinishTime(t *testing.T) {
	movie := testMovie(90)
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	resp, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:    uuid.New(),
		MovieID:   movie.ID,
		DateStart: date("2026-09-01"),
		TimeStart: schedule.MustTimeOfDay("18:00"),
		Price:     10,
	})

	require.NoError(t, err)
	// 90 min feature plus the 15 min break
	assert.Equal(t, "19:45", resp.TimeFinish)
	assert.Equal(t, "18:00", resp.TimeStart)
}

func TestCreateSessionRejectsInvertedWindow(t *testing.T) {
	movie := testMovie(90)
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	finish := schedule.MustTimeOfDay("17:00")
	_, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:     uuid.New(),
		MovieID:    movie.ID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: &finish,
	})

	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestCreateSessionRejectsTooShortWindow(t *testing.T) {
	movie := testMovie(90)
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	finish := schedule.MustTimeOfDay("19:00")
	_, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:     uuid.New(),
		MovieID:    movie.ID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: &finish,
	})

	require.ErrorIs(t, err, ErrSessionTooShort)
	assert.Contains(t, err.Error(), "for Solaris movie")
	assert.Contains(t, err.Error(), "1h. 30m.")
}

func TestCreateSessionRejectsUnknownMovie(t *testing.T) {
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{}}
	svc := NewService(repo, store, 15, time.Minute)

	_, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:    uuid.New(),
		MovieID:   uuid.New(),
		DateStart: date("2026-09-01"),
		TimeStart: schedule.MustTimeOfDay("18:00"),
	})

	assert.ErrorIs(t, err, movies.ErrMovieNotFound)
}

func TestCreateSessionReportsOverlapByStartTime(t *testing.T) {
	movie := testMovie(90)
	roomID := uuid.New()
	repo := newStubRepo()

	other := testMovie(120)
	finish := date("2026-09-07")
	repo.overlapping = []Session{{
		ID:         uuid.New(),
		RoomID:     roomID,
		DateStart:  date("2026-09-01"),
		DateFinish: &finish,
		TimeStart:  schedule.MustTimeOfDay("17:00"),
		TimeFinish: schedule.MustTimeOfDay("19:30"),
		Movie:      other,
	}}

	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	// 19:00 start lands inside the existing 17:00..19:30 window
	_, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-03"),
		TimeStart: schedule.MustTimeOfDay("19:00"),
	})

	require.ErrorIs(t, err, ErrSessionOverlap)
	assert.Contains(t, err.Error(), "start time isn't free [ 2026-09-01 2026-09-07 ]")
	assert.Contains(t, err.Error(), other.Title)
}

func TestCreateSessionReportsOverlapByFinishTime(t *testing.T) {
	movie := testMovie(90)
	roomID := uuid.New()
	repo := newStubRepo()

	other := testMovie(120)
	repo.overlapping = []Session{{
		ID:         uuid.New(),
		RoomID:     roomID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("19:00"),
		TimeFinish: schedule.MustTimeOfDay("21:30"),
		Movie:      other,
	}}

	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	// Finish derives to 19:45, inside the existing window; the start at
	// 18:00 is outside it.
	_, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-01"),
		TimeStart: schedule.MustTimeOfDay("18:00"),
	})

	require.ErrorIs(t, err, ErrSessionOverlap)
	assert.Contains(t, err.Error(), "finish time isn't free")
}

func TestCreateSessionAllowsEnclosingExistingWindow(t *testing.T) {
	// Candidate strictly encloses the existing session: neither of the
	// candidate's endpoints lies inside the existing window, so the
	// point-inclusion test accepts it.
	movie := testMovie(240)
	roomID := uuid.New()
	repo := newStubRepo()

	repo.overlapping = []Session{{
		ID:         uuid.New(),
		RoomID:     roomID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("15:00"),
		TimeFinish: schedule.MustTimeOfDay("16:00"),
		Movie:      testMovie(45),
	}}

	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	resp, err := svc.CreateSession(context.Background(), ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-01"),
		TimeStart: schedule.MustTimeOfDay("14:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "18:15", resp.TimeFinish)
}

func TestUpdateSessionLockedAfterFirstTicket(t *testing.T) {
	movie := testMovie(90)
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	sessionID := uuid.New()
	repo.sessions[sessionID] = &Session{
		ID:         sessionID,
		RoomID:     uuid.New(),
		MovieID:    &movie.ID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: schedule.MustTimeOfDay("19:45"),
	}
	repo.ticketCount[sessionID] = 1

	_, err := svc.UpdateSession(context.Background(), sessionID, ScheduleRequest{
		RoomID:    repo.sessions[sessionID].RoomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-02"),
		TimeStart: schedule.MustTimeOfDay("20:00"),
	})

	assert.ErrorIs(t, err, ErrSessionLocked)
}

func TestUpdateSessionExcludesItselfFromOverlapCheck(t *testing.T) {
	movie := testMovie(90)
	roomID := uuid.New()
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	sessionID := uuid.New()
	current := &Session{
		ID:         sessionID,
		RoomID:     roomID,
		MovieID:    &movie.ID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: schedule.MustTimeOfDay("19:45"),
		Movie:      movie,
	}
	repo.sessions[sessionID] = current
	repo.overlapping = []Session{*current}

	// Shifting the same session by 30 minutes still intersects its own
	// old window; that must not count as a conflict.
	resp, err := svc.UpdateSession(context.Background(), sessionID, ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-01"),
		TimeStart: schedule.MustTimeOfDay("18:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, "18:30", resp.TimeStart)
	assert.Equal(t, "20:15", resp.TimeFinish)
}

func TestDeleteSessionRefusedWhenTicketed(t *testing.T) {
	movie := testMovie(90)
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	sessionID := uuid.New()
	repo.sessions[sessionID] = &Session{ID: sessionID}
	repo.ticketCount[sessionID] = 3

	err := svc.DeleteSession(context.Background(), sessionID)
	assert.ErrorIs(t, err, ErrSessionLocked)
	assert.Empty(t, repo.deleted)
}

func TestDeleteSessionUnknownID(t *testing.T) {
	repo := newStubRepo()
	store := &stubMovieStore{}
	svc := NewService(repo, store, 15, time.Minute)

	err := svc.DeleteSession(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestUpdateSessionKeepsCreationTimestamp(t *testing.T) {
	movie := testMovie(90)
	roomID := uuid.New()
	repo := newStubRepo()
	store := &stubMovieStore{movies: map[uuid.UUID]*movies.Movie{movie.ID: movie}}
	svc := NewService(repo, store, 15, time.Minute)

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sessionID := uuid.New()
	repo.sessions[sessionID] = &Session{
		ID:         sessionID,
		RoomID:     roomID,
		MovieID:    &movie.ID,
		DateStart:  date("2026-09-01"),
		TimeStart:  schedule.MustTimeOfDay("18:00"),
		TimeFinish: schedule.MustTimeOfDay("19:45"),
		CreatedAt:  created,
	}

	_, err := svc.UpdateSession(context.Background(), sessionID, ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movie.ID,
		DateStart: date("2026-09-02"),
		TimeStart: schedule.MustTimeOfDay("20:00"),
	})

	require.NoError(t, err)
	// Save rewrites every column, so the original stamp must ride along.
	assert.Equal(t, created, repo.scheduled.CreatedAt)
}
