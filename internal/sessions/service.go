package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cinehall/internal/movies"
	"cinehall/internal/schedule"
	"cinehall/internal/shared/constants"
	"cinehall/pkg/cache"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLocked: a session with at least one sold ticket is
	// frozen, its room, dates and times may no longer change.
	ErrSessionLocked     = errors.New("session has sold tickets and can no longer be changed")
	ErrInvalidTimeWindow = errors.New("wrong end time")
	ErrSessionTooShort   = errors.New("session too short")
	ErrSessionOverlap    = errors.New("session overlaps")
)

// MovieStore is the slice of the movie repository the scheduler needs.
type MovieStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*movies.Movie, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateSession(ctx context.Context, req ScheduleRequest) (*SessionResponse, error)
	UpdateSession(ctx context.Context, id uuid.UUID, req ScheduleRequest) (*SessionResponse, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	ListSessionsOn(ctx context.Context, date time.Time, filter ListFilter) ([]SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	movieStore   MovieStore
	breakMinutes int
	cacheService cache.Service
	listingTTL   time.Duration
}

func NewService(repo Repository, movieStore MovieStore, breakMinutes int, listingTTL time.Duration) Service {
	return &service{
		repo:         repo,
		movieStore:   movieStore,
		breakMinutes: breakMinutes,
		listingTTL:   listingTTL,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateSession(ctx context.Context, req ScheduleRequest) (*SessionResponse, error) {
	return s.schedule(ctx, nil, req)
}

func (s *service) UpdateSession(ctx context.Context, id uuid.UUID, req ScheduleRequest) (*SessionResponse, error) {
	return s.schedule(ctx, &id, req)
}

// schedule is the single validation-and-persist path shared by session
// creation and update.
func (s *service) schedule(ctx context.Context, existingID *uuid.UUID, req ScheduleRequest) (*SessionResponse, error) {
	session := &Session{
		RoomID:    req.RoomID,
		MovieID:   &req.MovieID,
		DateStart: schedule.DateOnly(req.DateStart),
		TimeStart: req.TimeStart,
		Price:     req.Price,
	}
	if req.DateFinish != nil {
		finish := schedule.DateOnly(*req.DateFinish)
		session.DateFinish = &finish
	}

	// An already-ticketed session is immutable.
	if existingID != nil {
		current, err := s.repo.GetByID(ctx, *existingID)
		if err != nil {
			return nil, err
		}
		sold, err := s.repo.CountTickets(ctx, *existingID)
		if err != nil {
			return nil, err
		}
		if sold > 0 {
			return nil, ErrSessionLocked
		}
		session.ID = *existingID
		// Save writes all columns; carry the original creation stamp.
		session.CreatedAt = current.CreatedAt
	}

	movie, err := s.movieStore.GetByID(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}

	// Derive the finish time when the caller left it open.
	if req.TimeFinish != nil {
		session.TimeFinish = *req.TimeFinish
	} else {
		session.TimeFinish = schedule.DeriveFinish(req.TimeStart, movie.DurationMinutes, s.breakMinutes)
	}

	if session.TimeFinish <= session.TimeStart {
		return nil, ErrInvalidTimeWindow
	}

	if session.Window().Minutes() < movie.DurationMinutes {
		return nil, fmt.Errorf("%w for %s movie, should be more than %s",
			ErrSessionTooShort, movie.Title, movie.DurationFormat())
	}

	// Overlap check and write run inside one room-locked transaction.
	if err := s.repo.ScheduleWithRoomLock(ctx, session); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	stored, err := s.repo.GetByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	resp := stored.ToResponse()
	return &resp, nil
}

// conflictWith applies the point-inclusion overlap test of the
// candidate's endpoints against every existing window and reports the
// first hit, naming the conflicting session's dates and movie.
func conflictWith(existing []Session, candidate *Session) error {
	for i := range existing {
		window := existing[i].Window()
		if window.Contains(candidate.TimeStart) {
			return fmt.Errorf("%w: start time isn't free [ %s ] / %s",
				ErrSessionOverlap, formatDates(&existing[i]), existing[i].MovieTitle())
		}
		if window.Contains(candidate.TimeFinish) {
			return fmt.Errorf("%w: finish time isn't free [ %s ] / %s",
				ErrSessionOverlap, formatDates(&existing[i]), existing[i].MovieTitle())
		}
	}
	return nil
}

func formatDates(session *Session) string {
	parts := []string{session.DateStart.Format(dateLayout)}
	if session.DateFinish != nil {
		parts = append(parts, session.DateFinish.Format(dateLayout))
	}
	return strings.Join(parts, " ")
}

func (s *service) GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := session.ToResponse()
	return &resp, nil
}

// ListSessionsOn serves the public today/tomorrow listings, cached when
// a cache service is wired and the query carries no filters.
func (s *service) ListSessionsOn(ctx context.Context, date time.Time, filter ListFilter) ([]SessionResponse, error) {
	cacheable := s.cacheService != nil && filter.MinTime == nil && filter.MaxTime == nil && filter.RoomID == nil
	cacheKey := constants.SessionListingKey(schedule.DateOnly(date))

	if cacheable {
		var cached []SessionResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.ListActiveOn(ctx, date, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SessionResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}

	if cacheable {
		_ = s.cacheService.Set(ctx, cacheKey, responses, s.listingTTL)
	}
	return responses, nil
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	sold, err := s.repo.CountTickets(ctx, id)
	if err != nil {
		return err
	}
	if sold > 0 {
		return ErrSessionLocked
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *service) invalidateListings(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PatternInvalidateSessionListings)
}
