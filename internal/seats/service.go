package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cinehall/internal/schedule"
	"cinehall/internal/shared/constants"
	"cinehall/pkg/cache"
)

var (
	// ErrSeatOutOfRange: a requested seat number is not within
	// [1, room.seats_count].
	ErrSeatOutOfRange = errors.New("seat number out of range")
	// ErrSeatsUnavailable: a requested seat is already ticketed for the
	// session and date.
	ErrSeatsUnavailable = errors.New("seats unavailable")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	// FreeSeats always reads the committed ticket set, never a cache.
	FreeSeats(ctx context.Context, sessionID uuid.UUID, date time.Time) ([]int, error)
	ValidateSeats(ctx context.Context, sessionID uuid.UUID, date time.Time, requested []int) error
	GetSeatMap(ctx context.Context, sessionID uuid.UUID, date time.Time) (*SeatMap, error)
	InvalidateSeatMap(ctx context.Context, sessionID uuid.UUID)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	seatMapTTL   time.Duration
}

func NewService(repo Repository, seatMapTTL time.Duration) Service {
	return &service{repo: repo, seatMapTTL: seatMapTTL}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// FreeSeats computes {1..seats_count} minus the booked set for the day.
func (s *service) FreeSeats(ctx context.Context, sessionID uuid.UUID, date time.Time) ([]int, error) {
	seatsCount, err := s.repo.SessionCapacity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.SeatsTaken(ctx, sessionID, date)
	if err != nil {
		return nil, err
	}

	takenSet := make(map[int]bool, len(taken))
	for _, seat := range taken {
		takenSet[seat] = true
	}

	free := make([]int, 0, seatsCount-len(taken))
	for seat := 1; seat <= seatsCount; seat++ {
		if !takenSet[seat] {
			free = append(free, seat)
		}
	}
	return free, nil
}

// ValidateSeats checks the requested set against capacity first, then
// against the committed bookings. The two failures are distinct so
// callers can tell a bad request from a lost race.
func (s *service) ValidateSeats(ctx context.Context, sessionID uuid.UUID, date time.Time, requested []int) error {
	seatsCount, err := s.repo.SessionCapacity(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, seat := range requested {
		if seat < 1 || seat > seatsCount {
			return fmt.Errorf("%w: seat %d is not within 1..%d", ErrSeatOutOfRange, seat, seatsCount)
		}
	}

	taken, err := s.repo.SeatsTaken(ctx, sessionID, date)
	if err != nil {
		return err
	}

	takenSet := make(map[int]bool, len(taken))
	for _, seat := range taken {
		takenSet[seat] = true
	}

	var unavailable []int
	for _, seat := range requested {
		if takenSet[seat] {
			unavailable = append(unavailable, seat)
		}
	}
	if len(unavailable) > 0 {
		return fmt.Errorf("%w: %v already booked for this date", ErrSeatsUnavailable, unavailable)
	}
	return nil
}

// GetSeatMap serves the browse view of seat availability. A short cache
// keeps hot sessions cheap; purchases invalidate it, and the booking
// path never reads it.
func (s *service) GetSeatMap(ctx context.Context, sessionID uuid.UUID, date time.Time) (*SeatMap, error) {
	cacheKey := constants.SeatMapKey(sessionID.String(), schedule.DateOnly(date))
	if s.cacheService != nil {
		var cached SeatMap
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	seatsCount, err := s.repo.SessionCapacity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.SeatsTaken(ctx, sessionID, date)
	if err != nil {
		return nil, err
	}

	takenSet := make(map[int]bool, len(taken))
	for _, seat := range taken {
		takenSet[seat] = true
	}
	free := make([]int, 0, seatsCount-len(taken))
	for seat := 1; seat <= seatsCount; seat++ {
		if !takenSet[seat] {
			free = append(free, seat)
		}
	}

	seatMap := &SeatMap{
		SessionID:  sessionID.String(),
		Date:       schedule.DateOnly(date).Format("2006-01-02"),
		SeatsCount: seatsCount,
		Free:       free,
		Taken:      taken,
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, seatMap, s.seatMapTTL)
	}
	return seatMap, nil
}

func (s *service) InvalidateSeatMap(ctx context.Context, sessionID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.SeatMapInvalidationPattern(sessionID.String()))
}
