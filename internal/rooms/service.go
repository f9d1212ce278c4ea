package rooms

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cinehall/internal/schedule"
	"cinehall/internal/shared/clock"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomTitleTaken = errors.New("a room with this title already exists")
	ErrRoomInUse      = errors.New("room has sessions with outstanding tickets and cannot be changed")
)

type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*RoomResponse, error)
	ListRooms(ctx context.Context) ([]RoomResponse, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{repo: repo, clock: clk}
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error) {
	room := &Room{
		Title:      req.Title,
		SeatsCount: req.SeatsCount,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	resp := room.ToResponse()
	return &resp, nil
}

func (s *service) GetRoomByID(ctx context.Context, id uuid.UUID) (*RoomResponse, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := room.ToResponse()
	return &resp, nil
}

func (s *service) ListRooms(ctx context.Context) ([]RoomResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]RoomResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}
	return responses, nil
}

func (s *service) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNotInUse(ctx, id); err != nil {
		return nil, err
	}

	if req.Title != nil {
		room.Title = *req.Title
	}
	if req.SeatsCount != nil {
		room.SeatsCount = *req.SeatsCount
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	resp := room.ToResponse()
	return &resp, nil
}

func (s *service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.ensureNotInUse(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ensureNotInUse blocks mutation while the room has outstanding future
// tickets. Past tickets do not freeze the room.
func (s *service) ensureNotInUse(ctx context.Context, id uuid.UUID) error {
	today := schedule.DateOnly(s.clock.Now())
	inUse, err := s.repo.HasTicketsFrom(ctx, id, today)
	if err != nil {
		return err
	}
	if inUse {
		return ErrRoomInUse
	}
	return nil
}
