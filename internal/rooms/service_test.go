package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehall/internal/shared/clock"
)

type stubRepo struct {
	rooms      map[uuid.UUID]*Room
	inUse      map[uuid.UUID]bool
	inUseQuery time.Time
	createErr  error
	deleted    []uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		rooms: make(map[uuid.UUID]*Room),
		inUse: make(map[uuid.UUID]bool),
	}
}

func (r *stubRepo) Create(_ context.Context, room *Room) error {
	if r.createErr != nil {
		return r.createErr
	}
	room.ID = uuid.New()
	stored := *room
	r.rooms[room.ID] = &stored
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*Room, error) {
	if room, ok := r.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, ErrRoomNotFound
}

func (r *stubRepo) List(_ context.Context) ([]Room, error) {
	var result []Room
	for _, room := range r.rooms {
		result = append(result, *room)
	}
	return result, nil
}

func (r *stubRepo) Update(_ context.Context, room *Room) error {
	stored := *room
	r.rooms[room.ID] = &stored
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rooms, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepo) HasTicketsFrom(_ context.Context, roomID uuid.UUID, date time.Time) (bool, error) {
	r.inUseQuery = date
	return r.inUse[roomID], nil
}

func TestCreateRoom(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, clock.System{})

	resp, err := svc.CreateRoom(context.Background(), CreateRoomRequest{Title: "Red Hall", SeatsCount: 60})
	require.NoError(t, err)
	assert.Equal(t, "Red Hall", resp.Title)
	assert.Equal(t, 60, resp.SeatsCount)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateRoomDuplicateTitle(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = ErrRoomTitleTaken
	svc := NewService(repo, clock.System{})

	_, err := svc.CreateRoom(context.Background(), CreateRoomRequest{Title: "Red Hall", SeatsCount: 60})
	assert.ErrorIs(t, err, ErrRoomTitleTaken)
}

func TestUpdateRoomBlockedWhileInUse(t *testing.T) {
	repo := newStubRepo()
	roomID := uuid.New()
	repo.rooms[roomID] = &Room{ID: roomID, Title: "Red Hall", SeatsCount: 60}
	repo.inUse[roomID] = true

	svc := NewService(repo, clock.At(2026, time.September, 3, "12:00"))

	smaller := 40
	_, err := svc.UpdateRoom(context.Background(), roomID, UpdateRoomRequest{SeatsCount: &smaller})
	assert.ErrorIs(t, err, ErrRoomInUse)
	assert.Equal(t, 60, repo.rooms[roomID].SeatsCount)

	// Only tickets from today onward freeze the room
	assert.Equal(t, time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC), repo.inUseQuery)
}

func TestUpdateRoomAppliesPartialChanges(t *testing.T) {
	repo := newStubRepo()
	roomID := uuid.New()
	repo.rooms[roomID] = &Room{ID: roomID, Title: "Red Hall", SeatsCount: 60}

	svc := NewService(repo, clock.System{})

	title := "Crimson Hall"
	resp, err := svc.UpdateRoom(context.Background(), roomID, UpdateRoomRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Crimson Hall", resp.Title)
	assert.Equal(t, 60, resp.SeatsCount)
}

func TestDeleteRoomBlockedWhileInUse(t *testing.T) {
	repo := newStubRepo()
	roomID := uuid.New()
	repo.rooms[roomID] = &Room{ID: roomID, Title: "Red Hall", SeatsCount: 60}
	repo.inUse[roomID] = true

	svc := NewService(repo, clock.System{})

	err := svc.DeleteRoom(context.Background(), roomID)
	assert.ErrorIs(t, err, ErrRoomInUse)
	assert.Empty(t, repo.deleted)
}

func TestDeleteRoom(t *testing.T) {
	repo := newStubRepo()
	roomID := uuid.New()
	repo.rooms[roomID] = &Room{ID: roomID, Title: "Red Hall", SeatsCount: 60}

	svc := NewService(repo, clock.System{})

	require.NoError(t, svc.DeleteRoom(context.Background(), roomID))
	assert.Equal(t, []uuid.UUID{roomID}, repo.deleted)
}

func TestDeleteRoomNotFound(t *testing.T) {
	svc := NewService(newStubRepo(), clock.System{})

	err := svc.DeleteRoom(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
