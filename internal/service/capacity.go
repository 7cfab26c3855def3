package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/repository"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

// CapacityAllocator guards the occupancy of rooms.
type CapacityAllocator struct {
	rooms repository.RoomRepository
}

// NewCapacityAllocator constructs the allocator.
func NewCapacityAllocator(rooms repository.RoomRepository) *CapacityAllocator {
	return &CapacityAllocator{rooms: rooms}
}

// CheckRoomCapacity locks the room and verifies one more booking fits.
// It must run inside the transaction that writes the booking, so that
// occupancy cannot change between the check and the write.
func (a *CapacityAllocator) CheckRoomCapacity(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := a.rooms.GetForUpdate(ctx, roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"room_id": roomID})
		}
		return nil, fmt.Errorf("lock room: %w", err)
	}
	if !room.HasVacancy() {
		return nil, apperrors.NewForbidden("room is full")
	}
	return room, nil
}
