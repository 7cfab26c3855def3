package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lodging-service/internal/domain"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

type mockRoomRepository struct {
	mock.Mock
}

func (m *mockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*domain.Room)
	return room, args.Error(1)
}

func (m *mockRoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*domain.Room)
	return room, args.Error(1)
}

func (m *mockRoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	args := m.Called(ctx, hotelID)
	rooms, _ := args.Get(0).([]domain.Room)
	return rooms, args.Error(1)
}

func TestCheckRoomCapacity(t *testing.T) {
	cases := []struct {
		name     string
		room     *domain.Room
		repoErr  error
		wantKind apperrors.Kind
		wantErr  bool
	}{
		{name: "vacancy", room: &domain.Room{ID: 1, Capacity: 2, Occupancy: 1}},
		{name: "full", room: &domain.Room{ID: 1, Capacity: 2, Occupancy: 2}, wantErr: true, wantKind: apperrors.KindForbidden},
		{name: "overfull", room: &domain.Room{ID: 1, Capacity: 1, Occupancy: 3}, wantErr: true, wantKind: apperrors.KindForbidden},
		{name: "missing", repoErr: pgx.ErrNoRows, wantErr: true, wantKind: apperrors.KindNotFound},
		{name: "storage", repoErr: errors.New("timeout"), wantErr: true, wantKind: apperrors.KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rooms := &mockRoomRepository{}
			rooms.On("GetForUpdate", mock.Anything, int64(1)).Return(tc.room, tc.repoErr).Once()

			room, err := NewCapacityAllocator(rooms).CheckRoomCapacity(context.Background(), 1)
			rooms.AssertExpectations(t)

			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tc.room, room)
				return
			}
			require.Error(t, err)
			assert.Nil(t, room)
			assert.Equal(t, tc.wantKind, apperrors.KindOf(err))
		})
	}
}
