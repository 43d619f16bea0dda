package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/pkg/metrics"
)

type wardDeps struct {
	rooms     *fakeRoomRepo
	beds      *fakeBedRepo
	equipment *fakeEquipmentRepo
}

func newWardDeps() *wardDeps {
	return &wardDeps{
		rooms: &fakeRoomRepo{
			ExistsFn: func(ctx context.Context, id ward.RoomID) (bool, error) { return false, nil },
			CreateFn: func(ctx context.Context, r *ward.Room) error { return nil },
			UpdateFn: func(ctx context.Context, r *ward.Room) error { return nil },
			DeleteFn: func(ctx context.Context, id ward.RoomID) error { return nil },
			GetFn: func(ctx context.Context, id ward.RoomID) (*ward.Room, error) {
				return &ward.Room{HospitalID: id.HospitalID, Name: id.Name, Department: "ER"}, nil
			},
		},
		beds: &fakeBedRepo{
			CreateBatchFn: func(ctx context.Context, room ward.RoomID, n int) error { return nil },
			CountsFn: func(ctx context.Context, room ward.RoomID) (ward.BedCounts, error) {
				return ward.BedCounts{}, nil
			},
		},
		equipment: &fakeEquipmentRepo{
			ReplaceForRoomFn: func(ctx context.Context, room ward.RoomID, items []ward.EquipmentForm) error { return nil },
			DeleteForRoomFn:  func(ctx context.Context, room ward.RoomID) error { return nil },
			ListByRoomFn: func(ctx context.Context, room ward.RoomID) ([]ward.Equipment, error) {
				return nil, nil
			},
		},
	}
}

func (d *wardDeps) service() *WardService {
	return NewWardService(d.rooms, d.beds, d.equipment, fakeTx{}, zap.NewNop(), metrics.New("test"))
}

func TestCreateRoom(t *testing.T) {
	t.Run("creates room with initial beds", func(t *testing.T) {
		deps := newWardDeps()
		var batch int
		deps.beds.CreateBatchFn = func(ctx context.Context, room ward.RoomID, n int) error {
			batch = n
			return nil
		}

		err := deps.service().CreateRoom(context.Background(), 1, ward.CreateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, batch)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		deps := newWardDeps()
		deps.rooms.ExistsFn = func(ctx context.Context, id ward.RoomID) (bool, error) { return true, nil }

		err := deps.service().CreateRoom(context.Background(), 1, ward.CreateRoomCommand{
			Name: "ER-1", Department: "Emergency",
		})
		assert.ErrorIs(t, err, ward.ErrRoomAlreadyExists)
	})

	t.Run("rejects negative bed count", func(t *testing.T) {
		deps := newWardDeps()

		err := deps.service().CreateRoom(context.Background(), 1, ward.CreateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: -1,
		})
		assert.ErrorIs(t, err, ward.ErrNegativeBedCount)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		deps := newWardDeps()

		err := deps.service().CreateRoom(context.Background(), 1, ward.CreateRoomCommand{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "roomName")
		assert.Contains(t, verr.Fields, "department")
	})
}

func TestUpdateRoomResize(t *testing.T) {
	t.Run("grows the pool by the difference", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomFn = func(ctx context.Context, room ward.RoomID) (int, error) { return 2, nil }
		var grown int
		deps.beds.CreateBatchFn = func(ctx context.Context, room ward.RoomID, n int) error {
			grown = n
			return nil
		}

		err := deps.service().UpdateRoom(context.Background(), 1, ward.UpdateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, grown)
	})

	t.Run("shrinks by removing only vacant beds", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomFn = func(ctx context.Context, room ward.RoomID) (int, error) { return 5, nil }
		var asked int
		deps.beds.DeleteVacantFn = func(ctx context.Context, room ward.RoomID, n int) (int, error) {
			asked = n
			return n, nil
		}

		err := deps.service().UpdateRoom(context.Background(), 1, ward.UpdateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, asked)
	})

	t.Run("fails when occupied beds block the shrink", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomFn = func(ctx context.Context, room ward.RoomID) (int, error) { return 5, nil }
		// Only one bed is vacant; shrinking by three must roll back.
		deps.beds.DeleteVacantFn = func(ctx context.Context, room ward.RoomID, n int) (int, error) {
			return 1, nil
		}

		err := deps.service().UpdateRoom(context.Background(), 1, ward.UpdateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: 2,
		})
		assert.ErrorIs(t, err, ward.ErrInsufficientVacantBeds)
	})

	t.Run("leaves the pool alone at equal size", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomFn = func(ctx context.Context, room ward.RoomID) (int, error) { return 4, nil }
		deps.beds.CreateBatchFn = func(ctx context.Context, room ward.RoomID, n int) error {
			t.Fatal("should not grow")
			return nil
		}
		deps.beds.DeleteVacantFn = func(ctx context.Context, room ward.RoomID, n int) (int, error) {
			t.Fatal("should not shrink")
			return 0, nil
		}

		err := deps.service().UpdateRoom(context.Background(), 1, ward.UpdateRoomCommand{
			Name: "ER-1", Department: "Emergency", Beds: 4,
		})
		require.NoError(t, err)
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("removes room, beds and equipment", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomAndStatusFn = func(ctx context.Context, room ward.RoomID, status ward.BedStatus) (int, error) {
			return 0, nil
		}
		var bedsGone, equipGone, roomGone bool
		deps.beds.DeleteAllInRoomFn = func(ctx context.Context, room ward.RoomID) error {
			bedsGone = true
			return nil
		}
		deps.equipment.DeleteForRoomFn = func(ctx context.Context, room ward.RoomID) error {
			equipGone = true
			return nil
		}
		deps.rooms.DeleteFn = func(ctx context.Context, id ward.RoomID) error {
			roomGone = true
			return nil
		}

		err := deps.service().DeleteRoom(context.Background(), 1, "ER-1")
		require.NoError(t, err)
		assert.True(t, bedsGone)
		assert.True(t, equipGone)
		assert.True(t, roomGone)
	})

	t.Run("refuses while beds are occupied", func(t *testing.T) {
		deps := newWardDeps()
		deps.beds.CountByRoomAndStatusFn = func(ctx context.Context, room ward.RoomID, status ward.BedStatus) (int, error) {
			return 2, nil
		}
		deps.rooms.DeleteFn = func(ctx context.Context, id ward.RoomID) error {
			t.Fatal("room must not be deleted")
			return nil
		}

		err := deps.service().DeleteRoom(context.Background(), 1, "ER-1")
		assert.ErrorIs(t, err, ward.ErrRoomHasOccupiedBeds)
	})
}
