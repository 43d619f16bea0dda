package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/internal/repository"
	"github.com/syncura360/api/pkg/metrics"
)

// WardService manages rooms, their bed pools, and installed equipment.
// Bed pools only ever grow or shrink through resizes here; occupancy moves
// through the visit flow.
type WardService struct {
	rooms     ward.RoomRepository
	beds      ward.BedRepository
	equipment ward.EquipmentRepository
	tx        repository.TxManager
	log       *zap.Logger
	metrics   *metrics.Metrics
}

func NewWardService(
	rooms ward.RoomRepository,
	beds ward.BedRepository,
	equipment ward.EquipmentRepository,
	tx repository.TxManager,
	log *zap.Logger,
	m *metrics.Metrics,
) *WardService {
	return &WardService{
		rooms:     rooms,
		beds:      beds,
		equipment: equipment,
		tx:        tx,
		log:       log,
		metrics:   m,
	}
}

func (s *WardService) CreateRoom(ctx context.Context, hospitalID uint, cmd ward.CreateRoomCommand) error {
	var v validator
	v.require("roomName", cmd.Name)
	v.require("department", cmd.Department)
	if err := v.err(); err != nil {
		return err
	}
	if cmd.Beds < 0 {
		return ward.ErrNegativeBedCount
	}

	id := ward.RoomID{HospitalID: hospitalID, Name: cmd.Name}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		exists, err := s.rooms.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return ward.ErrRoomAlreadyExists
		}

		room := &ward.Room{
			HospitalID: hospitalID,
			Name:       cmd.Name,
			Department: cmd.Department,
		}
		if err := s.rooms.Create(ctx, room); err != nil {
			return err
		}

		if err := s.beds.CreateBatch(ctx, id, cmd.Beds); err != nil {
			return err
		}

		return s.equipment.ReplaceForRoom(ctx, id, cmd.Equipment)
	})
	if err != nil {
		return err
	}

	s.log.Info("room created",
		zap.Uint("hospital_id", hospitalID),
		zap.String("room", cmd.Name),
		zap.Int("beds", cmd.Beds),
	)
	s.refreshOccupancy(ctx, id)
	return nil
}

func (s *WardService) GetRoom(ctx context.Context, hospitalID uint, name string) (*ward.RoomDetails, error) {
	id := ward.RoomID{HospitalID: hospitalID, Name: name}

	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, room)
}

func (s *WardService) ListRooms(ctx context.Context, hospitalID uint) ([]ward.RoomDetails, error) {
	rooms, err := s.rooms.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	result := make([]ward.RoomDetails, 0, len(rooms))
	for _, room := range rooms {
		d, err := s.details(ctx, room)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, nil
}

func (s *WardService) details(ctx context.Context, room *ward.Room) (*ward.RoomDetails, error) {
	id := room.RoomID()

	counts, err := s.beds.Counts(ctx, id)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipment.ListByRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ward.RoomDetails{
		Name:       room.Name,
		Department: room.Department,
		Beds:       counts,
		Equipment:  equipment,
	}, nil
}

// UpdateRoom changes the department, resizes the bed pool to cmd.Beds, and
// replaces the equipment set. Shrinking only ever removes vacant beds; when
// fewer vacant beds exist than the shrink requires, the whole update rolls
// back with ErrInsufficientVacantBeds.
func (s *WardService) UpdateRoom(ctx context.Context, hospitalID uint, cmd ward.UpdateRoomCommand) error {
	var v validator
	v.require("roomName", cmd.Name)
	v.require("department", cmd.Department)
	if err := v.err(); err != nil {
		return err
	}
	if cmd.Beds < 0 {
		return ward.ErrNegativeBedCount
	}

	id := ward.RoomID{HospitalID: hospitalID, Name: cmd.Name}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		room, err := s.rooms.Get(ctx, id)
		if err != nil {
			return err
		}

		room.Department = cmd.Department
		if err := s.rooms.Update(ctx, room); err != nil {
			return err
		}

		if err := s.resize(ctx, id, cmd.Beds); err != nil {
			return err
		}

		return s.equipment.ReplaceForRoom(ctx, id, cmd.Equipment)
	})
	if err != nil {
		return err
	}

	s.log.Info("room updated",
		zap.Uint("hospital_id", hospitalID),
		zap.String("room", cmd.Name),
		zap.Int("beds", cmd.Beds),
	)
	s.refreshOccupancy(ctx, id)
	return nil
}

func (s *WardService) resize(ctx context.Context, id ward.RoomID, target int) error {
	current, err := s.beds.CountByRoom(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case target > current:
		return s.beds.CreateBatch(ctx, id, target-current)
	case target < current:
		want := current - target
		removed, err := s.beds.DeleteVacant(ctx, id, want)
		if err != nil {
			return err
		}
		if removed < want {
			return fmt.Errorf("shrinking %s by %d, only %d vacant: %w",
				id.Name, want, removed, ward.ErrInsufficientVacantBeds)
		}
	}
	return nil
}

// DeleteRoom removes the room with its beds and equipment. A room with any
// occupied bed cannot be deleted.
func (s *WardService) DeleteRoom(ctx context.Context, hospitalID uint, name string) error {
	id := ward.RoomID{HospitalID: hospitalID, Name: name}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.Get(ctx, id); err != nil {
			return err
		}

		occupied, err := s.beds.CountByRoomAndStatus(ctx, id, ward.BedOccupied)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ward.ErrRoomHasOccupiedBeds
		}

		if err := s.beds.DeleteAllInRoom(ctx, id); err != nil {
			return err
		}
		if err := s.equipment.DeleteForRoom(ctx, id); err != nil {
			return err
		}
		return s.rooms.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("room deleted",
		zap.Uint("hospital_id", hospitalID),
		zap.String("room", name),
	)
	s.metrics.BedOccupancy.DeletePartialMatch(map[string]string{
		"hospital_id": strconv.FormatUint(uint64(hospitalID), 10),
		"room":        name,
	})
	return nil
}

func (s *WardService) refreshOccupancy(ctx context.Context, id ward.RoomID) {
	counts, err := s.beds.Counts(ctx, id)
	if err != nil {
		s.log.Warn("refreshing occupancy gauge", zap.String("room", id.Name), zap.Error(err))
		return
	}

	hid := strconv.FormatUint(uint64(id.HospitalID), 10)
	s.metrics.BedOccupancy.WithLabelValues(hid, id.Name, string(ward.BedVacant)).Set(float64(counts.Vacant))
	s.metrics.BedOccupancy.WithLabelValues(hid, id.Name, string(ward.BedOccupied)).Set(float64(counts.Occupied))
	s.metrics.BedOccupancy.WithLabelValues(hid, id.Name, string(ward.BedMaintenance)).Set(float64(counts.Maintenance))
}
