package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syncura360/api/internal/domain/ward"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *ward.Room) error {
	if err := dbFrom(ctx, r.db).Create(room).Error; err != nil {
		return fmt.Errorf("creating room %s: %w", room.Name, err)
	}
	return nil
}

func (r *RoomRepository) Get(ctx context.Context, id ward.RoomID) (*ward.Room, error) {
	var room ward.Room
	err := dbFrom(ctx, r.db).
		First(&room, "hospital_id = ? AND room_name = ?", id.HospitalID, id.Name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ward.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching room %s: %w", id.Name, err)
	}
	return &room, nil
}

func (r *RoomRepository) Exists(ctx context.Context, id ward.RoomID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&ward.Room{}).
		Where("hospital_id = ? AND room_name = ?", id.HospitalID, id.Name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking room %s: %w", id.Name, err)
	}
	return count > 0, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *ward.Room) error {
	if err := dbFrom(ctx, r.db).Save(room).Error; err != nil {
		return fmt.Errorf("updating room %s: %w", room.Name, err)
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id ward.RoomID) error {
	res := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND room_name = ?", id.HospitalID, id.Name).
		Delete(&ward.Room{})
	if res.Error != nil {
		return fmt.Errorf("deleting room %s: %w", id.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ward.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) ListByHospital(ctx context.Context, hospitalID uint) ([]*ward.Room, error) {
	var rooms []*ward.Room
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("room_name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("listing rooms for hospital %d: %w", hospitalID, err)
	}
	return rooms, nil
}

type BedRepository struct {
	db *gorm.DB
}

func NewBedRepository(db *gorm.DB) *BedRepository {
	return &BedRepository{db: db}
}

func (r *BedRepository) CreateBatch(ctx context.Context, room ward.RoomID, n int) error {
	if n <= 0 {
		return nil
	}

	db := dbFrom(ctx, r.db)

	var maxNo int
	err := db.Model(&ward.Bed{}).
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Select("COALESCE(MAX(bed_no), 0)").
		Scan(&maxNo).Error
	if err != nil {
		return fmt.Errorf("finding highest bed number in %s: %w", room.Name, err)
	}

	beds := make([]ward.Bed, n)
	for i := range beds {
		beds[i] = ward.Bed{
			HospitalID: room.HospitalID,
			RoomName:   room.Name,
			BedNo:      maxNo + i + 1,
			Status:     ward.BedVacant,
		}
	}

	if err := db.Create(&beds).Error; err != nil {
		return fmt.Errorf("creating %d beds in %s: %w", n, room.Name, err)
	}
	return nil
}

func (r *BedRepository) CountByRoom(ctx context.Context, room ward.RoomID) (int, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&ward.Bed{}).
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting beds in %s: %w", room.Name, err)
	}
	return int(count), nil
}

func (r *BedRepository) CountByRoomAndStatus(ctx context.Context, room ward.RoomID, status ward.BedStatus) (int, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&ward.Bed{}).
		Where("hospital_id = ? AND room_name = ? AND status = ?", room.HospitalID, room.Name, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting %s beds in %s: %w", status, room.Name, err)
	}
	return int(count), nil
}

func (r *BedRepository) Counts(ctx context.Context, room ward.RoomID) (ward.BedCounts, error) {
	var rows []struct {
		Status ward.BedStatus
		N      int
	}
	err := dbFrom(ctx, r.db).Model(&ward.Bed{}).
		Select("status, COUNT(*) AS n").
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return ward.BedCounts{}, fmt.Errorf("counting beds in %s: %w", room.Name, err)
	}

	var counts ward.BedCounts
	for _, row := range rows {
		counts.Total += row.N
		switch row.Status {
		case ward.BedVacant:
			counts.Vacant = row.N
		case ward.BedOccupied:
			counts.Occupied = row.N
		case ward.BedMaintenance:
			counts.Maintenance = row.N
		}
	}
	return counts, nil
}

// DeleteVacant removes the highest-numbered vacant beds first so the surviving
// numbering stays dense at the low end.
func (r *BedRepository) DeleteVacant(ctx context.Context, room ward.RoomID, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	res := dbFrom(ctx, r.db).Exec(
		`DELETE FROM clinical.beds
		 WHERE hospital_id = ? AND room_name = ? AND bed_no IN (
			SELECT bed_no FROM clinical.beds
			WHERE hospital_id = ? AND room_name = ? AND status = ?
			ORDER BY bed_no DESC
			LIMIT ?
		 )`,
		room.HospitalID, room.Name, room.HospitalID, room.Name, ward.BedVacant, n,
	)
	if res.Error != nil {
		return 0, fmt.Errorf("deleting vacant beds in %s: %w", room.Name, res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *BedRepository) DeleteAllInRoom(ctx context.Context, room ward.RoomID) error {
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Delete(&ward.Bed{}).Error
	if err != nil {
		return fmt.Errorf("deleting beds in %s: %w", room.Name, err)
	}
	return nil
}

func (r *BedRepository) FirstByStatusForUpdate(ctx context.Context, room ward.RoomID, status ward.BedStatus) (*ward.Bed, error) {
	var bed ward.Bed
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hospital_id = ? AND room_name = ? AND status = ?", room.HospitalID, room.Name, status).
		Order("bed_no ASC").
		First(&bed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ward.ErrBedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking %s bed in %s: %w", status, room.Name, err)
	}
	return &bed, nil
}

func (r *BedRepository) SetStatus(ctx context.Context, b *ward.Bed, status ward.BedStatus) error {
	res := dbFrom(ctx, r.db).Model(&ward.Bed{}).
		Where("hospital_id = ? AND room_name = ? AND bed_no = ?", b.HospitalID, b.RoomName, b.BedNo).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("setting bed %s/%d to %s: %w", b.RoomName, b.BedNo, status, res.Error)
	}
	if res.RowsAffected == 0 {
		return ward.ErrBedNotFound
	}
	b.Status = status
	return nil
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) ListByRoom(ctx context.Context, room ward.RoomID) ([]ward.Equipment, error) {
	var items []ward.Equipment
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Order("serial_no ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing equipment in %s: %w", room.Name, err)
	}
	return items, nil
}

func (r *EquipmentRepository) ReplaceForRoom(ctx context.Context, room ward.RoomID, items []ward.EquipmentForm) error {
	db := dbFrom(ctx, r.db)

	err := db.Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Delete(&ward.Equipment{}).Error
	if err != nil {
		return fmt.Errorf("clearing equipment in %s: %w", room.Name, err)
	}

	if len(items) == 0 {
		return nil
	}

	rows := make([]ward.Equipment, len(items))
	for i, item := range items {
		rows[i] = ward.Equipment{
			HospitalID:       room.HospitalID,
			RoomName:         room.Name,
			SerialNo:         item.SerialNo,
			Name:             item.Name,
			UnderMaintenance: item.UnderMaintenance,
		}
	}

	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("writing equipment in %s: %w", room.Name, err)
	}
	return nil
}

func (r *EquipmentRepository) DeleteForRoom(ctx context.Context, room ward.RoomID) error {
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND room_name = ?", room.HospitalID, room.Name).
		Delete(&ward.Equipment{}).Error
	if err != nil {
		return fmt.Errorf("deleting equipment in %s: %w", room.Name, err)
	}
	return nil
}
