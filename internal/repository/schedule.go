package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/syncura360/api/internal/domain/schedule"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *schedule.Shift) error {
	if err := dbFrom(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("creating shift for %s: %w", s.StaffUsername, err)
	}
	return nil
}

func (r *ScheduleRepository) Get(ctx context.Context, id schedule.ShiftID) (*schedule.Shift, error) {
	var s schedule.Shift
	err := dbFrom(ctx, r.db).
		First(&s, "staff_username = ? AND starts_at = ?", id.StaffUsername, id.StartsAt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching shift for %s: %w", id.StaffUsername, err)
	}
	return &s, nil
}

func (r *ScheduleRepository) Exists(ctx context.Context, id schedule.ShiftID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&schedule.Shift{}).
		Where("staff_username = ? AND starts_at = ?", id.StaffUsername, id.StartsAt).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking shift for %s: %w", id.StaffUsername, err)
	}
	return count > 0, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id schedule.ShiftID) error {
	res := dbFrom(ctx, r.db).
		Where("staff_username = ? AND starts_at = ?", id.StaffUsername, id.StartsAt).
		Delete(&schedule.Shift{})
	if res.Error != nil {
		return fmt.Errorf("deleting shift for %s: %w", id.StaffUsername, res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}

// Find scopes by hospital through the staff table since shifts key on
// username alone.
func (r *ScheduleRepository) Find(ctx context.Context, q schedule.Query) ([]*schedule.Shift, error) {
	db := dbFrom(ctx, r.db).Model(&schedule.Shift{}).
		Joins("JOIN clinical.staff ON clinical.staff.username = clinical.schedules.staff_username").
		Where("clinical.staff.hospital_id = ?", q.HospitalID).
		Where("clinical.schedules.starts_at <= ? AND clinical.schedules.ends_at >= ?", q.To, q.From)

	if q.StaffUsername != "" {
		db = db.Where("clinical.schedules.staff_username = ?", q.StaffUsername)
	}

	var shifts []*schedule.Shift
	err := db.Order("clinical.schedules.starts_at ASC").Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("finding shifts for hospital %d: %w", q.HospitalID, err)
	}
	return shifts, nil
}
