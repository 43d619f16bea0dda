package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/staff"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *staff.Staff) error {
	if err := dbFrom(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("creating staff %s: %w", s.Username, err)
	}
	return nil
}

func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	var s staff.Staff
	err := dbFrom(ctx, r.db).First(&s, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, staff.ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching staff %s: %w", username, err)
	}
	return &s, nil
}

func (r *StaffRepository) Update(ctx context.Context, s *staff.Staff) error {
	if err := dbFrom(ctx, r.db).Save(s).Error; err != nil {
		return fmt.Errorf("updating staff %s: %w", s.Username, err)
	}
	return nil
}

func (r *StaffRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	res := dbFrom(ctx, r.db).Model(&staff.Staff{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("updating password for %s: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

func (r *StaffRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&staff.Staff{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking username %s: %w", username, err)
	}
	return count > 0, nil
}

func (r *StaffRepository) ListByHospital(ctx context.Context, hospitalID uint) ([]*staff.Staff, error) {
	var members []*staff.Staff
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("username ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("listing staff for hospital %d: %w", hospitalID, err)
	}
	return members, nil
}

func (r *StaffRepository) ListByHospitalAndRole(ctx context.Context, hospitalID uint, role domain.Role) ([]*staff.Staff, error) {
	var members []*staff.Staff
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND role = ?", hospitalID, role).
		Order("username ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s staff for hospital %d: %w", role, hospitalID, err)
	}
	return members, nil
}
