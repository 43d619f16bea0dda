package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/syncura360/api/internal/domain/hospital"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

func (r *HospitalRepository) Create(ctx context.Context, h *hospital.Hospital) error {
	if err := dbFrom(ctx, r.db).Create(h).Error; err != nil {
		return fmt.Errorf("creating hospital: %w", err)
	}
	return nil
}

func (r *HospitalRepository) GetByID(ctx context.Context, id uint) (*hospital.Hospital, error) {
	var h hospital.Hospital
	err := dbFrom(ctx, r.db).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hospital.ErrHospitalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching hospital %d: %w", id, err)
	}
	return &h, nil
}

func (r *HospitalRepository) Update(ctx context.Context, h *hospital.Hospital) error {
	if err := dbFrom(ctx, r.db).Save(h).Error; err != nil {
		return fmt.Errorf("updating hospital %d: %w", h.ID, err)
	}
	return nil
}

func (r *HospitalRepository) ExistsByAddressLine1(ctx context.Context, addressLine1 string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&hospital.Hospital{}).
		Where("address_line1 = ?", addressLine1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking hospital address: %w", err)
	}
	return count > 0, nil
}

func (r *HospitalRepository) ExistsByTelephone(ctx context.Context, telephone string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&hospital.Hospital{}).
		Where("telephone = ?", telephone).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking hospital telephone: %w", err)
	}
	return count > 0, nil
}
