package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/syncura360/api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.PatientInfo) error {
	if err := dbFrom(ctx, r.db).Create(p).Error; err != nil {
		return fmt.Errorf("creating patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*patient.PatientInfo, error) {
	var p patient.PatientInfo
	err := dbFrom(ctx, r.db).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient %d: %w", id, err)
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.PatientInfo) error {
	if err := dbFrom(ctx, r.db).Save(p).Error; err != nil {
		return fmt.Errorf("updating patient %d: %w", p.ID, err)
	}
	return nil
}

func (r *PatientRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&patient.PatientInfo{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking patient %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *PatientRepository) ExistsByNaturalKey(ctx context.Context, key patient.NaturalKey) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&patient.PatientInfo{}).
		Where("first_name = ? AND last_name = ? AND date_of_birth = ? AND gender = ? AND address_line1 = ? AND postal = ? AND country = ?",
			key.FirstName, key.LastName, key.DateOfBirth, key.Gender,
			key.AddressLine1, key.Postal, key.Country).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking patient natural key: %w", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*patient.PatientInfo, error) {
	var patients []*patient.PatientInfo
	err := dbFrom(ctx, r.db).
		Order("last_name ASC, first_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}
