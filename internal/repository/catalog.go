package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syncura360/api/internal/domain/catalog"
)

type DrugRepository struct {
	db *gorm.DB
}

func NewDrugRepository(db *gorm.DB) *DrugRepository {
	return &DrugRepository{db: db}
}

func (r *DrugRepository) Create(ctx context.Context, d *catalog.Drug) error {
	if err := dbFrom(ctx, r.db).Create(d).Error; err != nil {
		return fmt.Errorf("creating drug %d: %w", d.NDC, err)
	}
	return nil
}

func (r *DrugRepository) Get(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error) {
	return r.get(ctx, id, false)
}

func (r *DrugRepository) GetForUpdate(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error) {
	return r.get(ctx, id, true)
}

func (r *DrugRepository) get(ctx context.Context, id catalog.DrugID, lock bool) (*catalog.Drug, error) {
	db := dbFrom(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var d catalog.Drug
	err := db.First(&d, "hospital_id = ? AND ndc = ?", id.HospitalID, id.NDC).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrDrugNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching drug %d: %w", id.NDC, err)
	}
	return &d, nil
}

func (r *DrugRepository) Exists(ctx context.Context, id catalog.DrugID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&catalog.Drug{}).
		Where("hospital_id = ? AND ndc = ?", id.HospitalID, id.NDC).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking drug %d: %w", id.NDC, err)
	}
	return count > 0, nil
}

func (r *DrugRepository) Update(ctx context.Context, d *catalog.Drug) error {
	if err := dbFrom(ctx, r.db).Save(d).Error; err != nil {
		return fmt.Errorf("updating drug %d: %w", d.NDC, err)
	}
	return nil
}

func (r *DrugRepository) Delete(ctx context.Context, id catalog.DrugID) error {
	res := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND ndc = ?", id.HospitalID, id.NDC).
		Delete(&catalog.Drug{})
	if res.Error != nil {
		return fmt.Errorf("deleting drug %d: %w", id.NDC, res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrDrugNotFound
	}
	return nil
}

func (r *DrugRepository) ListByHospital(ctx context.Context, hospitalID uint) ([]*catalog.Drug, error) {
	var drugs []*catalog.Drug
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&drugs).Error
	if err != nil {
		return nil, fmt.Errorf("listing drugs for hospital %d: %w", hospitalID, err)
	}
	return drugs, nil
}

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	if err := dbFrom(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("creating service %s: %w", s.Name, err)
	}
	return nil
}

func (r *ServiceRepository) Get(ctx context.Context, id catalog.ServiceID) (*catalog.Service, error) {
	var s catalog.Service
	err := dbFrom(ctx, r.db).
		First(&s, "hospital_id = ? AND name = ?", id.HospitalID, id.Name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching service %s: %w", id.Name, err)
	}
	return &s, nil
}

func (r *ServiceRepository) Exists(ctx context.Context, id catalog.ServiceID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&catalog.Service{}).
		Where("hospital_id = ? AND name = ?", id.HospitalID, id.Name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking service %s: %w", id.Name, err)
	}
	return count > 0, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	if err := dbFrom(ctx, r.db).Save(s).Error; err != nil {
		return fmt.Errorf("updating service %s: %w", s.Name, err)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id catalog.ServiceID) error {
	res := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND name = ?", id.HospitalID, id.Name).
		Delete(&catalog.Service{})
	if res.Error != nil {
		return fmt.Errorf("deleting service %s: %w", id.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) ListByHospital(ctx context.Context, hospitalID uint) ([]*catalog.Service, error) {
	var services []*catalog.Service
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("listing services for hospital %d: %w", hospitalID, err)
	}
	return services, nil
}
