package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syncura360/api/internal/domain/visit"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	if err := dbFrom(ctx, r.db).Create(v).Error; err != nil {
		return fmt.Errorf("creating visit for patient %d: %w", v.PatientID, err)
	}
	return nil
}

func (r *VisitRepository) Get(ctx context.Context, id visit.VisitID) (*visit.Visit, error) {
	var v visit.Visit
	err := dbFrom(ctx, r.db).
		First(&v, "hospital_id = ? AND patient_id = ? AND admitted_at = ?",
			id.HospitalID, id.PatientID, id.AdmittedAt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, visit.ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching visit for patient %d: %w", id.PatientID, err)
	}
	return &v, nil
}

func (r *VisitRepository) FindActive(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error) {
	return r.findActive(ctx, hospitalID, patientID, false)
}

func (r *VisitRepository) FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error) {
	return r.findActive(ctx, hospitalID, patientID, true)
}

func (r *VisitRepository) findActive(ctx context.Context, hospitalID, patientID uint, lock bool) (*visit.Visit, error) {
	db := dbFrom(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var v visit.Visit
	err := db.First(&v, "hospital_id = ? AND patient_id = ? AND discharged_at IS NULL",
		hospitalID, patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, visit.ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding active visit for patient %d: %w", patientID, err)
	}
	return &v, nil
}

func (r *VisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	err := dbFrom(ctx, r.db).Model(&visit.Visit{}).
		Where("hospital_id = ? AND patient_id = ? AND admitted_at = ?",
			v.HospitalID, v.PatientID, v.AdmittedAt).
		Updates(map[string]interface{}{
			"discharged_at": v.DischargedAt,
			"reason":        v.Reason,
			"summary":       v.Summary,
			"note":          v.Note,
		}).Error
	if err != nil {
		return fmt.Errorf("updating visit for patient %d: %w", v.PatientID, err)
	}
	return nil
}

func (r *VisitRepository) ListActive(ctx context.Context, hospitalID uint) ([]*visit.Visit, error) {
	var visits []*visit.Visit
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND discharged_at IS NULL", hospitalID).
		Order("admitted_at DESC").
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("listing active visits for hospital %d: %w", hospitalID, err)
	}
	return visits, nil
}

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *visit.RoomAssignment) error {
	if err := dbFrom(ctx, r.db).Create(a).Error; err != nil {
		return fmt.Errorf("creating room assignment for patient %d: %w", a.PatientID, err)
	}
	return nil
}

func (r *AssignmentRepository) FindActive(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error) {
	return r.findActive(ctx, hospitalID, patientID, false)
}

func (r *AssignmentRepository) FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error) {
	return r.findActive(ctx, hospitalID, patientID, true)
}

func (r *AssignmentRepository) findActive(ctx context.Context, hospitalID, patientID uint, lock bool) (*visit.RoomAssignment, error) {
	db := dbFrom(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var a visit.RoomAssignment
	err := db.First(&a, "hospital_id = ? AND patient_id = ? AND is_removed = false",
		hospitalID, patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, visit.ErrNotAssigned
	}
	if err != nil {
		return nil, fmt.Errorf("finding active assignment for patient %d: %w", patientID, err)
	}
	return &a, nil
}

func (r *AssignmentRepository) MarkRemoved(ctx context.Context, a *visit.RoomAssignment) error {
	res := dbFrom(ctx, r.db).Model(&visit.RoomAssignment{}).
		Where("hospital_id = ? AND patient_id = ? AND visit_admitted_at = ? AND assigned_at = ?",
			a.HospitalID, a.PatientID, a.VisitAdmittedAt, a.AssignedAt).
		Update("is_removed", true)
	if res.Error != nil {
		return fmt.Errorf("releasing assignment for patient %d: %w", a.PatientID, res.Error)
	}
	if res.RowsAffected == 0 {
		return visit.ErrNotAssigned
	}
	a.IsRemoved = true
	return nil
}

func (r *AssignmentRepository) ListForVisit(ctx context.Context, id visit.VisitID) ([]visit.RoomAssignment, error) {
	var assignments []visit.RoomAssignment
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND patient_id = ? AND visit_admitted_at = ?",
			id.HospitalID, id.PatientID, id.AdmittedAt).
		Order("assigned_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("listing assignments for patient %d: %w", id.PatientID, err)
	}
	return assignments, nil
}

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) AddService(ctx context.Context, e *visit.ServiceProvided) error {
	if err := dbFrom(ctx, r.db).Create(e).Error; err != nil {
		return fmt.Errorf("recording service %s: %w", e.ServiceName, err)
	}
	return nil
}

func (r *LedgerRepository) AddDrug(ctx context.Context, e *visit.DrugAdministered) error {
	if err := dbFrom(ctx, r.db).Create(e).Error; err != nil {
		return fmt.Errorf("recording drug %d: %w", e.NDC, err)
	}
	return nil
}

func (r *LedgerRepository) ServicesForVisit(ctx context.Context, id visit.VisitID) ([]visit.ServiceProvided, error) {
	var entries []visit.ServiceProvided
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND patient_id = ? AND visit_admitted_at = ?",
			id.HospitalID, id.PatientID, id.AdmittedAt).
		Order("performed_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing services for patient %d: %w", id.PatientID, err)
	}
	return entries, nil
}

func (r *LedgerRepository) DrugsForVisit(ctx context.Context, id visit.VisitID) ([]visit.DrugAdministered, error) {
	var entries []visit.DrugAdministered
	err := dbFrom(ctx, r.db).
		Where("hospital_id = ? AND patient_id = ? AND visit_admitted_at = ?",
			id.HospitalID, id.PatientID, id.AdmittedAt).
		Order("administered_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing drugs for patient %d: %w", id.PatientID, err)
	}
	return entries, nil
}
