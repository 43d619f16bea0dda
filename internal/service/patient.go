package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/patient"
)

// PatientService manages demographic records. Patients are global, not
// hospital-scoped; any registered hospital may admit them.
type PatientService struct {
	patients patient.Repository
	log      *zap.Logger
}

func NewPatientService(patients patient.Repository, log *zap.Logger) *PatientService {
	return &PatientService{patients: patients, log: log}
}

func (s *PatientService) Create(ctx context.Context, cmd patient.CreatePatientCommand) (*patient.PatientInfo, error) {
	var v validator
	v.require("firstName", cmd.FirstName)
	v.require("lastName", cmd.LastName)
	v.require("addressLine1", cmd.AddressLine1)
	v.require("postal", cmd.Postal)
	v.require("country", cmd.Country)
	if err := v.err(); err != nil {
		return nil, err
	}

	if !cmd.Gender.IsValid() {
		return nil, patient.ErrInvalidGender
	}
	if cmd.BloodType != "" && !cmd.BloodType.IsValid() {
		return nil, patient.ErrInvalidBloodType
	}
	if cmd.DateOfBirth.IsZero() || cmd.DateOfBirth.After(timeNow()) {
		return nil, patient.ErrInvalidDateOfBirth
	}

	p := &patient.PatientInfo{
		FirstName:             cmd.FirstName,
		LastName:              cmd.LastName,
		DateOfBirth:           cmd.DateOfBirth,
		Gender:                cmd.Gender,
		BloodType:             cmd.BloodType,
		HeightCm:              cmd.HeightCm,
		WeightKg:              cmd.WeightKg,
		Phone:                 cmd.Phone,
		AddressLine1:          cmd.AddressLine1,
		AddressLine2:          cmd.AddressLine2,
		City:                  cmd.City,
		State:                 cmd.State,
		Postal:                cmd.Postal,
		Country:               cmd.Country,
		EmergencyContactName:  cmd.EmergencyContactName,
		EmergencyContactPhone: cmd.EmergencyContactPhone,
	}

	exists, err := s.patients.ExistsByNaturalKey(ctx, p.NaturalKey())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("patient created", zap.Uint("patient_id", p.ID))
	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id uint) (*patient.PatientInfo, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context) ([]*patient.PatientInfo, error) {
	return s.patients.List(ctx)
}

// Update applies partial changes; the natural-key fields other than address
// stay immutable once a record exists.
func (s *PatientService) Update(ctx context.Context, cmd patient.UpdatePatientCommand) (*patient.PatientInfo, error) {
	p, err := s.patients.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.BloodType != nil {
		if !cmd.BloodType.IsValid() {
			return nil, patient.ErrInvalidBloodType
		}
		p.BloodType = *cmd.BloodType
	}
	if cmd.HeightCm != nil {
		p.HeightCm = cmd.HeightCm
	}
	if cmd.WeightKg != nil {
		p.WeightKg = cmd.WeightKg
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.AddressLine1 != nil {
		p.AddressLine1 = *cmd.AddressLine1
	}
	if cmd.AddressLine2 != nil {
		p.AddressLine2 = *cmd.AddressLine2
	}
	if cmd.City != nil {
		p.City = *cmd.City
	}
	if cmd.State != nil {
		p.State = *cmd.State
	}
	if cmd.Postal != nil {
		p.Postal = *cmd.Postal
	}
	if cmd.Country != nil {
		p.Country = *cmd.Country
	}
	if cmd.EmergencyContactName != nil {
		p.EmergencyContactName = *cmd.EmergencyContactName
	}
	if cmd.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = *cmd.EmergencyContactPhone
	}
	if cmd.MedicalNotes != nil {
		p.MedicalNotes = *cmd.MedicalNotes
	}

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
