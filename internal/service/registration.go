package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/repository"
)

// RegisterCommand enrolls a hospital together with its first super admin.
type RegisterCommand struct {
	Hospital hospital.CreateHospitalCommand
	Admin    staff.CreateStaffCommand
}

// RegistrationService creates the hospital and its head admin atomically: if
// the admin account cannot be created the hospital row rolls back too, so no
// orphaned hospital ever exists.
type RegistrationService struct {
	hospitals hospital.Repository
	staff     staff.Repository
	tx        repository.TxManager
	log       *zap.Logger
}

func NewRegistrationService(
	hospitals hospital.Repository,
	staffRepo staff.Repository,
	tx repository.TxManager,
	log *zap.Logger,
) *RegistrationService {
	return &RegistrationService{hospitals: hospitals, staff: staffRepo, tx: tx, log: log}
}

func (s *RegistrationService) Register(ctx context.Context, cmd RegisterCommand) (*hospital.Hospital, error) {
	var v validator
	v.require("hospitalName", cmd.Hospital.Name)
	v.require("addressLine1", cmd.Hospital.AddressLine1)
	v.require("telephone", cmd.Hospital.Telephone)
	v.require("adminUsername", cmd.Admin.Username)
	v.require("adminFirstName", cmd.Admin.FirstName)
	v.require("adminLastName", cmd.Admin.LastName)
	if len(cmd.Admin.Password) < 8 {
		v.add("adminPassword", "must be at least 8 characters")
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	if cmd.Hospital.TraumaLevel != "" && !cmd.Hospital.TraumaLevel.IsValid() {
		return nil, hospital.ErrInvalidTrauma
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created *hospital.Hospital
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		taken, err := s.hospitals.ExistsByAddressLine1(ctx, cmd.Hospital.AddressLine1)
		if err != nil {
			return err
		}
		if taken {
			return hospital.ErrAddressTaken
		}

		taken, err = s.hospitals.ExistsByTelephone(ctx, cmd.Hospital.Telephone)
		if err != nil {
			return err
		}
		if taken {
			return hospital.ErrTelephoneTaken
		}

		taken, err = s.staff.ExistsByUsername(ctx, cmd.Admin.Username)
		if err != nil {
			return err
		}
		if taken {
			return staff.ErrUsernameTaken
		}

		traumaLevel := cmd.Hospital.TraumaLevel
		if traumaLevel == "" {
			traumaLevel = hospital.TraumaLevelNone
		}

		created = &hospital.Hospital{
			Name:         cmd.Hospital.Name,
			AddressLine1: cmd.Hospital.AddressLine1,
			AddressLine2: cmd.Hospital.AddressLine2,
			City:         cmd.Hospital.City,
			State:        cmd.Hospital.State,
			Postal:       cmd.Hospital.Postal,
			Telephone:    cmd.Hospital.Telephone,
			Type:         cmd.Hospital.Type,
			TraumaLevel:  traumaLevel,
			HasHelipad:   cmd.Hospital.HasHelipad,
		}
		if err := s.hospitals.Create(ctx, created); err != nil {
			return err
		}

		// The first account is always the head super admin regardless of
		// what the request asked for.
		admin := &staff.Staff{
			Username:     cmd.Admin.Username,
			HospitalID:   created.ID,
			PasswordHash: string(hash),
			Role:         domain.RoleSuperAdmin,
			FirstName:    cmd.Admin.FirstName,
			LastName:     cmd.Admin.LastName,
			Email:        cmd.Admin.Email,
			Phone:        cmd.Admin.Phone,
			DateOfBirth:  cmd.Admin.DateOfBirth,
		}
		return s.staff.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("hospital registered",
		zap.Uint("hospital_id", created.ID),
		zap.String("name", created.Name),
		zap.String("head_admin", cmd.Admin.Username),
	)
	return created, nil
}
