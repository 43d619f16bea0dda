package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/staff"
)

// StaffService manages employee accounts. Only admin roles may mutate, and a
// super admin account can only be minted by another super admin.
type StaffService struct {
	staff staff.Repository
	log   *zap.Logger
}

func NewStaffService(staffRepo staff.Repository, log *zap.Logger) *StaffService {
	return &StaffService{staff: staffRepo, log: log}
}

func (s *StaffService) Create(ctx context.Context, hospitalID uint, callerRole domain.Role, cmd staff.CreateStaffCommand) (*staff.Staff, error) {
	if !callerRole.CanManageStaff() {
		return nil, ErrForbidden
	}
	if cmd.Role == domain.RoleSuperAdmin && callerRole != domain.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	var v validator
	v.require("username", cmd.Username)
	v.require("firstName", cmd.FirstName)
	v.require("lastName", cmd.LastName)
	if len(cmd.Password) < 8 {
		v.add("password", "must be at least 8 characters")
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	if !cmd.Role.IsValid() {
		return nil, staff.ErrInvalidRole
	}

	exists, err := s.staff.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, staff.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &staff.Staff{
		Username:        cmd.Username,
		HospitalID:      hospitalID,
		PasswordHash:    string(hash),
		Role:            cmd.Role,
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		Email:           cmd.Email,
		Phone:           cmd.Phone,
		DateOfBirth:     cmd.DateOfBirth,
		AddressLine1:    cmd.AddressLine1,
		AddressLine2:    cmd.AddressLine2,
		City:            cmd.City,
		State:           cmd.State,
		Postal:          cmd.Postal,
		Country:         cmd.Country,
		Specialty:       cmd.Specialty,
		YearsExperience: cmd.YearsExperience,
	}
	if err := s.staff.Create(ctx, member); err != nil {
		return nil, err
	}

	s.log.Info("staff created",
		zap.Uint("hospital_id", hospitalID),
		zap.String("username", cmd.Username),
		zap.String("role", string(cmd.Role)),
	)
	return member, nil
}

func (s *StaffService) Get(ctx context.Context, hospitalID uint, username string) (*staff.Staff, error) {
	member, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !member.WorksAt(hospitalID) {
		return nil, staff.ErrStaffNotFound
	}
	return member, nil
}

func (s *StaffService) List(ctx context.Context, hospitalID uint) ([]*staff.Staff, error) {
	return s.staff.ListByHospital(ctx, hospitalID)
}

func (s *StaffService) ListByRole(ctx context.Context, hospitalID uint, role domain.Role) ([]*staff.Staff, error) {
	if !role.IsValid() {
		return nil, staff.ErrInvalidRole
	}
	return s.staff.ListByHospitalAndRole(ctx, hospitalID, role)
}

func (s *StaffService) Update(ctx context.Context, hospitalID uint, callerRole domain.Role, cmd staff.UpdateStaffCommand) (*staff.Staff, error) {
	if !callerRole.CanManageStaff() {
		return nil, ErrForbidden
	}

	member, err := s.Get(ctx, hospitalID, cmd.Username)
	if err != nil {
		return nil, err
	}

	if cmd.Role != nil {
		if !cmd.Role.IsValid() {
			return nil, staff.ErrInvalidRole
		}
		if *cmd.Role == domain.RoleSuperAdmin && callerRole != domain.RoleSuperAdmin {
			return nil, ErrForbidden
		}
		member.Role = *cmd.Role
	}
	if cmd.Email != nil {
		member.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		member.Phone = *cmd.Phone
	}
	if cmd.AddressLine1 != nil {
		member.AddressLine1 = *cmd.AddressLine1
	}
	if cmd.AddressLine2 != nil {
		member.AddressLine2 = *cmd.AddressLine2
	}
	if cmd.City != nil {
		member.City = *cmd.City
	}
	if cmd.State != nil {
		member.State = *cmd.State
	}
	if cmd.Postal != nil {
		member.Postal = *cmd.Postal
	}
	if cmd.Country != nil {
		member.Country = *cmd.Country
	}
	if cmd.Specialty != nil {
		member.Specialty = *cmd.Specialty
	}
	if cmd.YearsExperience != nil {
		member.YearsExperience = *cmd.YearsExperience
	}

	if err := s.staff.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
