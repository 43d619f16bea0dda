package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/staff"
)

func validRegisterCommand() RegisterCommand {
	return RegisterCommand{
		Hospital: hospital.CreateHospitalCommand{
			Name:         "St. Mary General",
			AddressLine1: "1 Hospital Way",
			Telephone:    "+1-555-0100",
		},
		Admin: staff.CreateStaffCommand{
			Username:  "head-admin",
			Password:  "long enough",
			FirstName: "Ada",
			LastName:  "Lovelace",
		},
	}
}

type registrationDeps struct {
	hospitals *fakeHospitalRepo
	staff     *fakeStaffRepo
}

func newRegistrationDeps() *registrationDeps {
	return &registrationDeps{
		hospitals: &fakeHospitalRepo{
			ExistsByAddressLine1Fn: func(ctx context.Context, addr string) (bool, error) { return false, nil },
			ExistsByTelephoneFn:    func(ctx context.Context, tel string) (bool, error) { return false, nil },
			CreateFn: func(ctx context.Context, h *hospital.Hospital) error {
				h.ID = 42
				return nil
			},
		},
		staff: &fakeStaffRepo{
			ExistsByUsernameFn: func(ctx context.Context, username string) (bool, error) { return false, nil },
			CreateFn:           func(ctx context.Context, s *staff.Staff) error { return nil },
		},
	}
}

func (d *registrationDeps) service() *RegistrationService {
	return NewRegistrationService(d.hospitals, d.staff, fakeTx{}, zap.NewNop())
}

func TestRegister(t *testing.T) {
	t.Run("creates the hospital and its head super admin together", func(t *testing.T) {
		deps := newRegistrationDeps()
		var admin *staff.Staff
		deps.staff.CreateFn = func(ctx context.Context, s *staff.Staff) error {
			admin = s
			return nil
		}

		created, err := deps.service().Register(context.Background(), validRegisterCommand())
		require.NoError(t, err)
		assert.Equal(t, uint(42), created.ID)
		assert.Equal(t, hospital.TraumaLevelNone, created.TraumaLevel)

		require.NotNil(t, admin)
		assert.Equal(t, uint(42), admin.HospitalID)
		assert.Equal(t, domain.RoleSuperAdmin, admin.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("long enough")))
	})

	t.Run("rejects a taken address", func(t *testing.T) {
		deps := newRegistrationDeps()
		deps.hospitals.ExistsByAddressLine1Fn = func(ctx context.Context, addr string) (bool, error) {
			return true, nil
		}

		_, err := deps.service().Register(context.Background(), validRegisterCommand())
		assert.ErrorIs(t, err, hospital.ErrAddressTaken)
	})

	t.Run("rejects a taken telephone", func(t *testing.T) {
		deps := newRegistrationDeps()
		deps.hospitals.ExistsByTelephoneFn = func(ctx context.Context, tel string) (bool, error) {
			return true, nil
		}

		_, err := deps.service().Register(context.Background(), validRegisterCommand())
		assert.ErrorIs(t, err, hospital.ErrTelephoneTaken)
	})

	t.Run("rejects a taken admin username", func(t *testing.T) {
		deps := newRegistrationDeps()
		deps.staff.ExistsByUsernameFn = func(ctx context.Context, username string) (bool, error) {
			return true, nil
		}
		deps.hospitals.CreateFn = func(ctx context.Context, h *hospital.Hospital) error {
			t.Fatal("hospital must not be created")
			return nil
		}

		_, err := deps.service().Register(context.Background(), validRegisterCommand())
		assert.ErrorIs(t, err, staff.ErrUsernameTaken)
	})

	t.Run("rejects an unknown trauma level", func(t *testing.T) {
		deps := newRegistrationDeps()
		cmd := validRegisterCommand()
		cmd.Hospital.TraumaLevel = "Level VII"

		_, err := deps.service().Register(context.Background(), cmd)
		assert.ErrorIs(t, err, hospital.ErrInvalidTrauma)
	})

	t.Run("collects missing fields into one validation error", func(t *testing.T) {
		deps := newRegistrationDeps()
		cmd := validRegisterCommand()
		cmd.Hospital.Name = ""
		cmd.Admin.Password = "short"

		_, err := deps.service().Register(context.Background(), cmd)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "hospitalName")
		assert.Contains(t, verr.Fields, "adminPassword")
	})
}
