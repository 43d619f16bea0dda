package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/patient"
)

func validPatientCommand() patient.CreatePatientCommand {
	return patient.CreatePatientCommand{
		FirstName:    "Grace",
		LastName:     "Hopper",
		DateOfBirth:  time.Date(1985, 12, 9, 0, 0, 0, 0, time.UTC),
		Gender:       patient.GenderFemale,
		BloodType:    patient.BloodTypeOPos,
		AddressLine1: "3 Harbor St",
		Postal:       "10001",
		Country:      "USA",
	}
}

func newPatientService(repo *fakePatientRepo) *PatientService {
	return NewPatientService(repo, zap.NewNop())
}

func TestCreatePatient(t *testing.T) {
	t.Run("creates a record and returns it", func(t *testing.T) {
		repo := &fakePatientRepo{
			ExistsByNaturalKeyFn: func(ctx context.Context, key patient.NaturalKey) (bool, error) {
				return false, nil
			},
			CreateFn: func(ctx context.Context, p *patient.PatientInfo) error {
				p.ID = 9
				return nil
			},
		}

		p, err := newPatientService(repo).Create(context.Background(), validPatientCommand())
		require.NoError(t, err)
		assert.Equal(t, uint(9), p.ID)
		assert.Equal(t, "Grace Hopper", p.FullName())
	})

	t.Run("rejects a duplicate natural key", func(t *testing.T) {
		repo := &fakePatientRepo{
			ExistsByNaturalKeyFn: func(ctx context.Context, key patient.NaturalKey) (bool, error) {
				assert.Equal(t, "Grace", key.FirstName)
				assert.Equal(t, "10001", key.Postal)
				return true, nil
			},
		}

		_, err := newPatientService(repo).Create(context.Background(), validPatientCommand())
		assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)
	})

	t.Run("rejects an unknown gender", func(t *testing.T) {
		cmd := validPatientCommand()
		cmd.Gender = "unspecified"

		_, err := newPatientService(&fakePatientRepo{}).Create(context.Background(), cmd)
		assert.ErrorIs(t, err, patient.ErrInvalidGender)
	})

	t.Run("rejects an unknown blood type", func(t *testing.T) {
		cmd := validPatientCommand()
		cmd.BloodType = "C+"

		_, err := newPatientService(&fakePatientRepo{}).Create(context.Background(), cmd)
		assert.ErrorIs(t, err, patient.ErrInvalidBloodType)
	})

	t.Run("allows an empty blood type", func(t *testing.T) {
		repo := &fakePatientRepo{
			ExistsByNaturalKeyFn: func(ctx context.Context, key patient.NaturalKey) (bool, error) {
				return false, nil
			},
			CreateFn: func(ctx context.Context, p *patient.PatientInfo) error { return nil },
		}
		cmd := validPatientCommand()
		cmd.BloodType = ""

		_, err := newPatientService(repo).Create(context.Background(), cmd)
		assert.NoError(t, err)
	})

	t.Run("rejects a future date of birth", func(t *testing.T) {
		cmd := validPatientCommand()
		cmd.DateOfBirth = timeNow().Add(24 * time.Hour)

		_, err := newPatientService(&fakePatientRepo{}).Create(context.Background(), cmd)
		assert.ErrorIs(t, err, patient.ErrInvalidDateOfBirth)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := newPatientService(&fakePatientRepo{}).Create(context.Background(), patient.CreatePatientCommand{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "firstName")
		assert.Contains(t, verr.Fields, "country")
	})
}

func TestUpdatePatient(t *testing.T) {
	existing := func() *patient.PatientInfo {
		return &patient.PatientInfo{
			ID:        9,
			FirstName: "Grace",
			LastName:  "Hopper",
			Phone:     "555-0000",
			City:      "Arlington",
		}
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		var saved *patient.PatientInfo
		repo := &fakePatientRepo{
			GetByIDFn: func(ctx context.Context, id uint) (*patient.PatientInfo, error) {
				return existing(), nil
			},
			UpdateFn: func(ctx context.Context, p *patient.PatientInfo) error {
				saved = p
				return nil
			},
		}
		phone := "555-1234"
		bt := patient.BloodTypeABNeg

		p, err := newPatientService(repo).Update(context.Background(), patient.UpdatePatientCommand{
			ID: 9, Phone: &phone, BloodType: &bt,
		})
		require.NoError(t, err)
		assert.Equal(t, "555-1234", saved.Phone)
		assert.Equal(t, patient.BloodTypeABNeg, saved.BloodType)
		assert.Equal(t, "Arlington", p.City)
	})

	t.Run("rejects an invalid blood type", func(t *testing.T) {
		repo := &fakePatientRepo{
			GetByIDFn: func(ctx context.Context, id uint) (*patient.PatientInfo, error) {
				return existing(), nil
			},
		}
		bad := patient.BloodType("Z-")

		_, err := newPatientService(repo).Update(context.Background(), patient.UpdatePatientCommand{
			ID: 9, BloodType: &bad,
		})
		assert.ErrorIs(t, err, patient.ErrInvalidBloodType)
	})

	t.Run("propagates a missing record", func(t *testing.T) {
		repo := &fakePatientRepo{
			GetByIDFn: func(ctx context.Context, id uint) (*patient.PatientInfo, error) {
				return nil, patient.ErrPatientNotFound
			},
		}

		_, err := newPatientService(repo).Update(context.Background(), patient.UpdatePatientCommand{ID: 404})
		assert.ErrorIs(t, err, patient.ErrPatientNotFound)
	})
}
