package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/schedule"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/repository"
)

// ScheduleService manages staff shifts. Shifts key on (username, start), so
// hospital scoping goes through the staff record on every mutation.
type ScheduleService struct {
	shifts schedule.Repository
	staff  staff.Repository
	tx     repository.TxManager
	log    *zap.Logger
}

func NewScheduleService(
	shifts schedule.Repository,
	staffRepo staff.Repository,
	tx repository.TxManager,
	log *zap.Logger,
) *ScheduleService {
	return &ScheduleService{shifts: shifts, staff: staffRepo, tx: tx, log: log}
}

// Create adds the given shifts in one transaction; any invalid entry rolls
// back the whole batch.
func (s *ScheduleService) Create(ctx context.Context, hospitalID uint, forms []schedule.ShiftForm) error {
	if len(forms) == 0 {
		return &ValidationError{Fields: map[string]string{"shifts": "at least one shift is required"}}
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		for _, form := range forms {
			shift, err := s.buildShift(ctx, hospitalID, form)
			if err != nil {
				return err
			}

			exists, err := s.shifts.Exists(ctx, shift.ID())
			if err != nil {
				return err
			}
			if exists {
				return schedule.ErrShiftAlreadyExists
			}

			if err := s.shifts.Create(ctx, shift); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update replaces each identified shift with its new form. Replacement is
// delete-then-create since the start time is part of the key.
func (s *ScheduleService) Update(ctx context.Context, hospitalID uint, updates []schedule.ShiftUpdate) error {
	if len(updates) == 0 {
		return &ValidationError{Fields: map[string]string{"shifts": "at least one update is required"}}
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		for _, u := range updates {
			if err := s.verifyShiftOwner(ctx, hospitalID, u.ID.StaffUsername); err != nil {
				return err
			}

			if _, err := s.shifts.Get(ctx, u.ID); err != nil {
				return err
			}

			shift, err := s.buildShift(ctx, hospitalID, u.New)
			if err != nil {
				return err
			}

			if err := s.shifts.Delete(ctx, u.ID); err != nil {
				return err
			}
			if err := s.shifts.Create(ctx, shift); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ScheduleService) Delete(ctx context.Context, hospitalID uint, ids []schedule.ShiftID) error {
	if len(ids) == 0 {
		return &ValidationError{Fields: map[string]string{"shifts": "at least one shift is required"}}
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			if err := s.verifyShiftOwner(ctx, hospitalID, id.StaffUsername); err != nil {
				return err
			}
			if err := s.shifts.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ScheduleService) Find(ctx context.Context, q schedule.Query) ([]*schedule.Shift, error) {
	if !q.To.After(q.From) {
		return nil, &ValidationError{Fields: map[string]string{"range": "end must be after start"}}
	}
	return s.shifts.Find(ctx, q)
}

func (s *ScheduleService) buildShift(ctx context.Context, hospitalID uint, form schedule.ShiftForm) (*schedule.Shift, error) {
	var v validator
	v.require("username", form.StaffUsername)
	if err := v.err(); err != nil {
		return nil, err
	}
	if !form.EndsAt.After(form.StartsAt) {
		return nil, schedule.ErrInvalidShiftRange
	}

	if err := s.verifyShiftOwner(ctx, hospitalID, form.StaffUsername); err != nil {
		return nil, err
	}

	department := form.Department
	if department == "" {
		department = schedule.DefaultDepartment
	}

	return &schedule.Shift{
		StaffUsername: form.StaffUsername,
		StartsAt:      form.StartsAt,
		EndsAt:        form.EndsAt,
		Department:    department,
	}, nil
}

func (s *ScheduleService) verifyShiftOwner(ctx context.Context, hospitalID uint, username string) error {
	member, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !member.WorksAt(hospitalID) {
		return ErrForbidden
	}
	return nil
}
