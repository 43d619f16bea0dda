package schedule

import "context"

type Repository interface {
	Create(ctx context.Context, s *Shift) error

	// Get returns ErrShiftNotFound when no shift matches the key.
	Get(ctx context.Context, id ShiftID) (*Shift, error)

	Exists(ctx context.Context, id ShiftID) (bool, error)
	Delete(ctx context.Context, id ShiftID) error

	// Find returns shifts overlapping [q.From, q.To], scoped to the hospital
	// and optionally to one staff member.
	Find(ctx context.Context, q Query) ([]*Shift, error)
}
