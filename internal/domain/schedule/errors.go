package schedule

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftAlreadyExists = errors.New("shift with given start time already exists for staff member")
	ErrInvalidShiftRange  = errors.New("shift end must be after start")
)
