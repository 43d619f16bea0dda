package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrUsernameTaken = errors.New("staff username is already taken")
	ErrInvalidRole   = errors.New("invalid staff role")
)
