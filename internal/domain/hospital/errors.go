package hospital

import "errors"

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrAddressTaken     = errors.New("hospital address is already registered")
	ErrTelephoneTaken   = errors.New("hospital telephone is already registered")
	ErrInvalidTrauma    = errors.New("invalid trauma level")
)
