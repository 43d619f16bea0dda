package visit

import "errors"

var (
	ErrVisitNotFound      = errors.New("no active visit for patient")
	ErrVisitAlreadyActive = errors.New("patient visit is ongoing")
	ErrVisitNotActive     = errors.New("visit is already discharged")
	ErrAlreadyAssigned    = errors.New("patient is already assigned to a room")
	ErrNotAssigned        = errors.New("patient is not assigned to a room")
)
