package ward

import "errors"

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomAlreadyExists     = errors.New("room with given name already exists")
	ErrRoomHasOccupiedBeds   = errors.New("room has occupied beds")
	ErrBedNotFound           = errors.New("bed not found")
	ErrBedNotVacant          = errors.New("bed is not vacant")
	ErrInvalidBedTransition  = errors.New("invalid bed status transition")
	ErrInsufficientVacantBeds = errors.New("not enough vacant beds available to remove")
	ErrNoVacantBeds          = errors.New("no vacant beds in room")
	ErrNegativeBedCount      = errors.New("bed count cannot be negative")
)
