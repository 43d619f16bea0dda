package ward

import "context"

type RoomRepository interface {
	Create(ctx context.Context, r *Room) error

	// Get returns ErrRoomNotFound when no room matches the key.
	Get(ctx context.Context, id RoomID) (*Room, error)

	Exists(ctx context.Context, id RoomID) (bool, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id RoomID) error
	ListByHospital(ctx context.Context, hospitalID uint) ([]*Room, error)
}

type BedRepository interface {
	// CreateBatch adds n vacant beds to the room, numbering them after the
	// current highest bed number.
	CreateBatch(ctx context.Context, room RoomID, n int) error

	CountByRoom(ctx context.Context, room RoomID) (int, error)
	CountByRoomAndStatus(ctx context.Context, room RoomID, status BedStatus) (int, error)
	Counts(ctx context.Context, room RoomID) (BedCounts, error)

	// DeleteVacant removes up to n vacant beds and reports how many rows went
	// away. Occupied and maintenance beds are never touched.
	DeleteVacant(ctx context.Context, room RoomID, n int) (int, error)

	DeleteAllInRoom(ctx context.Context, room RoomID) error

	// FirstByStatusForUpdate locks and returns the lowest-numbered bed in the
	// given status, or ErrBedNotFound. The row lock serializes concurrent
	// assignment attempts racing for the same bed.
	FirstByStatusForUpdate(ctx context.Context, room RoomID, status BedStatus) (*Bed, error)

	SetStatus(ctx context.Context, b *Bed, status BedStatus) error
}

type EquipmentRepository interface {
	ListByRoom(ctx context.Context, room RoomID) ([]Equipment, error)

	// ReplaceForRoom swaps the room's equipment set for the given one.
	ReplaceForRoom(ctx context.Context, room RoomID, items []EquipmentForm) error

	DeleteForRoom(ctx context.Context, room RoomID) error
}
