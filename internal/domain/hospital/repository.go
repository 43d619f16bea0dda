package hospital

import "context"

type Repository interface {
	// Create persists a new hospital and populates its id.
	Create(ctx context.Context, h *Hospital) error

	// GetByID returns ErrHospitalNotFound when the id is unknown.
	GetByID(ctx context.Context, id uint) (*Hospital, error)

	Update(ctx context.Context, h *Hospital) error

	// ExistsByAddressLine1 checks the address uniqueness constraint without
	// fetching the full record.
	ExistsByAddressLine1(ctx context.Context, addressLine1 string) (bool, error)

	ExistsByTelephone(ctx context.Context, telephone string) (bool, error)
}
