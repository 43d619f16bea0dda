package catalog

import "context"

type DrugRepository interface {
	Create(ctx context.Context, d *Drug) error

	// Get returns ErrDrugNotFound when the ndc is not in the hospital's
	// formulary.
	Get(ctx context.Context, id DrugID) (*Drug, error)

	// GetForUpdate locks the drug row; the administration transaction holds
	// the lock across the inventory check and decrement.
	GetForUpdate(ctx context.Context, id DrugID) (*Drug, error)

	Exists(ctx context.Context, id DrugID) (bool, error)
	Update(ctx context.Context, d *Drug) error
	Delete(ctx context.Context, id DrugID) error
	ListByHospital(ctx context.Context, hospitalID uint) ([]*Drug, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	Get(ctx context.Context, id ServiceID) (*Service, error)
	Exists(ctx context.Context, id ServiceID) (bool, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id ServiceID) error
	ListByHospital(ctx context.Context, hospitalID uint) ([]*Service, error)
}
