package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *PatientInfo) error

	// GetByID returns ErrPatientNotFound when the id is unknown.
	GetByID(ctx context.Context, id uint) (*PatientInfo, error)

	Update(ctx context.Context, p *PatientInfo) error

	// ExistsByID checks patient existence without fetching the record.
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// ExistsByNaturalKey checks the seven-field demographic uniqueness tuple.
	ExistsByNaturalKey(ctx context.Context, key NaturalKey) (bool, error)

	List(ctx context.Context) ([]*PatientInfo, error)
}
