package visit

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visit) error

	// Get returns ErrVisitNotFound when no visit matches the key.
	Get(ctx context.Context, id VisitID) (*Visit, error)

	// FindActive returns the single undischarged visit for the patient at the
	// hospital, or ErrVisitNotFound.
	FindActive(ctx context.Context, hospitalID, patientID uint) (*Visit, error)

	// FindActiveForUpdate is FindActive with a row lock, used inside the
	// admission transaction to serialize the lookup-before-insert.
	FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*Visit, error)

	Update(ctx context.Context, v *Visit) error

	ListActive(ctx context.Context, hospitalID uint) ([]*Visit, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *RoomAssignment) error

	// FindActive returns the patient's current (is_removed=false) assignment,
	// or ErrNotAssigned.
	FindActive(ctx context.Context, hospitalID, patientID uint) (*RoomAssignment, error)

	FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*RoomAssignment, error)

	// MarkRemoved soft-releases the assignment.
	MarkRemoved(ctx context.Context, a *RoomAssignment) error

	ListForVisit(ctx context.Context, id VisitID) ([]RoomAssignment, error)
}

type LedgerRepository interface {
	AddService(ctx context.Context, e *ServiceProvided) error
	AddDrug(ctx context.Context, e *DrugAdministered) error

	ServicesForVisit(ctx context.Context, id VisitID) ([]ServiceProvided, error)
	DrugsForVisit(ctx context.Context, id VisitID) ([]DrugAdministered, error)
}
