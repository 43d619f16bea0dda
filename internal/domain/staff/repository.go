package staff

import (
	"context"

	"github.com/syncura360/api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error

	// GetByUsername returns ErrStaffNotFound when the username is unknown.
	GetByUsername(ctx context.Context, username string) (*Staff, error)

	Update(ctx context.Context, s *Staff) error
	UpdatePassword(ctx context.Context, username, hash string) error

	ExistsByUsername(ctx context.Context, username string) (bool, error)

	ListByHospital(ctx context.Context, hospitalID uint) ([]*Staff, error)
	ListByHospitalAndRole(ctx context.Context, hospitalID uint, role domain.Role) ([]*Staff, error)
}
