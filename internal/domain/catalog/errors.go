package catalog

import "errors"

var (
	ErrDrugNotFound          = errors.New("drug with given ndc does not exist")
	ErrDrugAlreadyExists     = errors.New("drug with given ndc already exists")
	ErrServiceNotFound       = errors.New("service not found")
	ErrServiceAlreadyExists  = errors.New("service with given name already exists")
	ErrInsufficientInventory = errors.New("insufficient drug inventory")
	ErrNegativeQuantity      = errors.New("quantity cannot be negative")
	ErrNegativePrice         = errors.New("price cannot be negative")
)
