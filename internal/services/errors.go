// internal/services/errors.go
package services

import "errors"

// Service-level sentinel errors. Handlers map these to HTTP statuses with
// errors.Is; everything else is treated as an internal failure.
var (
	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidOwner is returned when a mutating call carries no usable
	// owner identity, or an owner with both sides set.
	ErrInvalidOwner = errors.New("invalid owner")

	// ErrInvalidRating is returned when a rating value is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidPriceRange is returned when price_min exceeds price_max.
	ErrInvalidPriceRange = errors.New("price_min must not exceed price_max")

	// ErrInvalidSort is returned for an unknown sort key.
	ErrInvalidSort = errors.New("invalid sort key")

	// ErrInvalidPagination is returned for a non-positive page or limit.
	ErrInvalidPagination = errors.New("page and limit must be positive")

	// ErrConflict is returned when a write lost a race twice in a row and
	// the caller should retry.
	ErrConflict = errors.New("write conflict, retry")
)
