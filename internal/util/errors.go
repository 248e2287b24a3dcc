// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Base error categories. Every service error wraps exactly one of these so
// the HTTP layer can map them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
	ErrBusinessRule = errors.New("business rule violation")
	ErrPersistence  = errors.New("persistence failure")
)

// Specific errors, each wrapping its category.
var (
	ErrProductNotFound        = fmt.Errorf("%w: product", ErrNotFound)
	ErrBuyerNotFound          = fmt.Errorf("%w: buyer not found or inactive", ErrNotFound)
	ErrUserNotFound           = fmt.Errorf("%w: user", ErrNotFound)
	ErrFeeNotFound            = fmt.Errorf("%w: no fee for country and no default fee configured", ErrNotFound)
	ErrBalanceNotFound        = fmt.Errorf("%w: balance", ErrNotFound)
	ErrNoCommissions          = fmt.Errorf("%w: no commissions configured for this product", ErrNotFound)
	ErrProducerNotFound       = fmt.Errorf("%w: producer account", ErrNotFound)
	ErrPlatformNotFound       = fmt.Errorf("%w: platform account", ErrNotFound)
	ErrCommissionsExceed      = fmt.Errorf("%w: commission percentages exceed 100", ErrBusinessRule)
	ErrAffiliateRequired      = fmt.Errorf("%w: affiliate id is required when an affiliate commission is configured", ErrBusinessRule)
	ErrCoproducerRequired     = fmt.Errorf("%w: coproducer id is required when a coproducer commission is configured", ErrBusinessRule)
	ErrAffiliateRoleMismatch  = fmt.Errorf("%w: affiliate id must reference a user with the AFFILIATE role", ErrBusinessRule)
	ErrCoproducerRoleMismatch = fmt.Errorf("%w: coproducer id must reference a user with the COPRODUCER role", ErrBusinessRule)
	ErrAmbiguousRoleAccount   = fmt.Errorf("%w: more than one user holds this role", ErrBusinessRule)
	ErrDuplicateEntry         = fmt.Errorf("%w: duplicate entry", ErrBusinessRule)
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
