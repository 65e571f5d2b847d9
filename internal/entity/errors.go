package entity

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps one of them, or is
// an unexpected storage failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrInvalidCart     = fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	ErrInvalidCustomer = fmt.Errorf("%w: customer name and email are required", ErrInvalidInput)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be a positive integer no greater than %d", ErrInvalidInput, MaxLineQuantity)
	ErrInvalidProduct  = fmt.Errorf("%w: product fields are invalid", ErrInvalidInput)
	ErrInvalidID       = fmt.Errorf("%w: product id must be a positive integer", ErrInvalidInput)
	ErrOrderTooLarge   = fmt.Errorf("%w: order total exceeds the maximum amount", ErrInvalidInput)

	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)
	ErrUnknownProduct  = fmt.Errorf("%w: unknown product", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("%w: order", ErrNotFound)

	ErrCheckoutInFlight = fmt.Errorf("%w: checkout with this idempotency key is in progress", ErrConflict)

	// ErrDuplicateOrderCode is a storage failure: the ledger refused to
	// overwrite an existing order code.
	ErrDuplicateOrderCode = errors.New("duplicate order code")
)
