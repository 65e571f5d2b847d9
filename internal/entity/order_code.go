package entity

import (
	"encoding/base32"

	"github.com/google/uuid"
)

// OrderCodePrefix starts every order code.
const OrderCodePrefix = "ORD-"

// NewOrderCode returns a human-readable order code such as "ORD-K3J9QW2M".
//
// The suffix is the base32 form of the first five bytes of a random UUID,
// which are all random bits (the version and variant bits live further in).
// That gives 40 bits per code and needs no coordination between callers.
func NewOrderCode() string {
	id := uuid.New()
	return OrderCodePrefix + base32.StdEncoding.EncodeToString(id[:5])
}
