package repository

import (
	"context"

	"github.com/PrintfAman/nexo/internal/entity"
)

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, p entity.NewProduct) (*entity.Product, error)
	// Seed inserts initial products if none exist.
	Seed(ctx context.Context, products []entity.NewProduct) error
}

// CartRepository handles persistence for the cart lines.
type CartRepository interface {
	// List returns the cart lines joined with current product data.
	List(ctx context.Context) ([]entity.CartItem, error)
	// AddQuantity inserts a line or increments the existing one.
	AddQuantity(ctx context.Context, productID int64, quantity int) error
	// SetQuantity overwrites the line quantity. Zero removes the line.
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	NextOrderCode() string
	// Create writes the order and fills in its storage-assigned fields.
	Create(ctx context.Context, order *entity.Order) error
	FindByCode(ctx context.Context, code string) (*entity.Order, error)
	// List returns orders, most recent first.
	List(ctx context.Context) ([]entity.Order, error)
}

// IdempotencyStore remembers which order a checkout idempotency key produced.
type IdempotencyStore interface {
	// Reserve claims the key. It returns false if the key is already taken.
	Reserve(ctx context.Context, key string) (bool, error)
	// Bind records the order code the key produced.
	Bind(ctx context.Context, key, orderCode string) error
	// Release drops a reservation so the key can be retried.
	Release(ctx context.Context, key string) error
	// Lookup returns the bound order code, or "" while the key is only
	// reserved. found is false if the key is unknown.
	Lookup(ctx context.Context, key string) (orderCode string, found bool, err error)
}
