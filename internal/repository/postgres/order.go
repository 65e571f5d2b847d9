package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/repository"
)

const orderColumns = `id, order_code, customer_name, customer_email, customer_phone, shipping_address,
	subtotal, tax, shipping, total, currency, items, created_at`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) NextOrderCode() string {
	return entity.NewOrderCode()
}

// Create writes the order in a single statement, so either the whole order
// is stored or nothing is.
func (r *orderRepository) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO orders (order_code, customer_name, customer_email, customer_phone, shipping_address,
			subtotal, tax, shipping, total, currency, items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		o.Code, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.ShippingAddress,
		o.Subtotal, o.Tax, o.Shipping, o.Total, o.Currency, items,
	).Scan(&o.ID, &o.CreatedAt)
	if isErrorCode(err, pgerrcode.UniqueViolation) {
		return fmt.Errorf("failed to insert order %s: %w", o.Code, entity.ErrDuplicateOrderCode)
	}
	if isErrorCode(err, pgerrcode.NumericValueOutOfRange) {
		return fmt.Errorf("failed to insert order %s: %w", o.Code, entity.ErrOrderTooLarge)
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByCode(ctx context.Context, code string) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_code = $1", code)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order %s: %w", code, err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (entity.Order, error) {
	var (
		o     entity.Order
		items []byte
	)
	err := row.Scan(
		&o.ID, &o.Code, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.ShippingAddress,
		&o.Subtotal, &o.Tax, &o.Shipping, &o.Total, &o.Currency, &items, &o.CreatedAt,
	)
	if err != nil {
		return entity.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return entity.Order{}, fmt.Errorf("failed to unmarshal items of order %s: %w", o.Code, err)
	}
	return o, nil
}
