package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository backed by Postgres.
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) List(ctx context.Context) ([]entity.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.product_id, c.quantity, p.name, p.price, p.category, p.image
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	items := []entity.CartItem{}
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Name, &it.Price, &it.Category, &it.Image); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart: %w", err)
	}
	return items, nil
}

// AddQuantity increments the line in one statement. The update is skipped
// when the sum would pass entity.MaxLineQuantity, leaving the line as it was.
func (r *cartRepository) AddQuantity(ctx context.Context, productID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_lines (product_id, quantity) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		WHERE cart_lines.quantity::BIGINT + EXCLUDED.quantity <= $3`,
		productID, quantity, entity.MaxLineQuantity,
	)
	if err := mapCartError(err); err != nil {
		return fmt.Errorf("failed to add cart line for product %d: %w", productID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add cart line for product %d: %w", productID, err)
	}
	if n == 0 {
		return entity.ErrInvalidQuantity
	}
	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity == 0 {
		return r.Remove(ctx, productID)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_lines (product_id, quantity) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		productID, quantity,
	)
	if err := mapCartError(err); err != nil {
		return fmt.Errorf("failed to set cart line for product %d: %w", productID, err)
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, productID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_lines WHERE product_id = $1", productID); err != nil {
		return fmt.Errorf("failed to remove cart line for product %d: %w", productID, err)
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_lines"); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func mapCartError(err error) error {
	switch {
	case err == nil:
		return nil
	case isErrorCode(err, pgerrcode.ForeignKeyViolation):
		return entity.ErrProductNotFound
	case isErrorCode(err, pgerrcode.NumericValueOutOfRange), isErrorCode(err, pgerrcode.CheckViolation):
		return entity.ErrInvalidQuantity
	}
	return err
}
