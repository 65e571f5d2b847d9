package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/repository"
)

const productColumns = "id, name, category, price, image, description, stock"

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description, &p.Stock)
	return p, err
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, np entity.NewProduct) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, category, price, image, description, stock) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+productColumns,
		np.Name, np.Category, np.Price, np.Image, np.Description, np.Stock,
	)
	p, err := scanProduct(row)
	if isErrorCode(err, pgerrcode.NumericValueOutOfRange) {
		return nil, fmt.Errorf("%w: price is out of range", entity.ErrInvalidProduct)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Seed(ctx context.Context, products []entity.NewProduct) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil // already seeded
	}

	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO products (name, category, price, image, description, stock) VALUES ($1, $2, $3, $4, $5, $6)",
			p.Name, p.Category, p.Price, p.Image, p.Description, p.Stock,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
