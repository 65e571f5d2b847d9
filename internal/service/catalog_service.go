package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/repository"
)

// CatalogService serves the product catalog.
type CatalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// ListProducts returns all products ordered by id.
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, entity.ErrInvalidID
	}
	return s.productRepo.FindByID(ctx, id)
}

// CreateProduct adds a product to the catalog. It backs seeding and dev
// tooling only.
func (s *CatalogService) CreateProduct(ctx context.Context, np entity.NewProduct) (*entity.Product, error) {
	np.Name = strings.TrimSpace(np.Name)
	np.Category = strings.TrimSpace(np.Category)
	np.Image = strings.TrimSpace(np.Image)

	if np.Name == "" || np.Category == "" || np.Image == "" {
		return nil, fmt.Errorf("%w: name, category and image are required", entity.ErrInvalidProduct)
	}
	if np.Price.IsNegative() || np.Price.GreaterThan(entity.MaxAmount) {
		return nil, fmt.Errorf("%w: price must be between 0 and %s", entity.ErrInvalidProduct, entity.MaxAmount)
	}
	if np.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", entity.ErrInvalidProduct)
	}
	np.Price = np.Price.Round(2)

	p, err := s.productRepo.Create(ctx, np)
	if err != nil {
		return nil, err
	}
	slog.Info("Product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// Seed fills an empty catalog with the given products.
func (s *CatalogService) Seed(ctx context.Context, products []entity.NewProduct) error {
	if err := s.productRepo.Seed(ctx, products); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
