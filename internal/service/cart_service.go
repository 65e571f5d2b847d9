package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/repository"
)

// CartService manages the single store-wide cart.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the cart priced at the current catalog prices.
func (s *CartService) GetCart(ctx context.Context) (*entity.Cart, error) {
	items, err := s.cartRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return &entity.Cart{Items: items, Total: total}, nil
}

// AddItem adds quantity units of a product. An existing line for the same
// product is incremented, so adding 2 then 3 leaves one line of 5. The line
// may not grow past entity.MaxLineQuantity.
func (s *CartService) AddItem(ctx context.Context, productID int64, quantity int) (*entity.Cart, error) {
	if productID <= 0 {
		return nil, entity.ErrInvalidID
	}
	if quantity <= 0 || quantity > entity.MaxLineQuantity {
		return nil, entity.ErrInvalidQuantity
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	slog.Info("Service: Adding item to cart", "product_id", productID, "quantity", quantity)
	if err := s.cartRepo.AddQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx)
}

// SetQuantity overwrites the quantity of a line. Zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID int64, quantity int) (*entity.Cart, error) {
	if productID <= 0 {
		return nil, entity.ErrInvalidID
	}
	if quantity < 0 || quantity > entity.MaxLineQuantity {
		return nil, entity.ErrInvalidQuantity
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	slog.Info("Service: Setting cart quantity", "product_id", productID, "quantity", quantity)
	if err := s.cartRepo.SetQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx)
}

// RemoveItem drops the line for a product. Removing a product that is not in
// the cart succeeds and leaves the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, productID int64) (*entity.Cart, error) {
	if productID <= 0 {
		return nil, entity.ErrInvalidID
	}
	if err := s.cartRepo.Remove(ctx, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx)
}

func (s *CartService) Clear(ctx context.Context) (*entity.Cart, error) {
	if err := s.cartRepo.Clear(ctx); err != nil {
		return nil, err
	}
	slog.Info("Service: Cart cleared")
	return &entity.Cart{Items: []entity.CartItem{}, Total: decimal.Zero}, nil
}
