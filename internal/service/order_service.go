package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PrintfAman/nexo/internal/entity"
	"github.com/PrintfAman/nexo/internal/messaging"
	"github.com/PrintfAman/nexo/internal/pricing"
	"github.com/PrintfAman/nexo/internal/repository"
)

// DefaultOrdersTopic is the topic OrderPlaced events are published to.
const DefaultOrdersTopic = "orders.placed"

const publishTimeout = 3 * time.Second

// OrderService runs checkout and serves the order history.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	idempotency repository.IdempotencyStore // nil-safe: keys are ignored if nil
	publisher   messaging.Publisher
	rules       pricing.Rules
	ordersTopic string
}

// NewOrderService creates the checkout service. idempotency may be nil, in
// which case Idempotency-Key values are ignored.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	idempotency repository.IdempotencyStore,
	publisher messaging.Publisher,
	rules pricing.Rules,
	ordersTopic string,
) *OrderService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if ordersTopic == "" {
		ordersTopic = DefaultOrdersTopic
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		idempotency: idempotency,
		publisher:   publisher,
		rules:       rules,
		ordersTopic: ordersTopic,
	}
}

// GetOrder returns the order with the given code.
func (s *OrderService) GetOrder(ctx context.Context, code string) (*entity.Order, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, entity.ErrOrderNotFound
	}
	return s.orderRepo.FindByCode(ctx, code)
}

// ListOrders returns all orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.orderRepo.List(ctx)
}

// PlaceOrder validates the command, prices it against the catalog, stores the
// order and returns its receipt. The cart is left untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, cmd *entity.PlaceOrder) (*entity.Receipt, error) {
	if cmd.IdempotencyKey != "" && s.idempotency != nil {
		return s.placeOrderOnce(ctx, cmd)
	}
	return s.placeOrder(ctx, cmd)
}

func (s *OrderService) placeOrderOnce(ctx context.Context, cmd *entity.PlaceOrder) (*entity.Receipt, error) {
	key := cmd.IdempotencyKey

	reserved, err := s.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return s.replay(ctx, key)
	}

	receipt, err := s.placeOrder(ctx, cmd)
	if err != nil {
		if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
			slog.Error("Failed to release idempotency key", "err", relErr)
		}
		return nil, err
	}

	// The order is committed at this point, so a failed bind only costs
	// replay protection for this key.
	if err := s.idempotency.Bind(context.WithoutCancel(ctx), key, receipt.OrderID); err != nil {
		slog.Error("Failed to bind idempotency key", "order_id", receipt.OrderID, "err", err)
	}
	return receipt, nil
}

func (s *OrderService) replay(ctx context.Context, key string) (*entity.Receipt, error) {
	code, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found || code == "" {
		return nil, entity.ErrCheckoutInFlight
	}

	order, err := s.orderRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s for replay: %w", code, err)
	}
	slog.Info("Service: Replaying checkout", "order_id", code)
	return entity.NewReceipt(order), nil
}

func (s *OrderService) placeOrder(ctx context.Context, cmd *entity.PlaceOrder) (*entity.Receipt, error) {
	customer, err := validatePlaceOrder(cmd)
	if err != nil {
		return nil, err
	}
	slog.Info("Service: Placing order", "items", len(cmd.Lines))

	items := make([]entity.OrderItem, 0, len(cmd.Lines))
	lines := make([]pricing.Line, 0, len(cmd.Lines))
	for _, l := range cmd.Lines {
		p, err := s.productRepo.FindByID(ctx, l.ProductID)
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", entity.ErrUnknownProduct, l.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %d: %w", l.ProductID, err)
		}

		line := pricing.Line{UnitPrice: p.Price, Quantity: l.Quantity}
		lines = append(lines, line)
		items = append(items, entity.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  l.Quantity,
			LineTotal: line.Total(),
		})
	}

	quote := s.rules.Price(lines)
	if quote.GrandTotal.GreaterThan(entity.MaxAmount) {
		return nil, entity.ErrOrderTooLarge
	}

	order := &entity.Order{
		Code:            s.orderRepo.NextOrderCode(),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		ShippingAddress: shippingAddress(customer),
		Items:           items,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.GrandTotal,
		Currency:        quote.Currency,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	slog.Info("Order placed", "order_id", order.Code, "total", order.Total.StringFixed(2))

	s.publishOrderPlaced(ctx, order)

	return entity.NewReceipt(order), nil
}

// publishOrderPlaced notifies downstream consumers. The order is already
// committed, so failures are logged and not returned.
func (s *OrderService) publishOrderPlaced(ctx context.Context, o *entity.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := entity.OrderPlaced{
		OrderID:       o.Code,
		CustomerEmail: o.CustomerEmail,
		Items:         o.Items,
		Total:         o.Total,
		Currency:      o.Currency,
		PlacedAt:      o.CreatedAt,
	}
	if err := s.publisher.PublishEvent(ctx, s.ordersTopic, o.Code, event); err != nil {
		slog.Error("Failed to publish OrderPlaced", "order_id", o.Code, "err", err)
	}
}

func validatePlaceOrder(cmd *entity.PlaceOrder) (entity.Customer, error) {
	if len(cmd.Lines) == 0 {
		return entity.Customer{}, entity.ErrInvalidCart
	}

	c := cmd.Customer
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" || c.Email == "" {
		return entity.Customer{}, entity.ErrInvalidCustomer
	}

	for _, l := range cmd.Lines {
		if l.ProductID <= 0 {
			return entity.Customer{}, entity.ErrInvalidID
		}
		if l.Quantity <= 0 || l.Quantity > entity.MaxLineQuantity {
			return entity.Customer{}, entity.ErrInvalidQuantity
		}
	}
	return c, nil
}

// shippingAddress renders "address, city, state - pincode", skipping parts
// that are empty.
func shippingAddress(c entity.Customer) string {
	var parts []string
	for _, p := range []string{c.Address, c.City, c.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	addr := strings.Join(parts, ", ")

	if pin := strings.TrimSpace(c.Pincode); pin != "" {
		if addr == "" {
			return pin
		}
		addr += " - " + pin
	}
	return addr
}
