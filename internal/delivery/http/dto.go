package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PrintfAman/nexo/internal/entity"
)

// Money renders a decimal as a JSON number with two fractional digits.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// --- Products ---

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Stock       *int            `json:"stock"`
}

func (r CreateProductRequest) toEntity() entity.NewProduct {
	stock := entity.DefaultStock
	if r.Stock != nil {
		stock = *r.Stock
	}
	return entity.NewProduct{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Stock:       stock,
	}
}

func mapProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       Money(p.Price),
		Image:       p.Image,
		Description: p.Description,
		Stock:       p.Stock,
	}
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID *int64 `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	LineTotal Money  `json:"lineTotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total Money              `json:"total"`
}

func mapCart(c *entity.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Name:      it.Name,
			Price:     Money(it.Price),
			Category:  it.Category,
			Image:     it.Image,
			LineTotal: Money(it.LineTotal()),
		}
	}
	return CartResponse{Items: items, Total: Money(c.Total)}
}

// --- Checkout & orders ---

type CheckoutItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CustomerInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type CheckoutRequest struct {
	CartItems    []CheckoutItemRequest `json:"cartItems"`
	CustomerInfo CustomerInfoRequest   `json:"customerInfo"`
}

func (r CheckoutRequest) toCommand(idempotencyKey string) *entity.PlaceOrder {
	lines := make([]entity.CheckoutLine, len(r.CartItems))
	for i, it := range r.CartItems {
		lines[i] = entity.CheckoutLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	c := r.CustomerInfo
	return &entity.PlaceOrder{
		Lines: lines,
		Customer: entity.Customer{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
			City:    c.City,
			State:   c.State,
			Pincode: c.Pincode,
		},
		IdempotencyKey: idempotencyKey,
	}
}

type OrderItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal Money  `json:"lineTotal"`
}

func mapOrderItems(items []entity.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i, it := range items {
		out[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     Money(it.Price),
			Quantity:  it.Quantity,
			LineTotal: Money(it.LineTotal),
		}
	}
	return out
}

const orderPlacedMessage = "Order placed successfully"

type ReceiptResponse struct {
	OrderID   string              `json:"orderId"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Subtotal  Money               `json:"subtotal"`
	Tax       Money               `json:"tax"`
	Shipping  Money               `json:"shipping"`
	Total     Money               `json:"total"`
	Currency  string              `json:"currency"`
	Items     []OrderItemResponse `json:"items"`
	Timestamp time.Time           `json:"timestamp"`
	Message   string              `json:"message"`
}

func mapReceipt(r *entity.Receipt) ReceiptResponse {
	return ReceiptResponse{
		OrderID:   r.OrderID,
		Name:      r.Name,
		Email:     r.Email,
		Subtotal:  Money(r.Subtotal),
		Tax:       Money(r.Tax),
		Shipping:  Money(r.Shipping),
		Total:     Money(r.Total),
		Currency:  r.Currency,
		Items:     mapOrderItems(r.Items),
		Timestamp: r.PlacedAt.UTC(),
		Message:   orderPlacedMessage,
	}
}

type OrderResponse struct {
	OrderID         string              `json:"orderId"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	ShippingAddress string              `json:"shippingAddress"`
	Subtotal        Money               `json:"subtotal"`
	Tax             Money               `json:"tax"`
	Shipping        Money               `json:"shipping"`
	Total           Money               `json:"total"`
	Currency        string              `json:"currency"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func mapOrder(o entity.Order) OrderResponse {
	return OrderResponse{
		OrderID:         o.Code,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Subtotal:        Money(o.Subtotal),
		Tax:             Money(o.Tax),
		Shipping:        Money(o.Shipping),
		Total:           Money(o.Total),
		Currency:        o.Currency,
		Items:           mapOrderItems(o.Items),
		CreatedAt:       o.CreatedAt.UTC(),
	}
}
