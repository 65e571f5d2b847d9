package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStock is the stock count a product gets when none is provided.
const DefaultStock = 100

// MaxLineQuantity is the largest quantity of one product a cart line or an
// order line may hold.
const MaxLineQuantity = 1000

// MaxAmount is the largest money value the ledger stores (NUMERIC(12,2)).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Product represents a product in the store.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
}

// NewProduct holds the fields needed to create a product.
type NewProduct struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Image       string
	Description string
	Stock       int
}

// CartLine is a stored line of the cart. There is at most one line per product.
type CartLine struct {
	ID        int64
	ProductID int64
	Quantity  int
}

// CartItem is a cart line enriched with the current catalog data.
type CartItem struct {
	ID        int64
	ProductID int64
	Quantity  int
	Name      string
	Price     decimal.Decimal
	Category  string
	Image     string
}

// LineTotal returns price × quantity at the current catalog price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the live-priced view of the cart.
type Cart struct {
	Items []CartItem
	Total decimal.Decimal
}

// OrderItem is a line item snapshot within an order. It is frozen at checkout
// and never follows later catalog changes.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Customer is the buyer information submitted at checkout.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// Order represents a customer order.
type Order struct {
	ID              int64
	Code            string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	Currency        string
	CreatedAt       time.Time
}

// Receipt is returned to the buyer after a successful checkout.
type Receipt struct {
	OrderID  string
	Name     string
	Email    string
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	Currency string
	Items    []OrderItem
	PlacedAt time.Time
}

// NewReceipt builds the receipt of a persisted order.
func NewReceipt(o *Order) *Receipt {
	return &Receipt{
		OrderID:  o.Code,
		Name:     o.CustomerName,
		Email:    o.CustomerEmail,
		Subtotal: o.Subtotal,
		Tax:      o.Tax,
		Shipping: o.Shipping,
		Total:    o.Total,
		Currency: o.Currency,
		Items:    o.Items,
		PlacedAt: o.CreatedAt,
	}
}

// --- Commands ---

// CheckoutLine is a requested (product, quantity) pair. It carries no price:
// prices always come from the catalog.
type CheckoutLine struct {
	ProductID int64
	Quantity  int
}

// PlaceOrder is a command to check out a set of lines.
type PlaceOrder struct {
	Lines          []CheckoutLine
	Customer       Customer
	IdempotencyKey string
}

// --- Events ---

// OrderPlaced is emitted when an order is successfully persisted.
type OrderPlaced struct {
	OrderID       string          `json:"orderId"`
	CustomerEmail string          `json:"customerEmail"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PlacedAt      time.Time       `json:"placedAt"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }
