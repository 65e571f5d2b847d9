package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PrintfAman/nexo/internal/entity"
)

// CatalogService is the catalog part of the core used by the handlers.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, np entity.NewProduct) (*entity.Product, error)
}

type CartService interface {
	GetCart(ctx context.Context) (*entity.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) (*entity.Cart, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, productID int64) (*entity.Cart, error)
	Clear(ctx context.Context) (*entity.Cart, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, cmd *entity.PlaceOrder) (*entity.Receipt, error)
	GetOrder(ctx context.Context, code string) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
}

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// IdempotencyKeyHeader carries the client key that makes checkout retry-safe.
const IdempotencyKeyHeader = "Idempotency-Key"

// Handler handles HTTP requests for the application.
type Handler struct {
	catalog CatalogService
	cart    CartService
	orders  OrderService
	db      Pinger
}

func NewHandler(catalog CatalogService, cart CartService, orders OrderService, db Pinger) *Handler {
	return &Handler{
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		db:      db,
	}
}

// --- Products ---

func (h *Handler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(*p))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req.toEntity())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(*p))
}

// --- Cart ---

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.GetCart(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == nil {
		writeServiceError(w, r, fmt.Errorf("%w: productId is required", entity.ErrInvalidInput))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cart.AddItem(r.Context(), *req.ProductID, quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (h *Handler) handleSetCartQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "productId")
	if !ok {
		return
	}

	var req SetQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeServiceError(w, r, fmt.Errorf("%w: quantity is required", entity.ErrInvalidInput))
		return
	}

	cart, err := h.cart.SetQuantity(r.Context(), productID, *req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "productId")
	if !ok {
		return
	}

	cart, err := h.cart.RemoveItem(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Clear(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

// --- Checkout & orders ---

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	receipt, err := h.orders.PlaceOrder(r.Context(), req.toCommand(key))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapReceipt(receipt))
}

func (h *Handler) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrder(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), urlParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(*o))
}

// --- Health ---

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Error("Health check failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Message: "database unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Nexo API is running",
	})
}
