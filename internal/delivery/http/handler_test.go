package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PrintfAman/nexo/internal/entity"
)

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockCatalog) CreateProduct(ctx context.Context, np entity.NewProduct) (*entity.Product, error) {
	args := m.Called(ctx, np)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

type MockCart struct{ mock.Mock }

func (m *MockCart) cart(args mock.Arguments) (*entity.Cart, error) {
	c, _ := args.Get(0).(*entity.Cart)
	return c, args.Error(1)
}

func (m *MockCart) GetCart(ctx context.Context) (*entity.Cart, error) {
	return m.cart(m.Called(ctx))
}

func (m *MockCart) AddItem(ctx context.Context, productID int64, quantity int) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, productID, quantity))
}

func (m *MockCart) SetQuantity(ctx context.Context, productID int64, quantity int) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, productID, quantity))
}

func (m *MockCart) RemoveItem(ctx context.Context, productID int64) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, productID))
}

func (m *MockCart) Clear(ctx context.Context) (*entity.Cart, error) {
	return m.cart(m.Called(ctx))
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) PlaceOrder(ctx context.Context, cmd *entity.PlaceOrder) (*entity.Receipt, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*entity.Receipt)
	return r, args.Error(1)
}

func (m *MockOrders) GetOrder(ctx context.Context, code string) (*entity.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

func (m *MockOrders) ListOrders(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type testAPI struct {
	catalog *MockCatalog
	cart    *MockCart
	orders  *MockOrders
	router  http.Handler
}

func newTestAPI(pingErr error) testAPI {
	api := testAPI{
		catalog: new(MockCatalog),
		cart:    new(MockCart),
		orders:  new(MockOrders),
	}
	api.router = NewRouter(NewHandler(api.catalog, api.cart, api.orders, stubPinger{err: pingErr}))
	return api
}

func (api testAPI) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sampleCart() *entity.Cart {
	return &entity.Cart{
		Items: []entity.CartItem{{
			ID:        1,
			ProductID: 7,
			Quantity:  5,
			Name:      "Relaxed Hoodie",
			Price:     decimal.RequireFromString("1799"),
			Category:  "unisex",
			Image:     "hoodie.jpg",
		}},
		Total: decimal.RequireFromString("8995"),
	}
}

func TestProducts(t *testing.T) {
	api := newTestAPI(nil)
	api.catalog.On("ListProducts", mock.Anything).Return([]entity.Product{
		{ID: 1, Name: "Korean Pant", Category: "women", Price: decimal.RequireFromString("2799"), Image: "pant.jpg", Stock: 100},
	}, nil)
	api.catalog.On("GetProduct", mock.Anything, int64(2)).Return(nil, entity.ErrProductNotFound)

	rec := api.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":2799.00`)

	rec = api.do(t, http.MethodGet, "/api/products/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody(t, rec)["error"])

	rec = api.do(t, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductDefaultsStock(t *testing.T) {
	api := newTestAPI(nil)
	api.catalog.On("CreateProduct", mock.Anything, mock.MatchedBy(func(np entity.NewProduct) bool {
		return np.Stock == entity.DefaultStock && np.Price.Equal(decimal.RequireFromString("499"))
	})).Return(&entity.Product{ID: 13, Name: "Sample Tee", Price: decimal.RequireFromString("499"), Stock: 100}, nil)

	rec := api.do(t, http.MethodPost, "/api/products", `{"name":"Sample Tee","category":"men","price":499,"image":"tee.jpg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	api.catalog.AssertExpectations(t)
}

func TestAddToCart(t *testing.T) {
	t.Run("DefaultQuantity", func(t *testing.T) {
		api := newTestAPI(nil)
		api.cart.On("AddItem", mock.Anything, int64(7), 1).Return(sampleCart(), nil)

		rec := api.do(t, http.MethodPost, "/api/cart", `{"productId":7}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		items := body["items"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.EqualValues(t, 7, item["productId"])
		assert.EqualValues(t, 5, item["quantity"])
		assert.EqualValues(t, 8995, item["lineTotal"])
		assert.EqualValues(t, 8995, body["total"])
		api.cart.AssertExpectations(t)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		api := newTestAPI(nil)
		rec := api.do(t, http.MethodPost, "/api/cart", `{"quantity":2}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		api := newTestAPI(nil)
		api.cart.On("AddItem", mock.Anything, int64(99), 1).Return(nil, entity.ErrProductNotFound)

		rec := api.do(t, http.MethodPost, "/api/cart", `{"productId":99}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		api := newTestAPI(nil)
		api.cart.On("AddItem", mock.Anything, int64(7), 0).Return(nil, entity.ErrInvalidQuantity)

		rec := api.do(t, http.MethodPost, "/api/cart", `{"productId":7,"quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_input", decodeBody(t, rec)["error"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		api := newTestAPI(nil)
		rec := api.do(t, http.MethodPost, "/api/cart", `{"productId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("WrongMediaType", func(t *testing.T) {
		api := newTestAPI(nil)
		req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId":7}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestCartMutations(t *testing.T) {
	api := newTestAPI(nil)
	empty := &entity.Cart{Items: []entity.CartItem{}, Total: decimal.Zero}
	api.cart.On("SetQuantity", mock.Anything, int64(7), 3).Return(sampleCart(), nil)
	api.cart.On("RemoveItem", mock.Anything, int64(8)).Return(sampleCart(), nil)
	api.cart.On("Clear", mock.Anything).Return(empty, nil)

	rec := api.do(t, http.MethodPut, "/api/cart/7", `{"quantity":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/cart/7", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/cart/8", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0.00}`, rec.Body.String())

	api.cart.AssertExpectations(t)
}

func TestCheckout(t *testing.T) {
	placedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	receipt := &entity.Receipt{
		OrderID:  "ORD-ABCDEFGH",
		Name:     "Asha",
		Email:    "asha@example.com",
		Subtotal: decimal.RequireFromString("1000"),
		Tax:      decimal.RequireFromString("180"),
		Shipping: decimal.Zero,
		Total:    decimal.RequireFromString("1180"),
		Currency: "INR",
		Items: []entity.OrderItem{{
			ProductID: 3,
			Name:      "Tee",
			Price:     decimal.RequireFromString("500"),
			Quantity:  2,
			LineTotal: decimal.RequireFromString("1000"),
		}},
		PlacedAt: placedAt,
	}
	body := `{"cartItems":[{"productId":3,"quantity":2,"price":1}],"customerInfo":{"name":"Asha","email":"asha@example.com"}}`

	t.Run("Created", func(t *testing.T) {
		api := newTestAPI(nil)
		api.orders.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(cmd *entity.PlaceOrder) bool {
			return len(cmd.Lines) == 1 &&
				cmd.Lines[0] == entity.CheckoutLine{ProductID: 3, Quantity: 2} &&
				cmd.Customer.Email == "asha@example.com" &&
				cmd.IdempotencyKey == "abc-123"
		})).Return(receipt, nil)

		rec := api.do(t, http.MethodPost, "/api/checkout", body, IdempotencyKeyHeader, "abc-123")
		require.Equal(t, http.StatusCreated, rec.Code)

		assert.Contains(t, rec.Body.String(), `"total":1180.00`)
		assert.Contains(t, rec.Body.String(), `"tax":180.00`)
		assert.Contains(t, rec.Body.String(), `"shipping":0.00`)

		out := decodeBody(t, rec)
		assert.Equal(t, "ORD-ABCDEFGH", out["orderId"])
		assert.Equal(t, "INR", out["currency"])
		assert.Equal(t, "Order placed successfully", out["message"])
		assert.Equal(t, "2026-01-02T03:04:05Z", out["timestamp"])
		api.orders.AssertExpectations(t)
	})

	errs := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"EmptyCart", entity.ErrInvalidCart, http.StatusBadRequest, "invalid_input"},
		{"QuantityAboveMax", entity.ErrInvalidQuantity, http.StatusBadRequest, "invalid_input"},
		{"TotalTooLarge", entity.ErrOrderTooLarge, http.StatusBadRequest, "invalid_input"},
		{"UnknownProduct", entity.ErrUnknownProduct, http.StatusNotFound, "not_found"},
		{"InFlight", entity.ErrCheckoutInFlight, http.StatusConflict, "conflict"},
		{"Storage", errors.New("failed to persist order: connection reset"), http.StatusInternalServerError, "storage_failure"},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(nil)
			api.orders.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := api.do(t, http.MethodPost, "/api/checkout", body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, decodeBody(t, rec)["error"])
		})
	}
}

func TestOrders(t *testing.T) {
	api := newTestAPI(nil)
	order := entity.Order{
		Code:          "ORD-ABCDEFGH",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Total:         decimal.RequireFromString("522"),
		Currency:      "INR",
		Items:         []entity.OrderItem{},
	}
	api.orders.On("ListOrders", mock.Anything).Return([]entity.Order{order}, nil)
	api.orders.On("GetOrder", mock.Anything, "ORD-ABCDEFGH").Return(&order, nil)
	api.orders.On("GetOrder", mock.Anything, "ORD-MISSING0").Return(nil, entity.ErrOrderNotFound)

	rec := api.do(t, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orderId":"ORD-ABCDEFGH"`)

	rec = api.do(t, http.MethodGet, "/api/orders/ORD-ABCDEFGH", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":522.00`)

	rec = api.do(t, http.MethodGet, "/api/orders/ORD-MISSING0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := newTestAPI(nil).do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	rec = newTestAPI(errors.New("connection refused")).do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := newTestAPI(nil).do(t, http.MethodOptions, "/api/checkout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)
}
