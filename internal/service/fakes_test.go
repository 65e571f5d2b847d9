package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/PrintfAman/nexo/internal/entity"
)

type memProducts struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]entity.Product
}

func newMemProducts() *memProducts {
	return &memProducts{products: map[int64]entity.Product{}}
}

func (r *memProducts) add(name, price string) entity.Product {
	p, _ := r.Create(context.Background(), entity.NewProduct{
		Name:     name,
		Category: "unisex",
		Price:    decimal.RequireFromString(price),
		Image:    name + ".jpg",
		Stock:    entity.DefaultStock,
	})
	return *p
}

func (r *memProducts) setPrice(id int64, price string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	p.Price = decimal.RequireFromString(price)
	r.products[id] = p
}

func (r *memProducts) FindAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProducts) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, entity.ErrProductNotFound
	}
	return &p, nil
}

func (r *memProducts) Create(ctx context.Context, np entity.NewProduct) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p := entity.Product{
		ID:          r.nextID,
		Name:        np.Name,
		Category:    np.Category,
		Price:       np.Price,
		Image:       np.Image,
		Description: np.Description,
		Stock:       np.Stock,
	}
	r.products[p.ID] = p
	return &p, nil
}

func (r *memProducts) Seed(ctx context.Context, products []entity.NewProduct) error {
	r.mu.Lock()
	n := len(r.products)
	r.mu.Unlock()
	if n > 0 {
		return nil
	}
	for _, np := range products {
		if _, err := r.Create(ctx, np); err != nil {
			return err
		}
	}
	return nil
}

type memCart struct {
	mu       sync.Mutex
	products *memProducts
	nextID   int64
	lines    []entity.CartLine
}

func newMemCart(products *memProducts) *memCart {
	return &memCart{products: products}
}

func (c *memCart) List(ctx context.Context) ([]entity.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := []entity.CartItem{}
	for _, l := range c.lines {
		p, err := c.products.FindByID(ctx, l.ProductID)
		if err != nil {
			continue
		}
		items = append(items, entity.CartItem{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.Image,
		})
	}
	return items, nil
}

func (c *memCart) AddQuantity(ctx context.Context, productID int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if c.lines[i].Quantity+quantity > entity.MaxLineQuantity {
				return entity.ErrInvalidQuantity
			}
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.nextID++
	c.lines = append(c.lines, entity.CartLine{ID: c.nextID, ProductID: productID, Quantity: quantity})
	return nil
}

func (c *memCart) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity == 0 {
		return c.Remove(ctx, productID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	c.nextID++
	c.lines = append(c.lines, entity.CartLine{ID: c.nextID, ProductID: productID, Quantity: quantity})
	return nil
}

func (c *memCart) Remove(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	return nil
}

func (c *memCart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return nil
}

type memOrders struct {
	mu     sync.Mutex
	nextID int64
	orders map[string]entity.Order
	seq    []string
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[string]entity.Order{}}
}

func (r *memOrders) NextOrderCode() string {
	return entity.NewOrderCode()
}

func (r *memOrders) Create(ctx context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.Code]; ok {
		return entity.ErrDuplicateOrderCode
	}
	r.nextID++
	o.ID = r.nextID
	o.CreatedAt = time.Now().UTC()

	stored := *o
	stored.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders[o.Code] = stored
	r.seq = append(r.seq, o.Code)
	return nil
}

func (r *memOrders) FindByCode(ctx context.Context, code string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[code]
	if !ok {
		return nil, entity.ErrOrderNotFound
	}
	return &o, nil
}

func (r *memOrders) List(ctx context.Context) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Order, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		out = append(out, r.orders[r.seq[i]])
	}
	return out, nil
}

func (r *memOrders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: map[string]string{}}
}

func (s *memIdempotency) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = ""
	return true, nil
}

func (s *memIdempotency) Bind(ctx context.Context, key, orderCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = orderCode
	return nil
}

func (s *memIdempotency) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *memIdempotency) Lookup(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.keys[key]
	return code, ok, nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) NextOrderCode() string {
	return m.Called().String(0)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindByCode(ctx context.Context, code string) (*entity.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Error(1)
}
