package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-api/models"
	"storefront-api/store"
)

// memStore is an in-memory store.Store good enough for workflow tests.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[string]models.User
	products map[int64]models.Product
	carts    map[int64]models.Cart
	orders   map[int64]models.Order

	placeOrderErr  error
	checkouts      []store.CheckoutOptions
	beforeCheckout func()
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		products: map[int64]models.Product{},
		carts:    map[int64]models.Cart{},
		orders:   map[int64]models.Order{},
	}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.users[key]; ok {
		return store.ErrDuplicate
	}
	u.ID = m.id()
	m.users[key] = *u
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) CreateProduct(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.products[p.ID] = *p
	return nil
}

func (m *memStore) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListProducts(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListCategories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	all, _ := m.ListProducts(ctx)
	out := []models.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Category), strings.ToLower(category)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ProductsByIDs(_ context.Context, ids []int64) (map[int64]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int64]models.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) GetCart(_ context.Context, userID int64) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Items = append([]models.CartLine(nil), c.Items...)
	return &c, nil
}

func (m *memStore) UpdateCart(_ context.Context, userID int64, create bool, fn func(*models.Cart) error) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		if !create {
			return nil, store.ErrNotFound
		}
		c = *models.NewCart(userID)
		c.ID = m.id()
	}
	c.Items = append([]models.CartLine(nil), c.Items...)
	if err := fn(&c); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	saved := c
	saved.Items = append([]models.CartLine(nil), c.Items...)
	m.carts[userID] = saved
	return &c, nil
}

// PlaceOrder mirrors the Postgres checkout: lines and prices are read under the lock.
func (m *memStore) PlaceOrder(_ context.Context, o *models.Order, opts store.CheckoutOptions) error {
	if m.beforeCheckout != nil {
		m.beforeCheckout()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts = append(m.checkouts, opts)
	if m.placeOrderErr != nil {
		return m.placeOrderErr
	}
	cart, ok := m.carts[o.UserID]
	if !ok {
		return store.ErrNotFound
	}
	if len(cart.Items) == 0 {
		return store.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, ok := m.products[line.ProductID]
		if !ok {
			return &store.MissingProductError{ProductID: line.ProductID}
		}
		items = append(items, models.OrderItem{ProductID: p.ID, Quantity: line.Quantity, UnitPrice: p.Price})
	}
	o.SetItems(items)

	if opts.DecrementStock {
		for _, it := range o.Items {
			if m.products[it.ProductID].Quantity < it.Quantity {
				return &store.StockError{ProductID: it.ProductID}
			}
		}
		for _, it := range o.Items {
			p := m.products[it.ProductID]
			p.SetQuantity(p.Quantity - it.Quantity)
			m.products[it.ProductID] = p
		}
	}
	o.ID = m.id()
	m.orders[o.ID] = *o
	delete(m.carts, o.UserID)
	return nil
}

func (m *memStore) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (m *memStore) Ping(context.Context) error { return nil }
func (m *memStore) Close() error               { return nil }
