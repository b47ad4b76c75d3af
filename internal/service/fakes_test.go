package service

import (
	"context"
	"io"
	"strconv"
	"sync"

	"flower-storefront/internal/client"
	"flower-storefront/internal/model"

	"github.com/labstack/gommon/log"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

// fakeStore is a StoreClient whose behaviour is set per test. Unset hooks
// succeed with empty results.
type fakeStore struct {
	mu    sync.Mutex
	calls []string

	getCart      func(ctx context.Context) (*model.Cart, error)
	addToCart    func(ctx context.Context, productID string, qty int) error
	updateCart   func(ctx context.Context, lineID, productID string, qty int) error
	deleteCart   func(ctx context.Context, lineID string) error
	clearCart    func(ctx context.Context) error
	submitOrder  func(ctx context.Context, req *client.OrderRequest) (*client.SubmitOrderResult, error)
	listProducts func(ctx context.Context, page int, category string) (*client.ProductPage, error)
	signIn       func(ctx context.Context, username, password string) (*client.SignInResult, error)
	listOrders   func(ctx context.Context, token string, page int) (*client.OrderPage, error)
	deleteOrder  func(ctx context.Context, token, id string) error
	updateOrder  func(ctx context.Context, token, id string, doc model.OrderUpdate) error
	mutateAdmin  func(ctx context.Context, token, op, id string) error
	uploadImage  func(ctx context.Context, token string, img client.ImageFile) (string, error)
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) GetCart(ctx context.Context) (*model.Cart, error) {
	f.record("GetCart")
	if f.getCart == nil {
		cart := model.EmptyCart()
		return &cart, nil
	}
	return f.getCart(ctx)
}

func (f *fakeStore) AddToCart(ctx context.Context, productID string, qty int) error {
	f.record("AddToCart")
	if f.addToCart == nil {
		return nil
	}
	return f.addToCart(ctx, productID, qty)
}

func (f *fakeStore) UpdateCartItem(ctx context.Context, lineID, productID string, qty int) error {
	f.record("UpdateCartItem")
	if f.updateCart == nil {
		return nil
	}
	return f.updateCart(ctx, lineID, productID, qty)
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, lineID string) error {
	f.record("DeleteCartItem")
	if f.deleteCart == nil {
		return nil
	}
	return f.deleteCart(ctx, lineID)
}

func (f *fakeStore) ClearCart(ctx context.Context) error {
	f.record("ClearCart")
	if f.clearCart == nil {
		return nil
	}
	return f.clearCart(ctx)
}

func (f *fakeStore) SubmitOrder(ctx context.Context, req *client.OrderRequest) (*client.SubmitOrderResult, error) {
	f.record("SubmitOrder")
	if f.submitOrder == nil {
		return &client.SubmitOrderResult{}, nil
	}
	return f.submitOrder(ctx, req)
}

func (f *fakeStore) ListProducts(ctx context.Context, page int, category string) (*client.ProductPage, error) {
	f.record("ListProducts")
	if f.listProducts == nil {
		return &client.ProductPage{Products: []model.Product{}}, nil
	}
	return f.listProducts(ctx, page, category)
}

func (f *fakeStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	f.record("GetProduct")
	return &model.Product{ID: id}, nil
}

func (f *fakeStore) SignIn(ctx context.Context, username, password string) (*client.SignInResult, error) {
	f.record("SignIn")
	if f.signIn == nil {
		return &client.SignInResult{}, nil
	}
	return f.signIn(ctx, username, password)
}

func (f *fakeStore) ListOrders(ctx context.Context, token string, page int) (*client.OrderPage, error) {
	f.record("ListOrders")
	if f.listOrders == nil {
		return &client.OrderPage{Orders: []model.Order{}}, nil
	}
	return f.listOrders(ctx, token, page)
}

func (f *fakeStore) DeleteOrder(ctx context.Context, token, id string) error {
	f.record("DeleteOrder")
	if f.deleteOrder == nil {
		return nil
	}
	return f.deleteOrder(ctx, token, id)
}

func (f *fakeStore) UpdateOrder(ctx context.Context, token, id string, doc model.OrderUpdate) error {
	f.record("UpdateOrder")
	if f.updateOrder == nil {
		return nil
	}
	return f.updateOrder(ctx, token, id, doc)
}

func (f *fakeStore) ListAdminProducts(ctx context.Context, token string, page int) (*client.ProductPage, error) {
	f.record("ListAdminProducts")
	return &client.ProductPage{Products: []model.Product{}}, nil
}

func (f *fakeStore) adminWrite(ctx context.Context, token, op, id string) error {
	f.record(op)
	if f.mutateAdmin == nil {
		return nil
	}
	return f.mutateAdmin(ctx, token, op, id)
}

func (f *fakeStore) CreateProduct(ctx context.Context, token string, p model.Product) error {
	return f.adminWrite(ctx, token, "CreateProduct", "")
}

func (f *fakeStore) UpdateProduct(ctx context.Context, token, id string, p model.Product) error {
	return f.adminWrite(ctx, token, "UpdateProduct", id)
}

func (f *fakeStore) DeleteProduct(ctx context.Context, token, id string) error {
	return f.adminWrite(ctx, token, "DeleteProduct", id)
}

func (f *fakeStore) UploadImage(ctx context.Context, token string, img client.ImageFile) (string, error) {
	f.record("UploadImage")
	if f.uploadImage == nil {
		return "https://img.example/" + img.Filename, nil
	}
	return f.uploadImage(ctx, token, img)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrUnauthorized
	}
	return string(s), nil
}

type memCredentials struct {
	mu    sync.Mutex
	items map[string]model.Credential
}

func newMemCredentials() *memCredentials {
	return &memCredentials{items: map[string]model.Credential{}}
}

func (m *memCredentials) Upsert(ctx context.Context, c *model.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.Name] = *c
	return nil
}

func (m *memCredentials) Get(ctx context.Context, name string) (*model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[name]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCredentials) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, name)
	return nil
}

type memReceipts struct {
	mu    sync.Mutex
	items []*model.Receipt
	err   error
}

func (m *memReceipts) Create(ctx context.Context, r *model.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, r)
	return nil
}

func (m *memReceipts) List(ctx context.Context, limit int) ([]*model.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.items) {
		limit = len(m.items)
	}
	return append([]*model.Receipt(nil), m.items[:limit]...), nil
}

type memCatalog struct {
	mu          sync.Mutex
	pages       map[string]*client.ProductPage
	invalidated int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{pages: map[string]*client.ProductPage{}}
}

func catalogKey(category string, page int) string {
	return category + "#" + strconv.Itoa(page)
}

func (m *memCatalog) Get(ctx context.Context, category string, page int) (*client.ProductPage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[catalogKey(category, page)]
	return p, ok
}

func (m *memCatalog) Set(ctx context.Context, category string, page int, products *client.ProductPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[catalogKey(category, page)] = products
}

func (m *memCatalog) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = map[string]*client.ProductPage{}
	m.invalidated++
}
