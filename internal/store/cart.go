// Package store holds the gateway's client-side state. Each store is replaced
// wholesale from server responses; nothing else writes to it.
package store

import (
	"sync"

	"flower-storefront/internal/model"

	"github.com/google/uuid"
)

const PendingPrefix = "pending-"

// CartStore mirrors the last successful GET /cart.
type CartStore struct {
	mu   sync.RWMutex
	cart model.Cart
	subs map[uint64]chan model.Cart
	next uint64
}

func NewCartStore() *CartStore {
	return &CartStore{
		cart: model.EmptyCart(),
		subs: make(map[uint64]chan model.Cart),
	}
}

// Replace overwrites the cart with a server-supplied one.
func (s *CartStore) Replace(cart model.Cart) {
	cart = cart.Clone()
	if cart.Carts == nil {
		cart.Carts = []model.CartItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart
	s.publish()
}

// Reset empties the cart locally, as after a successful checkout.
func (s *CartStore) Reset() {
	s.Replace(model.EmptyCart())
}

func (s *CartStore) Snapshot() model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Count is the badge number: the sum of line quantities.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Count()
}

// AppendPlaceholder adds an optimistic line for a product just added. The
// next Replace discards it.
func (s *CartStore) AppendPlaceholder(productID string, qty int) model.CartItem {
	item := model.CartItem{
		ID:        PendingPrefix + uuid.NewString(),
		ProductID: productID,
		Product:   model.Product{ID: productID},
		Qty:       model.Quantity(qty),
		Pending:   true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Carts = append(s.cart.Carts, item)
	s.publish()
	return item
}

// Subscribe returns a channel that receives the cart after every change,
// starting with the current one. A slow reader only sees the latest cart.
func (s *CartStore) Subscribe() (<-chan model.Cart, func()) {
	ch := make(chan model.Cart, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	ch <- s.cart.Clone()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with mu held.
func (s *CartStore) publish() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.cart.Clone()
	}
}

// DropPending removes a placeholder line if it is still present.
func (s *CartStore) DropPending(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.cart.Carts {
		if item.ID == lineID && item.Pending {
			s.cart.Carts = append(s.cart.Carts[:i:i], s.cart.Carts[i+1:]...)
			s.publish()
			return
		}
	}
}
