package store

import (
	"sync"

	"flower-storefront/internal/model"
)

// OrderStore holds the admin's current page of orders.
type OrderStore struct {
	mu         sync.RWMutex
	orders     []model.Order
	pagination model.Pagination
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: []model.Order{}}
}

func (s *OrderStore) Replace(orders []model.Order, pagination model.Pagination) {
	cp := make([]model.Order, len(orders))
	copy(cp, orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = cp
	s.pagination = pagination
}

func (s *OrderStore) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) Pagination() model.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// CurrentPage is the page to re-fetch after a mutation.
func (s *OrderStore) CurrentPage() int {
	return s.Pagination().Page()
}

func (s *OrderStore) Find(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}
