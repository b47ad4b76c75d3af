package service

import (
	"context"

	"flower-storefront/internal/client"
	"flower-storefront/internal/model"
	"flower-storefront/internal/store"

	"github.com/labstack/gommon/log"
)

const (
	msgFetchOrdersFailed = "取得訂單列表失敗"
	msgDeleteOrderFailed = "訂單刪除失敗"
	msgUpdateOrderFailed = "訂單更新失敗"
)

// DraftEdit is what the admin changed in the order form. Nil fields keep the
// order's values. Quantities holds raw inputs per line id; Steps holds +/-
// clicks per line id and is applied after Quantities.
type DraftEdit struct {
	IsPaid     *bool
	User       *model.User
	Message    *string
	Quantities map[string]any
	Steps      map[string]int
}

type OrderService interface {
	FetchPage(ctx context.Context, page int) ([]model.Order, model.Pagination, error)
	Current() ([]model.Order, model.Pagination)
	Get(ctx context.Context, id string) (model.Order, error)
	Draft(ctx context.Context, id string, edit DraftEdit) (*model.OrderDraft, error)
	Update(ctx context.Context, id string, edit DraftEdit) error
	Remove(ctx context.Context, id string) error
}

type orderServiceImpl struct {
	storeClient client.StoreClient
	tokens      TokenSource
	orders      *store.OrderStore
	logger      *log.Logger
}

func NewOrderService(
	storeClient client.StoreClient,
	tokens TokenSource,
	orders *store.OrderStore,
	logger *log.Logger,
) OrderService {
	return &orderServiceImpl{
		storeClient: storeClient,
		tokens:      tokens,
		orders:      orders,
		logger:      logger,
	}
}

func (s *orderServiceImpl) FetchPage(ctx context.Context, page int) ([]model.Order, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return s.orders.Orders(), s.orders.Pagination(), fail(err, msgFetchOrdersFailed)
	}
	res, err := s.storeClient.ListOrders(ctx, token, page)
	if err != nil {
		s.logger.Warnf("fetch orders page %d: %v", page, err)
		return s.orders.Orders(), s.orders.Pagination(), fail(err, msgFetchOrdersFailed)
	}
	s.orders.Replace(res.Orders, res.Pagination)
	return s.orders.Orders(), s.orders.Pagination(), nil
}

// Current returns the last page loaded without calling the backend.
func (s *orderServiceImpl) Current() ([]model.Order, model.Pagination) {
	return s.orders.Orders(), s.orders.Pagination()
}

func (s *orderServiceImpl) Get(ctx context.Context, id string) (model.Order, error) {
	order, ok := s.orders.Find(id)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderServiceImpl) Draft(ctx context.Context, id string, edit DraftEdit) (*model.OrderDraft, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := model.NewOrderDraft(order)
	if edit.IsPaid != nil {
		draft.IsPaid = *edit.IsPaid
	}
	if edit.User != nil {
		draft.User = *edit.User
	}
	if edit.Message != nil {
		draft.Message = *edit.Message
	}
	for lineID, qty := range edit.Quantities {
		if _, ok := draft.SetQty(lineID, qty); !ok {
			return nil, ErrOrderLineNotFound
		}
	}
	for lineID, delta := range edit.Steps {
		if _, ok := draft.Step(lineID, delta); !ok {
			return nil, ErrOrderLineNotFound
		}
	}
	return draft, nil
}

// Update sends the whole order document, then reloads the current page. A
// rejected update leaves the list as it was.
func (s *orderServiceImpl) Update(ctx context.Context, id string, edit DraftEdit) error {
	draft, err := s.Draft(ctx, id, edit)
	if err != nil {
		return &Failure{Message: msgUpdateOrderFailed, Err: err}
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fail(err, msgUpdateOrderFailed)
	}
	if err := s.storeClient.UpdateOrder(ctx, token, id, draft.Payload()); err != nil {
		s.logger.Warnf("update order %s: %v", id, err)
		return fail(err, msgUpdateOrderFailed)
	}

	s.refresh(ctx)
	return nil
}

// Remove deletes one order and reloads the page the admin is on. The page
// number is not adjusted when the last row of a page goes away.
func (s *orderServiceImpl) Remove(ctx context.Context, id string) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fail(err, msgDeleteOrderFailed)
	}
	if err := s.storeClient.DeleteOrder(ctx, token, id); err != nil {
		s.logger.Warnf("delete order %s: %v", id, err)
		return fail(err, msgDeleteOrderFailed)
	}

	s.refresh(ctx)
	return nil
}

// refresh reloads the current page after a successful write. A failed reload
// keeps the previous page; the write itself already went through.
func (s *orderServiceImpl) refresh(ctx context.Context) {
	if _, _, err := s.FetchPage(ctx, s.orders.CurrentPage()); err != nil {
		s.logger.Warnf("reload orders page %d: %v", s.orders.CurrentPage(), err)
	}
}
