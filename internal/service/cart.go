package service

import (
	"context"

	"flower-storefront/internal/client"
	"flower-storefront/internal/model"
	"flower-storefront/internal/store"

	"github.com/labstack/gommon/log"
)

const (
	msgFetchCartFailed  = "取得購物車失敗"
	msgAddCartFailed    = "加入購物車失敗"
	msgUpdateCartFailed = "更新購物車失敗"
	msgDeleteCartFailed = "刪除購物車項目失敗"
	msgClearCartFailed  = "清空購物車失敗"
)

// CartService runs every cart mutation as a remote call followed by a
// re-fetch. The store only ever changes from a successful fetch, apart from
// the placeholder line shown while an add is in flight.
type CartService interface {
	Fetch(ctx context.Context) (model.Cart, error)
	Add(ctx context.Context, productID string, qty any) (model.Cart, error)
	UpdateQty(ctx context.Context, lineID string, qty any) (model.Cart, error)
	Step(ctx context.Context, lineID string, delta int) (model.Cart, error)
	Remove(ctx context.Context, lineID string) (model.Cart, error)
	Clear(ctx context.Context) (model.Cart, error)
}

type cartServiceImpl struct {
	storeClient client.StoreClient
	cart        *store.CartStore
	logger      *log.Logger
}

func NewCartService(
	storeClient client.StoreClient,
	cart *store.CartStore,
	logger *log.Logger,
) CartService {
	return &cartServiceImpl{
		storeClient: storeClient,
		cart:        cart,
		logger:      logger,
	}
}

func (s *cartServiceImpl) Fetch(ctx context.Context) (model.Cart, error) {
	cart, err := s.storeClient.GetCart(ctx)
	if err != nil {
		s.logger.Warnf("fetch cart: %v", err)
		return s.cart.Snapshot(), fail(err, msgFetchCartFailed)
	}
	s.cart.Replace(*cart)
	return s.cart.Snapshot(), nil
}

func (s *cartServiceImpl) Add(ctx context.Context, productID string, qty any) (model.Cart, error) {
	n := model.ClampQty(qty)
	placeholder := s.cart.AppendPlaceholder(productID, n)

	if err := s.storeClient.AddToCart(ctx, productID, n); err != nil {
		s.cart.DropPending(placeholder.ID)
		s.logger.Warnf("add product %s to cart: %v", productID, err)
		return s.cart.Snapshot(), fail(err, msgAddCartFailed)
	}
	return s.Fetch(ctx)
}

func (s *cartServiceImpl) UpdateQty(ctx context.Context, lineID string, qty any) (model.Cart, error) {
	line, ok := s.cart.Snapshot().Find(lineID)
	if !ok {
		return s.cart.Snapshot(), &Failure{Message: msgUpdateCartFailed, Err: ErrCartLineNotFound}
	}
	return s.update(ctx, line, model.ClampQty(qty))
}

func (s *cartServiceImpl) Step(ctx context.Context, lineID string, delta int) (model.Cart, error) {
	line, ok := s.cart.Snapshot().Find(lineID)
	if !ok {
		return s.cart.Snapshot(), &Failure{Message: msgUpdateCartFailed, Err: ErrCartLineNotFound}
	}
	current := int(line.Qty)
	if current < 1 {
		current = 1
	}
	return s.update(ctx, line, model.ClampQty(current+delta))
}

func (s *cartServiceImpl) update(ctx context.Context, line model.CartItem, qty int) (model.Cart, error) {
	productID := line.ProductID
	if productID == "" {
		productID = line.Product.ID
	}
	if err := s.storeClient.UpdateCartItem(ctx, line.ID, productID, qty); err != nil {
		s.logger.Warnf("update cart line %s: %v", line.ID, err)
		return s.cart.Snapshot(), fail(err, msgUpdateCartFailed)
	}
	return s.Fetch(ctx)
}

func (s *cartServiceImpl) Remove(ctx context.Context, lineID string) (model.Cart, error) {
	if err := s.storeClient.DeleteCartItem(ctx, lineID); err != nil {
		s.logger.Warnf("delete cart line %s: %v", lineID, err)
		return s.cart.Snapshot(), fail(err, msgDeleteCartFailed)
	}
	return s.Fetch(ctx)
}

func (s *cartServiceImpl) Clear(ctx context.Context) (model.Cart, error) {
	if err := s.storeClient.ClearCart(ctx); err != nil {
		s.logger.Warnf("clear cart: %v", err)
		return s.cart.Snapshot(), fail(err, msgClearCartFailed)
	}
	return s.Fetch(ctx)
}
