package service

import (
	"context"
	"fmt"
	"time"

	"flower-storefront/internal/client"
	"flower-storefront/internal/model"
	"flower-storefront/internal/repository"
	"flower-storefront/internal/store"

	"github.com/labstack/gommon/log"
)

const (
	msgSubmitOrderFailed   = "訂單送出確認失敗"
	msgFetchReceiptsFailed = "取得訂單紀錄失敗"
)

// Payment methods offered at checkout.
const (
	PaymentCreditCard     = "1"
	PaymentATM            = "2"
	PaymentCashOnDelivery = "3"
	PaymentStorePickup    = "4"
)

var paidOnSubmit = map[string]bool{
	PaymentCreditCard:     true,
	PaymentATM:            true,
	PaymentCashOnDelivery: false,
	PaymentStorePickup:    false,
}

// PaidFor reports whether an order placed with method counts as paid.
func PaidFor(method string) (bool, error) {
	paid, ok := paidOnSubmit[method]
	if !ok {
		return false, ErrUnknownPayment
	}
	return paid, nil
}

type CheckoutForm struct {
	User          model.User
	Message       string
	PaymentMethod string
}

type CheckoutService interface {
	Submit(ctx context.Context, form CheckoutForm) (*model.Receipt, error)
	Receipts(ctx context.Context, limit int) ([]*model.Receipt, error)
}

type checkoutServiceImpl struct {
	storeClient client.StoreClient
	cart        *store.CartStore
	receiptRepo repository.ReceiptRepository
	logger      *log.Logger
}

func NewCheckoutService(
	storeClient client.StoreClient,
	cart *store.CartStore,
	receiptRepo repository.ReceiptRepository,
	logger *log.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		storeClient: storeClient,
		cart:        cart,
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// Submit places the order. On success the local cart is emptied without a
// re-fetch; on failure it is left alone.
func (s *checkoutServiceImpl) Submit(ctx context.Context, form CheckoutForm) (*model.Receipt, error) {
	paid, err := PaidFor(form.PaymentMethod)
	if err != nil {
		return nil, &Failure{Message: msgSubmitOrderFailed, Err: err}
	}

	total := s.cart.Snapshot().FinalTotal
	res, err := s.storeClient.SubmitOrder(ctx, &client.OrderRequest{
		User:          form.User,
		Message:       form.Message,
		PaymentMethod: form.PaymentMethod,
		IsPaid:        paid,
	})
	if err != nil {
		s.logger.Warnf("submit order: %v", err)
		return nil, fail(err, msgSubmitOrderFailed)
	}
	s.cart.Reset()

	receipt := &model.Receipt{
		OrderID:       res.OrderID,
		PaymentMethod: form.PaymentMethod,
		IsPaid:        paid,
		Total:         total,
		Email:         form.User.Email,
		CreatedAt:     time.Now(),
	}
	if !res.Total.IsZero() {
		receipt.Total = res.Total
	}
	if res.CreateAt > 0 {
		receipt.CreatedAt = time.Unix(int64(res.CreateAt), 0)
	}

	if receipt.OrderID == "" {
		s.logger.Warnf("order accepted without an id, receipt not stored")
		return receipt, nil
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.logger.Errorf("store receipt %s: %v", receipt.OrderID, err)
	}
	return receipt, nil
}

func (s *checkoutServiceImpl) Receipts(ctx context.Context, limit int) ([]*model.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	receipts, err := s.receiptRepo.List(ctx, limit)
	if err != nil {
		s.logger.Errorf("list receipts: %v", err)
		return nil, &Failure{Message: msgFetchReceiptsFailed, Err: fmt.Errorf("list receipts: %w: %w", ErrStorage, err)}
	}
	return receipts, nil
}
