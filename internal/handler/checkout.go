package handler

import (
	"net/http"
	"strconv"

	"flower-storefront/internal/dto"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

const msgSubmitOrderSucceeded = "訂單送出確認成功"

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	messages        *store.MessageStore
}

func NewCheckoutHandler(checkoutService service.CheckoutService, messages *store.MessageStore) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		messages:        messages,
	}
}

func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failed(h.messages, err)
	}

	receipt, err := h.checkoutService.Submit(c.Request().Context(), service.CheckoutForm{
		User:          req.User(),
		Message:       req.Message,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return failed(h.messages, err)
	}

	h.messages.Push(true, msgSubmitOrderSucceeded)
	return c.JSON(http.StatusCreated, receipt)
}

func (h *CheckoutHandler) ListReceipts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	receipts, err := h.checkoutService.Receipts(c.Request().Context(), limit)
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, receipts)
}
