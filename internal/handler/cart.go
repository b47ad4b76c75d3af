package handler

import (
	"net/http"

	"flower-storefront/internal/dto"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
	messages    *store.MessageStore
}

func NewCartHandler(cartService service.CartService, messages *store.MessageStore) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		messages:    messages,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartService.Fetch(c.Request().Context())
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, cartView(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req dto.AddCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failed(h.messages, err)
	}

	cart, err := h.cartService.Add(c.Request().Context(), req.ProductID, req.Qty)
	if err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "已加入購物車")
	return c.JSON(http.StatusOK, cartView(cart))
}

// UpdateItem sets a line's quantity from free-form input; anything below 1
// or non-numeric becomes 1.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req dto.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err))
	}

	cart, err := h.cartService.UpdateQty(c.Request().Context(), c.Param("id"), req.Qty)
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, cartView(cart))
}

func (h *CartHandler) Increment(c echo.Context) error {
	return h.step(c, 1)
}

func (h *CartHandler) Decrement(c echo.Context) error {
	return h.step(c, -1)
}

func (h *CartHandler) step(c echo.Context, delta int) error {
	cart, err := h.cartService.Step(c.Request().Context(), c.Param("id"), delta)
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, cartView(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.cartService.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "已刪除購物車項目")
	return c.JSON(http.StatusOK, cartView(cart))
}

func (h *CartHandler) Clear(c echo.Context) error {
	cart, err := h.cartService.Clear(c.Request().Context())
	if err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "已清空購物車")
	return c.JSON(http.StatusOK, cartView(cart))
}
