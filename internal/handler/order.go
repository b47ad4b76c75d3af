package handler

import (
	"errors"
	"net/http"
	"strconv"

	"flower-storefront/internal/dto"
	"flower-storefront/internal/model"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	msgOrderNotFound     = "找不到訂單"
	msgOrderLineNotFound = "找不到訂單項目"
)

type OrderHandler struct {
	orderService service.OrderService
	messages     *store.MessageStore
}

func NewOrderHandler(orderService service.OrderService, messages *store.MessageStore) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		messages:     messages,
	}
}

func orderList(orders []model.Order, pagination model.Pagination) dto.OrderListResponse {
	views := make([]dto.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return dto.OrderListResponse{Orders: views, Pagination: pagination}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	orders, pagination, err := h.orderService.FetchPage(c.Request().Context(), page)
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, orderList(orders, pagination))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(statusOf(err), lookupMessage(err)).SetInternal(err)
	}
	return c.JSON(http.StatusOK, orderView(order))
}

// lookupMessage names what could not be found on the loaded page.
func lookupMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrOrderLineNotFound):
		return msgOrderLineNotFound
	case errors.Is(err, service.ErrOrderNotFound):
		return msgOrderNotFound
	}
	return msgInvalidForm
}

func editFrom(req dto.OrderEditRequest) service.DraftEdit {
	return service.DraftEdit{
		IsPaid:     req.IsPaid,
		User:       req.User,
		Message:    req.Message,
		Quantities: req.Quantities,
		Steps:      req.Steps,
	}
}

// Preview recomputes totals for an edited order without saving anything.
func (h *OrderHandler) Preview(c echo.Context) error {
	var req dto.OrderEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err)
	}

	draft, err := h.orderService.Draft(c.Request().Context(), c.Param("id"), editFrom(req))
	if err != nil {
		return echo.NewHTTPError(statusOf(err), lookupMessage(err)).SetInternal(err)
	}
	return c.JSON(http.StatusOK, draftView(draft))
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	var req dto.OrderEditRequest
	if err := c.Bind(&req); err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err))
	}

	ctx := c.Request().Context()
	if err := h.orderService.Update(ctx, c.Param("id"), editFrom(req)); err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "訂單更新成功")

	return c.JSON(http.StatusOK, orderList(h.orderService.Current()))
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	if err := h.orderService.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "訂單刪除成功")
	return c.JSON(http.StatusOK, orderList(h.orderService.Current()))
}
