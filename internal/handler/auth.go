package handler

import (
	"net/http"

	"flower-storefront/internal/dto"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
	messages    *store.MessageStore
}

func NewAuthHandler(authService service.AuthService, messages *store.MessageStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		messages:    messages,
	}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return failed(h.messages, err)
	}

	credential, err := h.authService.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return failed(h.messages, err)
	}

	h.messages.Push(true, "登入成功")
	return c.JSON(http.StatusOK, dto.SignInResponse{
		UID:       credential.UID,
		ExpiresAt: credential.ExpiresAt.UnixMilli(),
	})
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.authService.SignOut(c.Request().Context()); err != nil {
		return err
	}
	h.messages.Push(true, "已登出")
	return c.NoContent(http.StatusNoContent)
}
