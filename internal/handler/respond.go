package handler

import (
	"errors"
	"net/http"

	"flower-storefront/internal/client"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const msgInvalidForm = "資料格式錯誤"

// failed pushes a danger toast and turns err into an HTTP error carrying the
// same text.
func failed(messages *store.MessageStore, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if text, ok := httpErr.Message.(string); ok {
			messages.Push(false, text)
		}
		return httpErr
	}

	text := service.UserMessage(err, msgInvalidForm)
	var f *service.Failure
	if errors.As(err, &f) {
		text = f.Message
	}
	messages.Push(false, text)
	return echo.NewHTTPError(statusOf(err), text).SetInternal(err)
}

func statusOf(err error) int {
	var validationErrs validator.ValidationErrors
	var apiErr *client.APIError
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, service.ErrUnknownPayment),
		errors.Is(err, service.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrStorage):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrCartLineNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderLineNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// bindAndValidate decodes the body into req and runs the registered
// validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
	}
	return nil
}
