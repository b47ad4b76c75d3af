package service

import (
	"errors"

	"flower-storefront/internal/client"
)

var (
	ErrUnauthorized      = errors.New("not signed in")
	ErrCartLineNotFound  = errors.New("cart line not found")
	ErrOrderNotFound     = errors.New("order not found on the current page")
	ErrUnknownPayment    = errors.New("unknown payment method")
	ErrOrderLineNotFound = errors.New("order line not found")
	ErrStorage           = errors.New("local storage failure")
	ErrInvalidImage      = errors.New("invalid image upload")
)

// Failure is an operation error already converted into something a shopper
// or admin can read. Err keeps the cause for logging and status mapping.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UserMessage prefers the backend's own message and otherwise returns
// fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func fail(err error, fallback string) error {
	return &Failure{Message: UserMessage(err, fallback), Err: err}
}
