package middleware

import (
	"errors"
	"net/http"

	"flower-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

// AdminAuth lets a request through if it carries its own Authorization token
// or if a signed-in admin credential is still valid.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if token := req.Header.Get(echo.HeaderAuthorization); token != "" {
				c.SetRequest(req.WithContext(service.ContextWithToken(req.Context(), token)))
				return next(c)
			}

			if _, err := authService.Current(req.Context()); err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, "請先登入")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "無法確認登入狀態").SetInternal(err)
			}
			return next(c)
		}
	}
}
