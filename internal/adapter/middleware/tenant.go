package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	pkgid "tamweel-backend/pkg/id"
)

// TenantMiddleware rejects any request whose Ax-User-Id header is missing
// or not a 32-char lowercase hex id. Identity is header-trusted: the auth
// bridge in front of this service owns the actual authentication.
func TenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
			if userID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-User-Id"})
			}
			if !pkgid.Valid(userID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-User-Id"})
			}
			return next(c)
		}
	}
}
