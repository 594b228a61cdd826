package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// tenantID reads the user identity the tenant middleware already validated.
func tenantID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
}

const dateLayout = "2006-01-02"

// parseDate assumes the datetime validation tag already vetted the string.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}
