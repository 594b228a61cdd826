package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tamweel-backend/internal/usecase/portfolio"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) TakeSnapshot(c echo.Context) error {
	dtos, err := h.uc.TakeSnapshot(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dtos)
}

func (h *PortfolioHandler) ListSnapshots(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "limit", Message: "must be an integer"}},
			})
		}
		limit = n
	}
	dtos, err := h.uc.ListSnapshots(c.Request().Context(), tenantID(c), c.QueryParam("bank_id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
