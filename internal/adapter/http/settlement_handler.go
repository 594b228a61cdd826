package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tamweel-backend/internal/usecase/settlement"
)

type SettlementHandler struct{ uc *settlement.Usecase }

func NewSettlementHandler(uc *settlement.Usecase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

func (h *SettlementHandler) Statement(c echo.Context) error {
	dto, err := h.uc.Statement(c.Request().Context(), tenantID(c), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
