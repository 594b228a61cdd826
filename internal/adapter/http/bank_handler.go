package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tamweel-backend/internal/usecase/bank"
)

type BankHandler struct{ uc *bank.Usecase }

func NewBankHandler(uc *bank.Usecase) *BankHandler { return &BankHandler{uc: uc} }

type createBankReq struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (h *BankHandler) Create(c echo.Context) error {
	var req createBankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), tenantID(c), bank.CreateInput{Name: req.Name})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BankHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *BankHandler) Deactivate(c echo.Context) error {
	dto, err := h.uc.Deactivate(c.Request().Context(), tenantID(c), c.Param("bank_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
