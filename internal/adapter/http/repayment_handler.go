package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tamweel-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type ledgerEntryReq struct {
	Amount    float64 `json:"amount"    validate:"required,gt=0,dec2"`
	Date      string  `json:"date"      validate:"required,datetime=2006-01-02"`
	Reference string  `json:"reference" validate:"omitempty,max=64"`
	Notes     string  `json:"notes"     validate:"omitempty,max=255"`
}

func (h *RepaymentHandler) Record(c echo.Context) error {
	var req ledgerEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Record(c.Request().Context(), tenantID(c), c.Param("loan_id"), repayment.RecordInput{
		Amount:    decimal.NewFromFloat(req.Amount),
		Date:      parseDate(req.Date),
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) PostFee(c echo.Context) error {
	var req ledgerEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.PostFee(c.Request().Context(), tenantID(c), c.Param("loan_id"), repayment.FeeInput{
		Amount:    decimal.NewFromFloat(req.Amount),
		Date:      parseDate(req.Date),
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
