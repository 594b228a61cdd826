package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type drawdownReq struct {
	FacilityID string  `json:"facility_id" validate:"required,hex32"`
	Amount     float64 `json:"amount"      validate:"required,gt=0,dec2"`
	StartDate  string  `json:"start_date"  validate:"required,datetime=2006-01-02"`
	DueDate    string  `json:"due_date"    validate:"required,datetime=2006-01-02"`
	Reference  string  `json:"reference"   validate:"omitempty,max=64"`
	Notes      string  `json:"notes"       validate:"omitempty,max=255"`
}

func (h *LoanHandler) Drawdown(c echo.Context) error {
	var req drawdownReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Drawdown(c.Request().Context(), tenantID(c), loan.DrawdownInput{
		FacilityID: req.FacilityID,
		Amount:     decimal.NewFromFloat(req.Amount),
		StartDate:  parseDate(req.StartDate),
		DueDate:    parseDate(req.DueDate),
		Reference:  req.Reference,
		Notes:      req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) List(c echo.Context) error {
	status := domain.Status(c.QueryParam("status"))
	dtos, err := h.uc.List(c.Request().Context(), tenantID(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), tenantID(c), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListTransactions(c echo.Context) error {
	dtos, err := h.uc.ListTransactions(c.Request().Context(), tenantID(c), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type restructureReq struct {
	NewSiborRate  float64 `json:"new_sibor_rate" validate:"gte=0"`
	NewBankRate   float64 `json:"new_bank_rate"  validate:"gte=0"`
	EffectiveDate string  `json:"effective_date" validate:"required,datetime=2006-01-02"`
	NewDueDate    string  `json:"new_due_date"   validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) Restructure(c echo.Context) error {
	var req restructureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := loan.RestructureInput{
		NewSiborRate:  decimal.NewFromFloat(req.NewSiborRate),
		NewBankRate:   decimal.NewFromFloat(req.NewBankRate),
		EffectiveDate: parseDate(req.EffectiveDate),
	}
	if req.NewDueDate != "" {
		d := parseDate(req.NewDueDate)
		in.NewDueDate = &d
	}
	dto, err := h.uc.Restructure(c.Request().Context(), tenantID(c), c.Param("loan_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
