package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tamweel-backend/internal/usecase/scenario"
)

type ScenarioHandler struct{ uc *scenario.Usecase }

func NewScenarioHandler(uc *scenario.Usecase) *ScenarioHandler {
	return &ScenarioHandler{uc: uc}
}

type simulateReq struct {
	Refinance    *refinanceReq    `json:"refinance"`
	EarlyPayment *earlyPaymentReq `json:"early_payment"`
	TermChange   *termChangeReq   `json:"term_change"`
}

type refinanceReq struct {
	NewRate float64 `json:"new_rate" validate:"gte=0"`
}

type earlyPaymentReq struct {
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0,dec2"`
	PaymentDate   string  `json:"payment_date"   validate:"required,datetime=2006-01-02"`
}

type termChangeReq struct {
	NewDurationDays int `json:"new_duration_days" validate:"required,gt=0"`
}

func (h *ScenarioHandler) Simulate(c echo.Context) error {
	var req simulateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	var in scenario.SimulateInput
	if req.Refinance != nil {
		in.Refinance = &scenario.RefinanceParams{NewRate: decimal.NewFromFloat(req.Refinance.NewRate)}
	}
	if req.EarlyPayment != nil {
		in.EarlyPayment = &scenario.EarlyPaymentParams{
			PaymentAmount: decimal.NewFromFloat(req.EarlyPayment.PaymentAmount),
			PaymentDate:   parseDate(req.EarlyPayment.PaymentDate),
		}
	}
	if req.TermChange != nil {
		in.TermChange = &scenario.TermChangeParams{NewDurationDays: req.TermChange.NewDurationDays}
	}

	dto, err := h.uc.Simulate(c.Request().Context(), tenantID(c), c.Param("loan_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
