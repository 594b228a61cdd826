package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "tamweel-backend/internal/domain/facility"
	"tamweel-backend/internal/usecase/facility"
	"tamweel-backend/internal/usecase/matcher"
)

type FacilityHandler struct {
	uc      *facility.Usecase
	matcher *matcher.Usecase
}

func NewFacilityHandler(uc *facility.Usecase, m *matcher.Usecase) *FacilityHandler {
	return &FacilityHandler{uc: uc, matcher: m}
}

type createFacilityReq struct {
	BankID      string  `json:"bank_id"      validate:"required,hex32"`
	Name        string  `json:"name"         validate:"required,max=120"`
	Type        string  `json:"type"         validate:"required,facilitytype"`
	CreditLimit float64 `json:"credit_limit" validate:"required,gt=0,dec2"`
	SiborRate   float64 `json:"sibor_rate"   validate:"gte=0"`
	BankRate    float64 `json:"bank_rate"    validate:"gte=0"`
	StartDate   string  `json:"start_date"   validate:"required,datetime=2006-01-02"`
	ExpiryDate  string  `json:"expiry_date"  validate:"required,datetime=2006-01-02"`
}

func (h *FacilityHandler) Create(c echo.Context) error {
	var req createFacilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), tenantID(c), facility.CreateInput{
		BankID:      req.BankID,
		Name:        req.Name,
		Type:        domain.Type(req.Type),
		CreditLimit: decimal.NewFromFloat(req.CreditLimit),
		SiborRate:   decimal.NewFromFloat(req.SiborRate),
		BankRate:    decimal.NewFromFloat(req.BankRate),
		StartDate:   parseDate(req.StartDate),
		ExpiryDate:  parseDate(req.ExpiryDate),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *FacilityHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *FacilityHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), tenantID(c), c.Param("facility_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *FacilityHandler) Deactivate(c echo.Context) error {
	dto, err := h.uc.Deactivate(c.Request().Context(), tenantID(c), c.Param("facility_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type changeLimitReq struct {
	NewLimit  float64 `json:"new_limit" validate:"gte=0,dec2"`
	Reference string  `json:"reference" validate:"omitempty,max=64"`
	Notes     string  `json:"notes"     validate:"omitempty,max=255"`
}

func (h *FacilityHandler) ChangeLimit(c echo.Context) error {
	var req changeLimitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ChangeLimit(c.Request().Context(), tenantID(c), c.Param("facility_id"), facility.ChangeLimitInput{
		NewLimit:  decimal.NewFromFloat(req.NewLimit),
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type matchReq struct {
	Amount       float64 `json:"amount"        validate:"required,gt=0,dec2"`
	Type         string  `json:"type"          validate:"omitempty,facilitytype"`
	DurationDays int     `json:"duration_days" validate:"gte=0"`
}

// Match never returns an empty body: a recommendation with its ranking, or
// a message plus every facility and why it was ruled out.
func (h *FacilityHandler) Match(c echo.Context) error {
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.matcher.Match(c.Request().Context(), tenantID(c), matcher.MatchInput{
		Amount:       decimal.NewFromFloat(req.Amount),
		Type:         domain.Type(req.Type),
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
