package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tamweel-backend/internal/usecase/collateral"
)

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

type createCollateralReq struct {
	AssetType    string  `json:"asset_type"    validate:"required,max=60"`
	Description  string  `json:"description"   validate:"omitempty,max=255"`
	CurrentValue float64 `json:"current_value" validate:"gte=0,dec2"`
	FacilityID   string  `json:"facility_id"   validate:"omitempty,hex32"`
	LoanID       string  `json:"loan_id"       validate:"omitempty,hex32"`
}

func (h *CollateralHandler) Create(c echo.Context) error {
	var req createCollateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), tenantID(c), collateral.CreateInput{
		AssetType:    req.AssetType,
		Description:  req.Description,
		CurrentValue: decimal.NewFromFloat(req.CurrentValue),
		FacilityID:   req.FacilityID,
		LoanID:       req.LoanID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type revalueReq struct {
	NewValue float64 `json:"new_value" validate:"gte=0,dec2"`
}

func (h *CollateralHandler) Revalue(c echo.Context) error {
	var req revalueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Revalue(c.Request().Context(), tenantID(c), c.Param("collateral_id"), collateral.RevalueInput{
		NewValue: decimal.NewFromFloat(req.NewValue),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
