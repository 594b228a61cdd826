package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/domain/collateral"
	"tamweel-backend/internal/domain/facility"
	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/engine"
	ucFacility "tamweel-backend/internal/usecase/facility"
	ucRepayment "tamweel-backend/internal/usecase/repayment"
)

// respondError maps usecase and domain errors onto the HTTP surface:
// validation → 422, missing resources → 404, state conflicts → 409.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, bank.ErrNotFound),
		errors.Is(err, facility.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, collateral.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrAlreadySettled),
		errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, ucFacility.ErrLimitBelowOutstanding),
		errors.Is(err, ucRepayment.ErrOverpayment):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
