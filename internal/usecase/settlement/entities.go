package settlement

import "time"

// StatementDTO is the settlement record served to history views.
type StatementDTO struct {
	LoanID             string       `json:"loan_id"`
	AsOf               time.Time    `json:"as_of"`
	SettlementStatus   string       `json:"settlement_status"`
	SettlementProgress float64      `json:"settlement_progress"`
	PrincipalProgress  float64      `json:"principal_progress"`
	InterestProgress   float64      `json:"interest_progress"`
	Breakdown          BreakdownDTO `json:"breakdown"`
	Totals             TotalsDTO    `json:"totals"`
	SettledOn          *string      `json:"settled_on,omitempty"`
	SettledAmount      *float64     `json:"settled_amount,omitempty"`
}

type BreakdownDTO struct {
	PrincipalPaid      float64 `json:"principal_paid"`
	PrincipalRemaining float64 `json:"principal_remaining"`
	InterestPaid       float64 `json:"interest_paid"`
	InterestRemaining  float64 `json:"interest_remaining"`
	FeesRemaining      float64 `json:"fees_remaining"`
}

type TotalsDTO struct {
	TotalDrawn           float64 `json:"total_drawn"`
	TotalRepaid          float64 `json:"total_repaid"`
	TotalInterestAccrued float64 `json:"total_interest_accrued"`
	TotalFeesCharged     float64 `json:"total_fees_charged"`
}
