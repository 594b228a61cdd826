package scenario

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulateInput selects which what-ifs to run. At least one must be set;
// any combination is allowed.
type SimulateInput struct {
	Refinance    *RefinanceParams
	EarlyPayment *EarlyPaymentParams
	TermChange   *TermChangeParams
}

type RefinanceParams struct {
	NewRate decimal.Decimal
}

type EarlyPaymentParams struct {
	PaymentAmount decimal.Decimal
	PaymentDate   time.Time
}

type TermChangeParams struct {
	NewDurationDays int
}

// ResponseDTO carries the baseline projection plus one entry per requested
// scenario kind, in a fixed order.
type ResponseDTO struct {
	LoanID    string        `json:"loan_id"`
	Current   CurrentDTO    `json:"current"`
	Scenarios []ScenarioDTO `json:"scenarios"`
}

type CurrentDTO struct {
	Amount               float64 `json:"amount"`
	Rate                 float64 `json:"rate"`
	DurationDays         int     `json:"duration_days"`
	Interest             float64 `json:"interest"`
	TotalCost            float64 `json:"total_cost"`
	OutstandingPrincipal float64 `json:"outstanding_principal"`
	RemainingDays        int     `json:"remaining_days"`
	RemainingInterest    float64 `json:"remaining_interest"`
}

// ScenarioDTO is one simulation outcome. Kind-specific fields are pointers:
// a zero saving still renders while fields of other kinds stay out of the
// payload.
type ScenarioDTO struct {
	Type string `json:"type"`

	// refinance
	NewRate        *float64 `json:"new_rate,omitempty"`
	NewInterest    *float64 `json:"new_interest,omitempty"`
	Savings        *float64 `json:"savings,omitempty"`
	SavingsPercent *float64 `json:"savings_percent,omitempty"`

	// early_payment
	PaymentAmount           *float64 `json:"payment_amount,omitempty"`
	PaymentDate             *string  `json:"payment_date,omitempty"`
	FeesPaid                *float64 `json:"fees_paid,omitempty"`
	InterestPaid            *float64 `json:"interest_paid,omitempty"`
	PrincipalPaid           *float64 `json:"principal_paid,omitempty"`
	NewOutstandingPrincipal *float64 `json:"new_outstanding_principal,omitempty"`
	SettlesLoan             *bool    `json:"settles_loan,omitempty"`

	// term_change
	NewDurationDays   *int     `json:"new_duration_days,omitempty"`
	Difference        *float64 `json:"difference,omitempty"`
	DifferencePercent *float64 `json:"difference_percent,omitempty"`

	Recommendation string `json:"recommendation"`
}
