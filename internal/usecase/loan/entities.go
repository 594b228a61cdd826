package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawdownInput opens a loan against a facility. The loan inherits the
// facility's rates at drawdown time.
type DrawdownInput struct {
	FacilityID string
	Amount     decimal.Decimal
	StartDate  time.Time
	DueDate    time.Time
	Reference  string
	Notes      string
}

// RestructureInput renegotiates the terms from EffectiveDate onward. The
// outgoing rate period moves into the loan's rate history so the new rate
// never rewrites past accrual.
type RestructureInput struct {
	NewSiborRate  decimal.Decimal
	NewBankRate   decimal.Decimal
	EffectiveDate time.Time
	NewDueDate    *time.Time
}

// LoanDTO is the stored view of a loan, built from the row alone.
type LoanDTO struct {
	LoanID            string     `json:"loan_id"`
	FacilityID        string     `json:"facility_id"`
	Amount            float64    `json:"amount"`
	SiborRate         float64    `json:"sibor_rate"`
	BankRate          float64    `json:"bank_rate"`
	AllInRate         float64    `json:"all_in_rate"`
	RateEffectiveFrom string     `json:"rate_effective_from"`
	StartDate         string     `json:"start_date"`
	DueDate           string     `json:"due_date"`
	Status            string     `json:"status"`
	SettledAt         *time.Time `json:"settled_at,omitempty"`
	SettledAmount     *float64   `json:"settled_amount,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// LoanDetailDTO adds the figures derived by replaying the ledger.
type LoanDetailDTO struct {
	LoanDTO
	DerivedStatus        string    `json:"derived_status"`
	OutstandingPrincipal float64   `json:"outstanding_principal"`
	AccruedInterest      float64   `json:"accrued_interest"`
	OutstandingFees      float64   `json:"outstanding_fees"`
	TotalOutstanding     float64   `json:"total_outstanding"`
	TotalRepaid          float64   `json:"total_repaid"`
	SettlementProgress   float64   `json:"settlement_progress"`
	AsOf                 time.Time `json:"as_of"`
}

// TransactionDTO is one ledger row of a loan's history.
type TransactionDTO struct {
	TxID      string  `json:"tx_id"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}
