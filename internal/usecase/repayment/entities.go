package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordInput struct {
	Amount    decimal.Decimal
	Date      time.Time
	Reference string
	Notes     string
}

type FeeInput struct {
	Amount    decimal.Decimal
	Date      time.Time
	Reference string
	Notes     string
}

// ReceiptDTO reports how a payment was split and what remains afterwards.
type ReceiptDTO struct {
	LoanID               string  `json:"loan_id"`
	TxID                 string  `json:"tx_id"`
	Amount               float64 `json:"amount"`
	Date                 string  `json:"date"`
	FeesPaid             float64 `json:"fees_paid"`
	InterestPaid         float64 `json:"interest_paid"`
	PrincipalPaid        float64 `json:"principal_paid"`
	OutstandingFees      float64 `json:"outstanding_fees"`
	OutstandingInterest  float64 `json:"outstanding_interest"`
	OutstandingPrincipal float64 `json:"outstanding_principal"`
	Settled              bool    `json:"settled"`
	LoanStatus           string  `json:"loan_status"`
}

// FeeDTO confirms a posted fee.
type FeeDTO struct {
	LoanID          string  `json:"loan_id"`
	TxID            string  `json:"tx_id"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	OutstandingFees float64 `json:"outstanding_fees"`
}
