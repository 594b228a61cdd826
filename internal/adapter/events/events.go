package events

import "time"

// Stream carries every portfolio event; consumers filter by type.
const Stream = "portfolio.events"

// Event types
const (
	LoanCreated      = "loan.created"
	LoanRestructured = "loan.restructured"
	LoanSettled      = "loan.settled"

	RepaymentRecorded = "repayment.recorded"
	FeePosted         = "fee.posted"

	FacilityLimitChanged = "facility.limit_changed"
	SnapshotCreated      = "snapshot.created"
)

// Event is the envelope written to the stream. Amounts travel as decimal
// strings so consumers never touch floats.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type LoanCreatedEvent struct {
	LoanID     string `json:"loan_id"`
	FacilityID string `json:"facility_id"`
	Amount     string `json:"amount"`
	DueDate    string `json:"due_date"`
}

type LoanRestructuredEvent struct {
	LoanID     string `json:"loan_id"`
	NewRatePct string `json:"new_rate_pct"`
	NewDueDate string `json:"new_due_date,omitempty"`
}

type LoanSettledEvent struct {
	LoanID        string `json:"loan_id"`
	SettledOn     string `json:"settled_on"`
	SettledAmount string `json:"settled_amount"`
}

type RepaymentRecordedEvent struct {
	LoanID    string `json:"loan_id"`
	TxID      string `json:"tx_id"`
	Amount    string `json:"amount"`
	Fees      string `json:"fees"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
}

type FeePostedEvent struct {
	LoanID string `json:"loan_id"`
	TxID   string `json:"tx_id"`
	Amount string `json:"amount"`
}

type FacilityLimitChangedEvent struct {
	FacilityID string `json:"facility_id"`
	TxID       string `json:"tx_id"`
	OldLimit   string `json:"old_limit"`
	NewLimit   string `json:"new_limit"`
}

type SnapshotCreatedEvent struct {
	SnapshotID string `json:"snapshot_id"`
	BankID     string `json:"bank_id,omitempty"`
	Date       string `json:"date"`
}
