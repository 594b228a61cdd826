package facility

import (
	"time"

	"github.com/shopspring/decimal"

	domain "tamweel-backend/internal/domain/facility"
)

type CreateInput struct {
	BankID      string
	Name        string
	Type        domain.Type
	CreditLimit decimal.Decimal
	SiborRate   decimal.Decimal
	BankRate    decimal.Decimal
	StartDate   time.Time
	ExpiryDate  time.Time
}

type ChangeLimitInput struct {
	NewLimit  decimal.Decimal
	Reference string
	Notes     string
}

// FacilityDTO is the facility row plus its derived standing: outstanding
// principal replayed from the ledger, the headroom left and the utilization.
type FacilityDTO struct {
	FacilityID         string    `json:"facility_id"`
	BankID             string    `json:"bank_id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	CreditLimit        float64   `json:"credit_limit"`
	SiborRate          float64   `json:"sibor_rate"`
	BankRate           float64   `json:"bank_rate"`
	AllInRate          float64   `json:"all_in_rate"`
	StartDate          string    `json:"start_date"`
	ExpiryDate         string    `json:"expiry_date"`
	Active             bool      `json:"active"`
	Outstanding        float64   `json:"outstanding"`
	AvailableCredit    float64   `json:"available_credit"`
	Utilization        float64   `json:"utilization"`
	UtilizationDefined bool      `json:"utilization_defined"`
	OpenLoans          int       `json:"open_loans"`
	CreatedAt          time.Time `json:"created_at"`
}

type LimitChangeDTO struct {
	FacilityID string  `json:"facility_id"`
	TxID       string  `json:"tx_id"`
	OldLimit   float64 `json:"old_limit"`
	NewLimit   float64 `json:"new_limit"`
	Delta      float64 `json:"delta"`
	Date       string  `json:"date"`
}
