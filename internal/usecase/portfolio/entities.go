package portfolio

import "time"

// SummaryDTO is the dashboard rollup of the whole book.
type SummaryDTO struct {
	TotalOutstanding     float64           `json:"total_outstanding"`
	TotalCreditLimit     float64           `json:"total_credit_limit"`
	AvailableCredit      float64           `json:"available_credit"`
	TotalCollateralValue float64           `json:"total_collateral_value"`
	PortfolioLTV         float64           `json:"portfolio_ltv"`
	LTVDefined           bool              `json:"ltv_defined"`
	ActiveLoansCount     int               `json:"active_loans_count"`
	BankExposures        []BankExposureDTO `json:"bank_exposures"`
	AsOf                 time.Time         `json:"as_of"`
}

type BankExposureDTO struct {
	BankID             string  `json:"bank_id"`
	BankName           string  `json:"bank_name"`
	Outstanding        float64 `json:"outstanding"`
	CreditLimit        float64 `json:"credit_limit"`
	Utilization        float64 `json:"utilization"`
	UtilizationDefined bool    `json:"utilization_defined"`
	ActiveLoans        int     `json:"active_loans"`
}

// SnapshotDTO is one materialized exposure row. BankID is empty on
// whole-portfolio rows.
type SnapshotDTO struct {
	SnapshotID  string    `json:"snapshot_id"`
	BankID      string    `json:"bank_id,omitempty"`
	Date        time.Time `json:"date"`
	Outstanding float64   `json:"outstanding"`
	CreditLimit float64   `json:"credit_limit"`
	Utilization float64   `json:"utilization"`
}
