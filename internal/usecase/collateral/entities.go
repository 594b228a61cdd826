package collateral

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	AssetType    string
	Description  string
	CurrentValue decimal.Decimal
	// Optional links to the exposure the asset secures.
	FacilityID string
	LoanID     string
}

type RevalueInput struct {
	NewValue decimal.Decimal
}

type CollateralDTO struct {
	CollateralID string    `json:"collateral_id"`
	AssetType    string    `json:"asset_type"`
	Description  string    `json:"description,omitempty"`
	CurrentValue float64   `json:"current_value"`
	FacilityID   string    `json:"facility_id,omitempty"`
	LoanID       string    `json:"loan_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
