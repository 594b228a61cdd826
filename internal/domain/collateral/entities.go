package collateral

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("collateral not found")

// Collateral is a pledged asset. Only CurrentValue participates in loan-to-value
// computation; revaluation replaces it (the appraisal history is not modeled).
type Collateral struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CollateralID string          `gorm:"column:collateral_id;type:char(32);not null;uniqueIndex:ux_collaterals_collateral_id" json:"collateral_id"`
	UserID       string          `gorm:"column:user_id;type:char(32);not null;index:idx_collaterals_user" json:"user_id"`
	AssetType    string          `gorm:"column:asset_type;size:60;not null" json:"asset_type"`
	Description  string          `gorm:"column:description;size:255" json:"description,omitempty"`
	CurrentValue decimal.Decimal `gorm:"column:current_value;type:decimal(18,2);not null" json:"current_value"`
	// Optional links to the exposure the asset secures.
	FacilityID string    `gorm:"column:facility_id;type:char(32);index:idx_collaterals_facility" json:"facility_id,omitempty"`
	LoanID     string    `gorm:"column:loan_id;type:char(32);index:idx_collaterals_loan" json:"loan_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Collateral) TableName() string { return "collaterals" }
