package snapshot

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("snapshot not found")

// ExposureSnapshot is a point-in-time materialization of aggregator output,
// a cache for history views, never a source of truth. BankID is empty for
// whole-portfolio rows.
type ExposureSnapshot struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	SnapshotID  string          `gorm:"column:snapshot_id;type:char(32);not null;uniqueIndex:ux_snapshots_snapshot_id" json:"snapshot_id"`
	UserID      string          `gorm:"column:user_id;type:char(32);not null;index:idx_snapshots_user" json:"user_id"`
	BankID      string          `gorm:"column:bank_id;type:char(32);index:idx_snapshots_bank" json:"bank_id,omitempty"`
	Date        time.Time       `gorm:"column:date;not null;index:idx_snapshots_date" json:"date"`
	Outstanding decimal.Decimal `gorm:"column:outstanding;type:decimal(18,2);not null" json:"outstanding"`
	CreditLimit decimal.Decimal `gorm:"column:credit_limit;type:decimal(18,2);not null" json:"credit_limit"`
	// Utilization percent at snapshot time; zero when CreditLimit was zero.
	Utilization decimal.Decimal `gorm:"column:utilization;type:decimal(8,4);not null" json:"utilization"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ExposureSnapshot) TableName() string { return "exposure_snapshots" }
