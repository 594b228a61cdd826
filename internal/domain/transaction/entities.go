package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

type Type string

const (
	TypeDraw        Type = "draw"
	TypeRepayment   Type = "repayment"
	TypeFee         Type = "fee"
	TypeInterest    Type = "interest"
	TypeLimitChange Type = "limit_change"
	TypeOther       Type = "other"
)

// ValidType reports whether t is one of the known ledger entry types.
func ValidType(t Type) bool {
	switch t {
	case TypeDraw, TypeRepayment, TypeFee, TypeInterest, TypeLimitChange, TypeOther:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. The ledger is append-only:
// balances are always derived from it, never stored as mutable state.
type Transaction struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TxID   string `gorm:"column:tx_id;type:char(32);not null;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	UserID string `gorm:"column:user_id;type:char(32);not null;index:idx_transactions_user" json:"user_id"`
	BankID string `gorm:"column:bank_id;type:char(32);not null;index:idx_transactions_bank" json:"bank_id"`
	// Optional links; empty when the entry is bank-level only.
	FacilityID string          `gorm:"column:facility_id;type:char(32);index:idx_transactions_facility" json:"facility_id,omitempty"`
	LoanID     string          `gorm:"column:loan_id;type:char(32);index:idx_transactions_loan" json:"loan_id,omitempty"`
	Type       Type            `gorm:"column:type;size:16;not null" json:"type"`
	Date       time.Time       `gorm:"column:date;not null;index:idx_transactions_date" json:"date"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Reference  string          `gorm:"column:reference;size:120" json:"reference,omitempty"`
	Notes      string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
