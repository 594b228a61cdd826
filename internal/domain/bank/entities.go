package bank

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("bank not found")

// Bank is a lending counterparty. Rows are immutable once created except for
// the Active flag (deactivation).
type Bank struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	BankID    string    `gorm:"column:bank_id;type:char(32);not null;uniqueIndex:ux_banks_bank_id" json:"bank_id"`
	UserID    string    `gorm:"column:user_id;type:char(32);not null;index:idx_banks_user" json:"user_id"`
	Name      string    `gorm:"column:name;size:120;not null" json:"name"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Bank) TableName() string { return "banks" }
