package facility

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("facility not found")
	ErrInactive = errors.New("facility is inactive")
	ErrExpired  = errors.New("facility has expired")
)

type Type string

const (
	TypeTerm           Type = "term"
	TypeRevolving      Type = "revolving"
	TypeWorkingCapital Type = "working_capital"
	TypeOverdraft      Type = "overdraft"
	TypeBridge         Type = "bridge"
)

// ValidType reports whether t is one of the known facility types.
func ValidType(t Type) bool {
	switch t {
	case TypeTerm, TypeRevolving, TypeWorkingCapital, TypeOverdraft, TypeBridge:
		return true
	}
	return false
}

// Facility is a credit line granted by a bank. CreditLimit is never negative;
// an inactive or expired facility must not accept new drawdowns.
type Facility struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	FacilityID  string          `gorm:"column:facility_id;type:char(32);not null;uniqueIndex:ux_facilities_facility_id" json:"facility_id"`
	UserID      string          `gorm:"column:user_id;type:char(32);not null;index:idx_facilities_user" json:"user_id"`
	BankID      string          `gorm:"column:bank_id;type:char(32);not null;index:idx_facilities_bank" json:"bank_id"`
	Name        string          `gorm:"column:name;size:120;not null" json:"name"`
	Type        Type            `gorm:"column:type;size:20;not null" json:"type"`
	CreditLimit decimal.Decimal `gorm:"column:credit_limit;type:decimal(18,2);not null" json:"credit_limit"`
	// Reference and margin rates recorded when the facility was granted,
	// annual percentages (e.g. 5.7500 for 5.75%).
	SiborRate  decimal.Decimal `gorm:"column:sibor_rate;type:decimal(8,4);not null" json:"sibor_rate"`
	BankRate   decimal.Decimal `gorm:"column:bank_rate;type:decimal(8,4);not null" json:"bank_rate"`
	StartDate  time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	ExpiryDate time.Time       `gorm:"column:expiry_date;type:date;not null" json:"expiry_date"`
	Active     bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Facility) TableName() string { return "facilities" }

// AllInRate is SIBOR plus the bank margin, the effective annual rate.
func (f *Facility) AllInRate() decimal.Decimal {
	return f.SiborRate.Add(f.BankRate)
}

// ExpiredAt reports whether the facility's availability period has ended.
func (f *Facility) ExpiredAt(now time.Time) bool {
	return now.After(f.ExpiryDate)
}

// WithinPeriod reports whether now falls inside [StartDate, ExpiryDate].
func (f *Facility) WithinPeriod(now time.Time) bool {
	return !now.Before(f.StartDate) && !now.After(f.ExpiryDate)
}
