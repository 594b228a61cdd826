package loan

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrAlreadySettled    = errors.New("loan is already settled")
)

type Status string

const (
	StatusActive       Status = "active"
	StatusOverdue      Status = "overdue"
	StatusSettled      Status = "settled"
	StatusRestructured Status = "restructured"
)

// transitions lists the allowed status moves. Settled is terminal; a
// restructured loan continues its life under the new terms.
var transitions = map[Status][]Status{
	StatusActive:       {StatusOverdue, StatusRestructured, StatusSettled},
	StatusOverdue:      {StatusSettled, StatusRestructured},
	StatusRestructured: {StatusOverdue, StatusRestructured, StatusSettled},
	StatusSettled:      {},
}

// CanTransitionTo reports whether moving from s to target is permitted.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RatePeriod is one closed segment of a loan's rate timeline: the rates that
// applied from From until the next period (or the current rates) took over.
type RatePeriod struct {
	From      time.Time       `json:"from"`
	SiborRate decimal.Decimal `json:"sibor_rate"`
	BankRate  decimal.Decimal `json:"bank_rate"`
}

// AllInRate is the period's SIBOR plus bank margin, an annual percentage.
func (p RatePeriod) AllInRate() decimal.Decimal {
	return p.SiborRate.Add(p.BankRate)
}

// RatePeriods is a loan's archived rate timeline. It rides on the loan row
// as a JSON text column and is never queried on its own.
type RatePeriods []RatePeriod

func (ps RatePeriods) Value() (driver.Value, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ps *RatePeriods) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ps = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*ps = nil
			return nil
		}
		return json.Unmarshal(v, ps)
	case string:
		if v == "" {
			*ps = nil
			return nil
		}
		return json.Unmarshal([]byte(v), ps)
	default:
		return fmt.Errorf("rate history: cannot scan %T", src)
	}
}

// Loan is a single drawdown against a facility. Amount is the original drawn
// principal and never changes; outstanding, paid and overdue are derived from
// the transaction ledger at read time.
type Loan struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID string `gorm:"column:user_id;type:char(32);not null;index:idx_loans_user" json:"user_id"`
	// Credit-line reference
	FacilityID string          `gorm:"column:facility_id;type:char(32);not null;index:idx_loans_facility" json:"facility_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	// Rates fixed at drawdown; restructuring archives the outgoing period in
	// RateHistory and records the new values from RateEffectiveFrom, so replay
	// can accrue every past day at the rate that governed it.
	SiborRate         decimal.Decimal     `gorm:"column:sibor_rate;type:decimal(8,4);not null" json:"sibor_rate"`
	BankRate          decimal.Decimal     `gorm:"column:bank_rate;type:decimal(8,4);not null" json:"bank_rate"`
	RateEffectiveFrom time.Time           `gorm:"column:rate_effective_from;not null" json:"rate_effective_from"`
	RateHistory       RatePeriods         `gorm:"column:rate_history;type:text" json:"rate_history,omitempty"`
	StartDate         time.Time           `gorm:"column:start_date;type:date;not null" json:"start_date"`
	DueDate           time.Time           `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Status            Status              `gorm:"column:status;size:16;not null;default:'active'" json:"status"`
	SettledAt         *time.Time          `gorm:"column:settled_at" json:"settled_at,omitempty"`
	SettledAmount     decimal.NullDecimal `gorm:"column:settled_amount;type:decimal(18,2)" json:"settled_amount,omitempty"`
	StatusUpdatedAt   time.Time           `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// AllInRate is SIBOR plus the bank margin at drawdown (or after the latest
// restructuring), an annual percentage.
func (l *Loan) AllInRate() decimal.Decimal {
	return l.SiborRate.Add(l.BankRate)
}

// CloseRatePeriod archives the running rate period ahead of a rate change
// taking effect at from. A change on the very day the running period started
// leaves nothing to archive: that period never covered a full day.
func (l *Loan) CloseRatePeriod(from time.Time) {
	if from.Equal(l.RateEffectiveFrom) {
		return
	}
	l.RateHistory = append(l.RateHistory, RatePeriod{
		From:      l.RateEffectiveFrom,
		SiborRate: l.SiborRate,
		BankRate:  l.BankRate,
	})
}

// RateSchedule is the loan's complete rate timeline oldest first: the archived
// periods followed by the current rates from RateEffectiveFrom (falling back
// to StartDate when unset). Never empty.
func (l *Loan) RateSchedule() RatePeriods {
	eff := l.RateEffectiveFrom
	if eff.IsZero() {
		eff = l.StartDate
	}
	sched := make(RatePeriods, 0, len(l.RateHistory)+1)
	sched = append(sched, l.RateHistory...)
	sched = append(sched, RatePeriod{From: eff, SiborRate: l.SiborRate, BankRate: l.BankRate})
	sort.SliceStable(sched, func(i, j int) bool { return sched[i].From.Before(sched[j].From) })
	return sched
}

// Transition moves the loan to target after checking the state machine.
func (l *Loan) Transition(target Status, at time.Time) error {
	if !l.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	l.Status = target
	l.StatusUpdatedAt = at
	return nil
}
