package engine

import (
	"github.com/shopspring/decimal"

	"tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/domain/collateral"
	"tamweel-backend/internal/domain/facility"

	"tamweel-backend/pkg/money"
)

// LoanBalance is one open loan's replayed outstanding principal plus the
// identifiers needed to roll it up.
type LoanBalance struct {
	LoanID      string
	FacilityID  string
	BankID      string
	Outstanding decimal.Decimal
}

// AggregateInput carries everything Aggregate needs. Balances come from
// replaying each open loan's ledger; the caller decides which loans count.
type AggregateInput struct {
	Banks      []bank.Bank
	Facilities []facility.Facility
	Balances   []LoanBalance
	Collateral []collateral.Collateral
}

// BankExposure is the per-bank rollup. Utilization is outstanding over the
// bank's combined credit limit; UtilizationDefined is false when the bank has
// no limit to divide by.
type BankExposure struct {
	BankID             string
	BankName           string
	Outstanding        decimal.Decimal
	CreditLimit        decimal.Decimal
	Utilization        decimal.Decimal
	UtilizationDefined bool
	ActiveLoans        int
}

// Portfolio is the whole-book view. The bank exposures always sum to the
// portfolio totals: balances whose bank is unknown are still rolled into an
// exposure row rather than dropped.
type Portfolio struct {
	TotalOutstanding     decimal.Decimal
	TotalCreditLimit     decimal.Decimal
	AvailableCredit      decimal.Decimal
	TotalCollateralValue decimal.Decimal
	LTV                  decimal.Decimal
	LTVDefined           bool
	ActiveLoans          int
	BankExposures        []BankExposure
}

// Aggregate rolls loan balances up to per-bank exposures and the portfolio
// totals. Banks with neither a facility nor an open balance are omitted.
func Aggregate(in AggregateInput) Portfolio {
	names := make(map[string]string, len(in.Banks))
	order := make([]string, 0, len(in.Banks))
	for _, b := range in.Banks {
		names[b.BankID] = b.Name
		order = append(order, b.BankID)
	}

	limits := make(map[string]decimal.Decimal)
	facilityBank := make(map[string]string, len(in.Facilities))
	for _, f := range in.Facilities {
		facilityBank[f.FacilityID] = f.BankID
		limits[f.BankID] = limits[f.BankID].Add(f.CreditLimit)
	}

	outstanding := make(map[string]decimal.Decimal)
	loans := make(map[string]int)
	for _, lb := range in.Balances {
		bankID := lb.BankID
		if bankID == "" {
			bankID = facilityBank[lb.FacilityID]
		}
		outstanding[bankID] = outstanding[bankID].Add(lb.Outstanding)
		loans[bankID]++
		if _, known := names[bankID]; !known {
			names[bankID] = ""
			order = append(order, bankID)
		}
	}

	var p Portfolio
	for _, id := range order {
		out := outstanding[id]
		limit := limits[id]
		if out.IsZero() && limit.IsZero() && loans[id] == 0 {
			continue
		}
		exp := BankExposure{
			BankID:      id,
			BankName:    names[id],
			Outstanding: out,
			CreditLimit: limit,
			ActiveLoans: loans[id],
		}
		if limit.IsPositive() {
			exp.Utilization = money.Percent(out, limit)
			exp.UtilizationDefined = true
		}
		p.BankExposures = append(p.BankExposures, exp)
		p.TotalOutstanding = p.TotalOutstanding.Add(out)
		p.TotalCreditLimit = p.TotalCreditLimit.Add(limit)
		p.ActiveLoans += loans[id]
	}

	// Negative when the book is over-advanced, e.g. accrued interest pushed
	// outstanding past the limit.
	p.AvailableCredit = p.TotalCreditLimit.Sub(p.TotalOutstanding)
	for _, c := range in.Collateral {
		p.TotalCollateralValue = p.TotalCollateralValue.Add(c.CurrentValue)
	}
	if p.TotalCollateralValue.IsPositive() {
		p.LTV = money.Percent(p.TotalOutstanding, p.TotalCollateralValue)
		p.LTVDefined = true
	}
	return p
}
