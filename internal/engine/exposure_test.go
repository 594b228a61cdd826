package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/domain/collateral"
	"tamweel-backend/internal/domain/facility"
)

func TestAggregateRollsUpPerBank(t *testing.T) {
	t.Parallel()

	in := AggregateInput{
		Banks: []bank.Bank{
			{BankID: "alpha", Name: "Alpha Bank"},
			{BankID: "beta", Name: "Beta Bank"},
		},
		Facilities: []facility.Facility{
			{FacilityID: "fac-a1", BankID: "alpha", CreditLimit: dec("1000000")},
			{FacilityID: "fac-a2", BankID: "alpha", CreditLimit: dec("500000")},
			{FacilityID: "fac-b1", BankID: "beta", CreditLimit: dec("750000")},
		},
		Balances: []LoanBalance{
			{LoanID: "l1", FacilityID: "fac-a1", BankID: "alpha", Outstanding: dec("200000")},
			{LoanID: "l2", FacilityID: "fac-a2", BankID: "alpha", Outstanding: dec("100000")},
			{LoanID: "l3", FacilityID: "fac-b1", BankID: "beta", Outstanding: dec("450000")},
		},
		Collateral: []collateral.Collateral{
			{CollateralID: "c1", CurrentValue: dec("2000000")},
			{CollateralID: "c2", CurrentValue: dec("500000")},
		},
	}

	p := Aggregate(in)

	assert.True(t, p.TotalOutstanding.Equal(dec("750000")), "outstanding %s", p.TotalOutstanding)
	assert.True(t, p.TotalCreditLimit.Equal(dec("2250000")))
	assert.True(t, p.AvailableCredit.Equal(dec("1500000")))
	assert.Equal(t, 3, p.ActiveLoans)

	require.Len(t, p.BankExposures, 2)
	alpha, beta := p.BankExposures[0], p.BankExposures[1]
	assert.Equal(t, "Alpha Bank", alpha.BankName)
	assert.True(t, alpha.Outstanding.Equal(dec("300000")))
	assert.True(t, alpha.CreditLimit.Equal(dec("1500000")))
	require.True(t, alpha.UtilizationDefined)
	assert.Equal(t, "20", alpha.Utilization.String())
	assert.Equal(t, 2, alpha.ActiveLoans)
	require.True(t, beta.UtilizationDefined)
	assert.Equal(t, "60", beta.Utilization.String())

	require.True(t, p.LTVDefined)
	assert.True(t, p.TotalCollateralValue.Equal(dec("2500000")))
	assert.Equal(t, "30", p.LTV.String())
}

func TestAggregateExposuresSumToTotals(t *testing.T) {
	t.Parallel()

	// A balance pointing at an unknown facility must still land in a row so
	// the per-bank rollup keeps summing to the portfolio totals.
	in := AggregateInput{
		Banks: []bank.Bank{
			{BankID: "alpha", Name: "Alpha Bank"},
			{BankID: "idle", Name: "Idle Bank"},
		},
		Facilities: []facility.Facility{
			{FacilityID: "fac-a1", BankID: "alpha", CreditLimit: dec("100000")},
		},
		Balances: []LoanBalance{
			{LoanID: "l1", FacilityID: "fac-a1", BankID: "alpha", Outstanding: dec("50000")},
			{LoanID: "l2", FacilityID: "fac-ghost", Outstanding: dec("25000")},
		},
	}

	p := Aggregate(in)

	var outSum, limitSum decimal.Decimal
	loanSum := 0
	for _, e := range p.BankExposures {
		outSum = outSum.Add(e.Outstanding)
		limitSum = limitSum.Add(e.CreditLimit)
		loanSum += e.ActiveLoans
		assert.NotEqual(t, "idle", e.BankID, "bank with no facilities and no balances must be omitted")
	}
	assert.True(t, outSum.Equal(p.TotalOutstanding))
	assert.True(t, limitSum.Equal(p.TotalCreditLimit))
	assert.Equal(t, p.ActiveLoans, loanSum)
	assert.True(t, p.TotalOutstanding.Equal(dec("75000")))
}

func TestAggregateUndefinedRatios(t *testing.T) {
	t.Parallel()

	in := AggregateInput{
		Banks: []bank.Bank{{BankID: "alpha", Name: "Alpha Bank"}},
		Balances: []LoanBalance{
			{LoanID: "l1", FacilityID: "fac-x", BankID: "alpha", Outstanding: dec("150")},
		},
	}

	p := Aggregate(in)

	require.Len(t, p.BankExposures, 1)
	assert.False(t, p.BankExposures[0].UtilizationDefined, "no credit limit means utilization is undefined")
	assert.False(t, p.LTVDefined, "no collateral means LTV is undefined")
	assert.True(t, p.LTV.IsZero())
}

func TestAggregateAvailableCreditGoesNegativeWhenOverAdvanced(t *testing.T) {
	t.Parallel()

	in := AggregateInput{
		Banks: []bank.Bank{{BankID: "alpha", Name: "Alpha Bank"}},
		Facilities: []facility.Facility{
			{FacilityID: "fac-a1", BankID: "alpha", CreditLimit: dec("100000")},
		},
		Balances: []LoanBalance{
			{LoanID: "l1", FacilityID: "fac-a1", BankID: "alpha", Outstanding: dec("150000")},
		},
	}

	p := Aggregate(in)

	assert.True(t, p.AvailableCredit.Equal(dec("-50000")), "available credit %s", p.AvailableCredit)
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	t.Parallel()

	p := Aggregate(AggregateInput{})

	assert.True(t, p.TotalOutstanding.IsZero())
	assert.True(t, p.TotalCreditLimit.IsZero())
	assert.Empty(t, p.BankExposures)
	assert.Equal(t, 0, p.ActiveLoans)
	assert.False(t, p.LTVDefined)
}
