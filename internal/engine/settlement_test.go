package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/transaction"
)

func testLoan(amount, siborRate, bankRate string) *loan.Loan {
	return &loan.Loan{
		LoanID:     "8a172fd215f04f9db20a0a9a4f1a9e01",
		UserID:     "5f0c12aa09b44a6f8b9f2f3f0a1b2c3d",
		FacilityID: "c9b7e2d4a1f64321d876543210fedcba",
		Amount:     dec(amount),
		SiborRate:  dec(siborRate),
		BankRate:   dec(bankRate),
		StartDate:  day(2024, 1, 1),
		DueDate:    day(2024, 12, 31),
		Status:     loan.StatusActive,
	}
}

func entry(id uint64, typ transaction.Type, date time.Time, amount string) transaction.Transaction {
	return transaction.Transaction{
		ID:     id,
		TxID:   fmt.Sprintf("%032d", id),
		Type:   typ,
		Date:   date,
		Amount: dec(amount),
	}
}

func TestReplayAccruesToNow(t *testing.T) {
	t.Parallel()

	l := testLoan("100000", "5.25", "3.00")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "100000"),
	}

	st, err := Replay(l, txns, day(2024, 3, 31))
	require.NoError(t, err)

	assert.Equal(t, loan.StatusActive, st.Status)
	assert.True(t, st.OutstandingPrincipal.Equal(dec("100000")))
	assert.Equal(t, "2034.25", st.OutstandingInterest.StringFixed(2))
	assert.True(t, st.OutstandingFees.IsZero())
	assert.True(t, st.TotalDrawn.Equal(dec("100000")))
	assert.True(t, st.SettlementProgress.IsZero())
	assert.True(t, st.InterestProgress.IsZero())
	assert.Nil(t, st.SettledOn)
}

func TestReplayAllocatesRepaymentThroughWaterfall(t *testing.T) {
	t.Parallel()

	l := testLoan("50000", "0", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "50000"),
		entry(2, transaction.TypeFee, day(2024, 2, 1), "500"),
		entry(3, transaction.TypeInterest, day(2024, 2, 15), "1200"),
		entry(4, transaction.TypeRepayment, day(2024, 3, 1), "2000"),
	}

	st, err := Replay(l, txns, day(2024, 3, 31))
	require.NoError(t, err)

	assert.True(t, st.FeesPaid.Equal(dec("500")), "fees paid %s", st.FeesPaid)
	assert.True(t, st.InterestPaid.Equal(dec("1200")), "interest paid %s", st.InterestPaid)
	assert.True(t, st.PrincipalPaid.Equal(dec("300")), "principal paid %s", st.PrincipalPaid)
	assert.True(t, st.Overpayment.IsZero())
	assert.True(t, st.OutstandingFees.IsZero())
	assert.True(t, st.OutstandingInterest.IsZero())
	assert.True(t, st.OutstandingPrincipal.Equal(dec("49700")))
	assert.True(t, st.TotalRepaid.Equal(dec("2000")))
	assert.True(t, st.TotalFeesCharged.Equal(dec("500")))
	assert.True(t, st.TotalInterestAccrued.Equal(dec("1200")))
}

func TestReplaySettlesOnFullRepayment(t *testing.T) {
	t.Parallel()

	l := testLoan("10000", "0", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "10000"),
		entry(2, transaction.TypeRepayment, day(2024, 6, 1), "10000"),
	}

	st, err := Replay(l, txns, day(2024, 9, 1))
	require.NoError(t, err)

	assert.Equal(t, loan.StatusSettled, st.Status)
	require.NotNil(t, st.SettledOn)
	assert.True(t, st.SettledOn.Equal(day(2024, 6, 1)))
	assert.True(t, st.SettledAmount.Equal(dec("10000")))
	assert.Equal(t, "100", st.SettlementProgress.String())
	assert.Equal(t, "100", st.PrincipalProgress.String())
	assert.Equal(t, "100", st.InterestProgress.String())
}

func TestReplayOverdueAfterDueDate(t *testing.T) {
	t.Parallel()

	l := testLoan("10000", "8", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "10000"),
	}

	st, err := Replay(l, txns, day(2025, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, loan.StatusOverdue, st.Status)
}

func TestReplayWithoutDrawsIsNotSettled(t *testing.T) {
	t.Parallel()

	l := testLoan("10000", "8", "0")

	st, err := Replay(l, nil, day(2024, 6, 1))
	require.NoError(t, err)

	// Zero principal alone is not settlement; nothing was ever drawn.
	assert.Equal(t, loan.StatusActive, st.Status)
	assert.True(t, st.OutstandingPrincipal.IsZero())
	assert.True(t, st.TotalInterestAccrued.IsZero())
	assert.Equal(t, "100", st.InterestProgress.String())
	assert.True(t, st.SettlementProgress.IsZero())
}

func TestReplayIsIdempotent(t *testing.T) {
	t.Parallel()

	l := testLoan("75000", "4.5", "2.25")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "50000"),
		entry(2, transaction.TypeFee, day(2024, 1, 15), "750"),
		entry(3, transaction.TypeDraw, day(2024, 2, 1), "25000"),
		entry(4, transaction.TypeRepayment, day(2024, 4, 1), "12000"),
		entry(5, transaction.TypeOther, day(2024, 4, 2), "999"),
		entry(6, transaction.TypeRepayment, day(2024, 7, 1), "30000"),
	}
	now := day(2024, 10, 1)

	first, err := Replay(l, txns, now)
	require.NoError(t, err)
	second, err := Replay(l, txns, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReplayIgnoresFutureEntries(t *testing.T) {
	t.Parallel()

	l := testLoan("10000", "0", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "10000"),
		entry(2, transaction.TypeRepayment, day(2024, 7, 1), "10000"),
	}

	st, err := Replay(l, txns, day(2024, 3, 1))
	require.NoError(t, err)

	assert.Equal(t, loan.StatusActive, st.Status)
	assert.True(t, st.TotalRepaid.IsZero())
	assert.True(t, st.OutstandingPrincipal.Equal(dec("10000")))
}

func TestReplayAccruesEachRatePeriodAtItsOwnRate(t *testing.T) {
	t.Parallel()

	// Restructured on April 1 from 10% to 5%: the archived period carries the
	// first 91 days, the current rates the 30 days after.
	l := testLoan("100000", "5", "0")
	l.Status = loan.StatusRestructured
	l.RateEffectiveFrom = day(2024, 4, 1)
	l.RateHistory = loan.RatePeriods{
		{From: day(2024, 1, 1), SiborRate: dec("10"), BankRate: dec("0")},
	}
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "100000"),
	}

	st, err := Replay(l, txns, day(2024, 5, 1))
	require.NoError(t, err)

	// 100000 x 0.10 x 91/365 + 100000 x 0.05 x 30/365
	assert.Equal(t, "2904.11", st.OutstandingInterest.StringFixed(2))
	assert.Equal(t, "2904.11", st.TotalInterestAccrued.StringFixed(2))
	assert.Equal(t, loan.StatusRestructured, st.Status)
}

func TestReplayAccruesEarliestKnownRateBeforeItsStart(t *testing.T) {
	t.Parallel()

	// A forward RateEffectiveFrom with nothing archived: the one known rate
	// covers the whole life, including the days before its nominal start.
	l := testLoan("73000", "10", "0")
	l.RateEffectiveFrom = day(2024, 3, 1)
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "73000"),
	}

	st, err := Replay(l, txns, day(2024, 3, 31))
	require.NoError(t, err)

	// 73000 x 0.10 x 90/365 = 1800
	assert.True(t, st.OutstandingInterest.Equal(dec("1800")), "interest %s", st.OutstandingInterest)
}

func TestReplayRestructureKeepsPriorRepaymentAllocations(t *testing.T) {
	t.Parallel()

	// 100k at 10% drawn 2024-01-01; the 2024-12-31 repayment covers the 10000
	// accrued over those 365 days plus 5000 of principal.
	l := testLoan("100000", "10", "0")
	l.DueDate = day(2026, 1, 1)
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "100000"),
		entry(2, transaction.TypeRepayment, day(2024, 12, 31), "15000"),
	}
	effective := day(2024, 12, 31)

	before, err := Replay(l, txns, effective)
	require.NoError(t, err)
	require.True(t, before.OutstandingPrincipal.Equal(dec("95000")), "principal %s", before.OutstandingPrincipal)
	require.True(t, before.InterestPaid.Equal(dec("10000")), "interest paid %s", before.InterestPaid)
	require.True(t, before.OutstandingInterest.IsZero())

	// The restructure flow: archive the running period, then apply the new
	// rate from the effective date.
	l.CloseRatePeriod(effective)
	l.SiborRate, l.BankRate = dec("7.3"), dec("0")
	l.RateEffectiveFrom = effective
	l.Status = loan.StatusRestructured

	after, err := Replay(l, txns, effective)
	require.NoError(t, err)

	assert.True(t, after.OutstandingPrincipal.Equal(before.OutstandingPrincipal),
		"principal drifted across the rate change: %s -> %s", before.OutstandingPrincipal, after.OutstandingPrincipal)
	assert.True(t, after.InterestPaid.Equal(before.InterestPaid),
		"interest paid drifted: %s -> %s", before.InterestPaid, after.InterestPaid)
	assert.True(t, after.TotalInterestAccrued.Equal(before.TotalInterestAccrued))
	assert.True(t, after.OutstandingInterest.IsZero())
	assert.Nil(t, after.SettledOn)
	assert.Equal(t, loan.StatusRestructured, after.Status)

	// Only days after the change accrue at the new rate:
	// 95000 x 0.073 x 30/365 = 570.
	later, err := Replay(l, txns, day(2025, 1, 30))
	require.NoError(t, err)
	assert.True(t, later.OutstandingInterest.Equal(dec("570")), "interest %s", later.OutstandingInterest)
}

func TestReplayRedrawReopensSettledLoan(t *testing.T) {
	t.Parallel()

	l := testLoan("7000", "0", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "5000"),
		entry(2, transaction.TypeRepayment, day(2024, 2, 1), "5000"),
		entry(3, transaction.TypeDraw, day(2024, 3, 1), "2000"),
	}

	st, err := Replay(l, txns, day(2024, 4, 1))
	require.NoError(t, err)

	assert.Equal(t, loan.StatusActive, st.Status)
	assert.Nil(t, st.SettledOn)
	assert.True(t, st.OutstandingPrincipal.Equal(dec("2000")))
	assert.True(t, st.TotalDrawn.Equal(dec("7000")))
	assert.True(t, st.TotalRepaid.Equal(dec("5000")))
}

func TestReplayRecordsOverpaymentRemainder(t *testing.T) {
	t.Parallel()

	l := testLoan("1000", "0", "0")
	txns := []transaction.Transaction{
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "1000"),
		entry(2, transaction.TypeRepayment, day(2024, 2, 1), "1500"),
	}

	st, err := Replay(l, txns, day(2024, 3, 1))
	require.NoError(t, err)

	assert.Equal(t, loan.StatusSettled, st.Status)
	assert.True(t, st.Overpayment.Equal(dec("500")))
	assert.True(t, st.SettledAmount.Equal(dec("1500")))
}

func TestReplayOrdersSameDayEntriesByInsertion(t *testing.T) {
	t.Parallel()

	l := testLoan("1000", "0", "0")
	txns := []transaction.Transaction{
		entry(3, transaction.TypeRepayment, day(2024, 2, 1), "100"),
		entry(1, transaction.TypeDraw, day(2024, 1, 1), "1000"),
		entry(2, transaction.TypeFee, day(2024, 2, 1), "100"),
	}

	st, err := Replay(l, txns, day(2024, 3, 1))
	require.NoError(t, err)

	// The fee was inserted before the repayment, so the payment clears it
	// instead of touching principal.
	assert.True(t, st.FeesPaid.Equal(dec("100")))
	assert.True(t, st.PrincipalPaid.IsZero())
	assert.True(t, st.OutstandingPrincipal.Equal(dec("1000")))
}

func TestReplayValidation(t *testing.T) {
	t.Parallel()

	inverted := testLoan("1000", "0", "0")
	inverted.DueDate = day(2023, 1, 1)

	tests := []struct {
		name string
		l    *loan.Loan
		txns []transaction.Transaction
	}{
		{name: "nil loan", l: nil},
		{name: "due date before start", l: inverted},
		{
			name: "unknown entry type",
			l:    testLoan("1000", "0", "0"),
			txns: []transaction.Transaction{entry(1, "chargeback", day(2024, 2, 1), "10")},
		},
		{
			name: "non-positive draw",
			l:    testLoan("1000", "0", "0"),
			txns: []transaction.Transaction{entry(1, transaction.TypeDraw, day(2024, 2, 1), "0")},
		},
		{
			name: "negative fee",
			l:    testLoan("1000", "0", "0"),
			txns: []transaction.Transaction{entry(1, transaction.TypeFee, day(2024, 2, 1), "-10")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Replay(tt.l, tt.txns, day(2024, 6, 1))
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}
