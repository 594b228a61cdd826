package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		payment       string
		fees          string
		interest      string
		principal     string
		wantFees      string
		wantInterest  string
		wantPrincipal string
		wantRemainder string
		wantErr       bool
	}{
		{
			name:    "fees then interest then principal",
			payment: "2000", fees: "500", interest: "1200", principal: "50000",
			wantFees: "500", wantInterest: "1200", wantPrincipal: "300", wantRemainder: "0",
		},
		{
			name:    "payment exhausted by fees",
			payment: "300", fees: "500", interest: "1200", principal: "50000",
			wantFees: "300", wantInterest: "0", wantPrincipal: "0", wantRemainder: "0",
		},
		{
			name:    "covers everything with change",
			payment: "5000", fees: "100", interest: "400", principal: "2000",
			wantFees: "100", wantInterest: "400", wantPrincipal: "2000", wantRemainder: "2500",
		},
		{
			name:    "nothing owed",
			payment: "250", fees: "0", interest: "0", principal: "0",
			wantFees: "0", wantInterest: "0", wantPrincipal: "0", wantRemainder: "250",
		},
		{
			name:    "zero payment",
			payment: "0", fees: "500", interest: "100", principal: "1000",
			wantFees: "0", wantInterest: "0", wantPrincipal: "0", wantRemainder: "0",
		},
		{
			name:    "negative payment",
			payment: "-1", fees: "0", interest: "0", principal: "0",
			wantErr: true,
		},
		{
			name:    "negative obligation",
			payment: "100", fees: "-5", interest: "0", principal: "0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Allocate(dec(tt.payment), dec(tt.fees), dec(tt.interest), dec(tt.principal))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)

			assert.True(t, got.Fees.Equal(dec(tt.wantFees)), "fees: got %s", got.Fees)
			assert.True(t, got.Interest.Equal(dec(tt.wantInterest)), "interest: got %s", got.Interest)
			assert.True(t, got.Principal.Equal(dec(tt.wantPrincipal)), "principal: got %s", got.Principal)
			assert.True(t, got.Remainder.Equal(dec(tt.wantRemainder)), "remainder: got %s", got.Remainder)

			// Conservation: the four buckets always account for the payment.
			assert.True(t, got.Total().Equal(dec(tt.payment)),
				"allocated %s of payment %s", got.Total(), tt.payment)
			assert.True(t, got.Fees.LessThanOrEqual(dec(tt.fees)))
			assert.True(t, got.Interest.LessThanOrEqual(dec(tt.interest)))
			assert.True(t, got.Principal.LessThanOrEqual(dec(tt.principal)))
		})
	}
}
