package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "half_up", in: "10.005", want: "10.01"},
		{name: "truncates_extra_places", in: "2034.2465753424", want: "2034.25"},
		{name: "already_minor_unit", in: "500.10", want: "500.1"},
		{name: "negative", in: "-1.005", want: "-1.01"},
		{name: "zero", in: "0", want: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Round(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAsFloat(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 2034.25, AsFloat(decimal.RequireFromString("2034.2465753424")), 1e-9)
	assert.InDelta(t, 0, AsFloat(decimal.Zero), 1e-9)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		part  string
		whole string
		want  string
	}{
		{name: "half", part: "50", whole: "100", want: "50"},
		{name: "full", part: "250", whole: "250", want: "100"},
		{name: "zero_whole_is_zero", part: "10", whole: "0", want: "0"},
		{name: "over_100", part: "300", whole: "200", want: "150"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Percent(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.whole))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestClampPercent(t *testing.T) {
	t.Parallel()
	assert.True(t, ClampPercent(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, ClampPercent(decimal.NewFromInt(150)).Equal(decimal.NewFromInt(100)))
	assert.True(t, ClampPercent(decimal.NewFromFloat(42.5)).Equal(decimal.NewFromFloat(42.5)))
}
