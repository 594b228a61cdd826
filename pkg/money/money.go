package money

import "github.com/shopspring/decimal"

// Currency is the single unit every amount in the system is expressed in.
// There is no multi-currency conversion anywhere in the engine.
const Currency = "SAR"

// minorUnitPlaces is the SAR minor unit (halalas), used only at presentation.
const minorUnitPlaces = 2

// Round rounds an amount to the currency's minor unit. Engine code keeps full
// precision; call this only when assembling a response payload.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(minorUnitPlaces)
}

// AsFloat renders an amount as a JSON-friendly number rounded to the minor unit.
func AsFloat(d decimal.Decimal) float64 {
	return Round(d).InexactFloat64()
}

// Percent returns part/whole expressed as a percentage, or zero when whole is
// zero. Callers that need to distinguish "0%" from "not measurable" must check
// the denominator themselves before calling.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

// ClampPercent bounds a percentage to [0, 100] for progress-style figures.
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if p.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
