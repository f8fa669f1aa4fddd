package sizing

import "github.com/shopspring/decimal"

// Output precision per field family.
const (
	EnergyPlaces   int32 = 2 // kWh, kW
	CurrencyPlaces int32 = 0 // whole currency units
	YearPlaces     int32 = 1 // years, ROI percent
)

// Round rounds x to places decimal digits, half away from zero.
// x must be finite.
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// RoundCurrency rounds to whole currency units.
func RoundCurrency(x float64) float64 { return Round(x, CurrencyPlaces) }
