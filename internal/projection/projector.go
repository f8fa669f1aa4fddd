package projection

import (
	"math"

	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
)

// DefaultYears is the horizon used when callers do not ask for one.
const DefaultYears = 10

// Projector builds cumulative solar vs diesel cost series for one market.
type Projector struct {
	market model.MarketParams
	calc   *sizing.Calculator
}

func New(market model.MarketParams) *Projector {
	return &Projector{market: market.Clone(), calc: sizing.NewCalculator(market)}
}

// Project returns one point per year for years 1..years, ascending.
// The solar path starts at the installed system cost and adds maintenance from
// year 2; the diesel path starts at the generator cost and adds inflating fuel.
// years <= 0 yields an empty series.
func (p *Projector) Project(bill float64, years int) []model.CostComparisonPoint {
	if years <= 0 {
		return []model.CostComparisonPoint{}
	}
	initialSolar := p.calc.Size(bill).Costs.Total
	return p.series(initialSolar, years)
}

// MonthlyFuelCost is the year-1 diesel fuel spend per month.
func (p *Projector) MonthlyFuelCost() float64 {
	d := p.market.Diesel
	liters := d.LitersPerHour * d.HoursPerDay * p.market.DaysPerMonth
	return liters * d.FuelPricePerLiter
}

func (p *Projector) series(initialSolar float64, years int) []model.CostComparisonPoint {
	d := p.market.Diesel
	monthlyFuel := p.MonthlyFuelCost()

	out := make([]model.CostComparisonPoint, 0, years)
	solarCum := initialSolar
	dieselCum := d.GeneratorCost

	for year := 1; year <= years; year++ {
		inflation := math.Pow(1+d.FuelInflationRate, float64(year-1))
		dieselCum += monthlyFuel * 12 * inflation

		// Installation covers the first year.
		if year > 1 {
			solarCum += p.market.SolarMaintenancePerYear
		}

		out = append(out, model.CostComparisonPoint{
			Year:             year,
			SolarCumulative:  sizing.RoundCurrency(solarCum),
			DieselCumulative: sizing.RoundCurrency(dieselCum),
		})
	}
	return out
}
