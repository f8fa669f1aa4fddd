package sizing

import (
	"math"

	"solar-sizer/internal/model"
)

// Calculator converts a monthly bill into a system recommendation for one market.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	market model.MarketParams
}

func NewCalculator(market model.MarketParams) *Calculator {
	return &Calculator{market: market.Clone()}
}

// Market returns a copy of the parameters the calculator was built with.
func (c *Calculator) Market() model.MarketParams { return c.market.Clone() }

// Size builds a SizingResult for bill.
// bill must be finite and > 0; callers validate first (see Validator).
func (c *Calculator) Size(bill float64) model.SizingResult {
	m := c.market

	monthlyKWh := bill / m.TariffPerKWh
	dailyKWh := monthlyKWh / m.DaysPerMonth

	// Generation must replace the daily consumption within the peak sun window.
	idealKW := dailyKWh / m.PeakSunHours

	panelCount := int(math.Ceil(idealKW * 1000 / m.PanelWattage))
	actualKW := float64(panelCount) * m.PanelWattage / 1000

	requiredKVA := idealKW * m.InverterHeadroom
	inverterKVA, capped := selectInverter(m.StandardInverterSizesKVA, requiredKVA)

	storageWh := dailyKWh * 1000 * (m.BackupHours / 24)
	batteryAh := int(math.Ceil(storageWh / m.SystemVoltage / m.DepthOfDischarge / m.BatteryEfficiency))
	batteryCount := int(math.Ceil(float64(batteryAh) / m.StandardBatteryAh))

	panelsCost := RoundCurrency(float64(panelCount) * m.CostPerPanel)
	inverterCost := RoundCurrency(inverterKVA * m.CostPerKVAInverter)
	batteriesCost := RoundCurrency(float64(batteryCount) * m.CostPerBattery)
	equipment := panelsCost + inverterCost + batteriesCost
	installation := RoundCurrency(equipment * m.InstallationRate)
	total := equipment + installation

	monthlySavings := bill * m.SavingsRate
	paybackMonths := int(math.Ceil(total / monthlySavings))
	lifetimeSavings := monthlySavings*12*float64(m.LifespanYears) - total
	roi := 0.0
	if total > 0 {
		roi = lifetimeSavings / total * 100
	}

	res := model.SizingResult{
		Input: model.SizingInput{
			MonthlyBill:  bill,
			TariffPerKWh: m.TariffPerKWh,
		},
		Consumption: model.Consumption{
			MonthlyKWh: Round(monthlyKWh, EnergyPlaces),
			DailyKWh:   Round(dailyKWh, EnergyPlaces),
		},
		SystemSize: model.SystemSize{
			IdealCapacityKW:  Round(idealKW, EnergyPlaces),
			ActualCapacityKW: Round(actualKW, EnergyPlaces),
		},
		Components: model.Components{
			Panels: model.PanelSpec{
				Quantity:        panelCount,
				WattagePerPanel: m.PanelWattage,
				TotalCapacityKW: Round(actualKW, EnergyPlaces),
			},
			Inverter: model.InverterSpec{
				SizeKVA:     inverterKVA,
				RequiredKVA: Round(requiredKVA, EnergyPlaces),
				Type:        m.InverterType,
				Capped:      capped,
			},
			Batteries: model.BatterySpec{
				Quantity:             batteryCount,
				CapacityPerBatteryAh: m.StandardBatteryAh,
				TotalCapacityAh:      batteryAh,
				BackupHours:          m.BackupHours,
				SystemVoltage:        m.SystemVoltage,
			},
		},
		Costs: model.CostBreakdown{
			Panels:       panelsCost,
			Inverter:     inverterCost,
			Batteries:    batteriesCost,
			Equipment:    equipment,
			Installation: installation,
			Total:        total,
		},
		Financials: model.Financials{
			MonthlySavings:      RoundCurrency(monthlySavings),
			PaybackPeriodMonths: paybackMonths,
			PaybackPeriodYears:  Round(float64(paybackMonths)/12, YearPlaces),
			LifetimeSavings:     RoundCurrency(lifetimeSavings),
			ROI:                 Round(roi, YearPlaces),
		},
	}
	res.Explanation = explain(m, res, dailyKWh, actualKW, monthlySavings)
	return res
}

// selectInverter picks the smallest standard size covering required.
// sizes must be ascending. When nothing fits, the largest size is returned and
// capped is true: sizing is capped rather than failed.
func selectInverter(sizes []float64, required float64) (kva float64, capped bool) {
	for _, s := range sizes {
		if s >= required {
			return s, false
		}
	}
	return sizes[len(sizes)-1], true
}
