package model

// SizingResult is the full recommendation for one monthly bill.
// It is a value: every sizing call builds a fresh one from the bill and market.
type SizingResult struct {
	Input       SizingInput   `json:"input"`
	Consumption Consumption   `json:"consumption"`
	SystemSize  SystemSize    `json:"systemSize"`
	Components  Components    `json:"components"`
	Costs       CostBreakdown `json:"costs"`
	Financials  Financials    `json:"financials"`
	Explanation string        `json:"explanation"`
}

type SizingInput struct {
	MonthlyBill  float64 `json:"monthlyBill"`
	TariffPerKWh float64 `json:"tariffPerKWh"`
}

// Consumption is energy in kWh.
type Consumption struct {
	MonthlyKWh float64 `json:"monthlyKWh"`
	DailyKWh   float64 `json:"dailyKWh"`
}

// SystemSize compares the theoretical generation capacity with what whole panels deliver.
// ActualCapacityKW is never below IdealCapacityKW.
type SystemSize struct {
	IdealCapacityKW  float64 `json:"recommendedCapacityKW"`
	ActualCapacityKW float64 `json:"actualCapacityKW"`
}

type Components struct {
	Panels    PanelSpec    `json:"panels"`
	Inverter  InverterSpec `json:"inverter"`
	Batteries BatterySpec  `json:"batteries"`
}

type PanelSpec struct {
	Quantity        int     `json:"quantity"`
	WattagePerPanel float64 `json:"wattagePerPanel"`
	TotalCapacityKW float64 `json:"totalCapacityKW"`
}

type InverterSpec struct {
	SizeKVA     float64 `json:"sizeKVA"`
	RequiredKVA float64 `json:"requiredKVA"`
	Type        string  `json:"type"`
	// Capped is set when no standard size covers RequiredKVA and the largest was used.
	Capped bool `json:"capped,omitempty"`
}

type BatterySpec struct {
	Quantity             int     `json:"quantity"`
	CapacityPerBatteryAh float64 `json:"capacityPerBattery"`
	TotalCapacityAh      int     `json:"totalCapacityAh"`
	BackupHours          float64 `json:"backupHours"`
	SystemVoltage        float64 `json:"systemVoltage"`
}

// CostBreakdown is in whole currency units.
// Total == Panels + Inverter + Batteries + Installation.
type CostBreakdown struct {
	Panels       float64 `json:"panels"`
	Inverter     float64 `json:"inverter"`
	Batteries    float64 `json:"batteries"`
	Equipment    float64 `json:"equipment"`
	Installation float64 `json:"installation"`
	Total        float64 `json:"total"`
}

type Financials struct {
	MonthlySavings      float64 `json:"monthlySavings"`
	PaybackPeriodMonths int     `json:"paybackPeriodMonths"`
	PaybackPeriodYears  float64 `json:"paybackPeriodYears"`
	LifetimeSavings     float64 `json:"lifetimeSavings"`
	ROI                 float64 `json:"roi"` // percent
}

// CostComparisonPoint is one year of the solar vs diesel cumulative cost series.
type CostComparisonPoint struct {
	Year             int     `json:"year"`
	SolarCumulative  float64 `json:"solarCumulative"`
	DieselCumulative float64 `json:"dieselCumulative"`
}
