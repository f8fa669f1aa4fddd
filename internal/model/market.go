package model

import (
	"errors"
	"fmt"
)

// MarketParams defines the electrical, economic and validation constants used to
// size a system for one market. Every calculator takes a copy of this struct, so
// alternative markets (different tariffs, different countries) need no code changes.
// Units:
// - TariffPerKWh, Cost*: local currency
// - PeakSunHours, BackupHours: hours
// - PanelWattage: W
// - StandardInverterSizesKVA: kVA, ascending
// - SystemVoltage: V
// - DepthOfDischarge, BatteryEfficiency, InstallationRate, SavingsRate: 0..1
// - StandardBatteryAh: Ah
type MarketParams struct {
	Name           string
	Country        string
	CurrencyCode   string
	CurrencySymbol string

	TariffPerKWh float64
	DaysPerMonth float64
	PeakSunHours float64

	PanelWattage float64

	InverterHeadroom         float64
	StandardInverterSizesKVA []float64
	InverterType             string

	SystemVoltage     float64
	BackupHours       float64
	DepthOfDischarge  float64
	BatteryEfficiency float64
	StandardBatteryAh float64

	CostPerPanel       float64
	CostPerKVAInverter float64
	CostPerBattery     float64
	InstallationRate   float64

	SavingsRate   float64
	LifespanYears int

	Thresholds BillThresholds
	Diesel     DieselBaseline

	// SolarMaintenancePerYear is charged from year 2 onwards in cost comparisons.
	SolarMaintenancePerYear float64
}

// BillThresholds partition monthly bills into validation bands (currency/month).
// Bills below LowUsage warn, bills above HighUsage warn, bills above Industrial are rejected.
type BillThresholds struct {
	LowUsage   float64
	HighUsage  float64
	Industrial float64
}

// DieselBaseline describes the generator alternative used in cost comparisons.
type DieselBaseline struct {
	GeneratorCost     float64 // one-off purchase
	FuelPricePerLiter float64
	LitersPerHour     float64
	HoursPerDay       float64
	FuelInflationRate float64 // annual, compounding
}

// DefaultMarket returns the Nigerian SME market the engine was calibrated on.
func DefaultMarket() MarketParams {
	return MarketParams{
		Name:           "nigeria",
		Country:        "Nigeria",
		CurrencyCode:   "NGN",
		CurrencySymbol: "₦",

		TariffPerKWh: 120,
		DaysPerMonth: 30,
		PeakSunHours: 5,

		PanelWattage: 400,

		InverterHeadroom:         1.25,
		StandardInverterSizesKVA: []float64{2.5, 5, 10, 20, 30, 50},
		InverterType:             "48V Hybrid Inverter",

		SystemVoltage:     48,
		BackupHours:       12,
		DepthOfDischarge:  0.8,
		BatteryEfficiency: 0.9,
		StandardBatteryAh: 200,

		CostPerPanel:       150000,
		CostPerKVAInverter: 500000,
		CostPerBattery:     300000,
		InstallationRate:   0.20,

		SavingsRate:   0.90,
		LifespanYears: 25,

		Thresholds: BillThresholds{
			LowUsage:   15000,
			HighUsage:  5000000,
			Industrial: 10000000,
		},
		Diesel: DieselBaseline{
			GeneratorCost:     800000,
			FuelPricePerLiter: 1200,
			LitersPerHour:     1,
			HoursPerDay:       8,
			FuelInflationRate: 0.10,
		},
		SolarMaintenancePerYear: 50000,
	}
}

// Clone returns a copy that shares no slices with m.
func (m MarketParams) Clone() MarketParams {
	out := m
	out.StandardInverterSizesKVA = append([]float64(nil), m.StandardInverterSizesKVA...)
	return out
}

func (m MarketParams) Validate() error {
	if m.TariffPerKWh <= 0 {
		return errors.New("TariffPerKWh must be > 0")
	}
	if m.DaysPerMonth <= 0 {
		return errors.New("DaysPerMonth must be > 0")
	}
	if m.PeakSunHours <= 0 || m.PeakSunHours > 24 {
		return errors.New("PeakSunHours must be in (0, 24]")
	}
	if m.PanelWattage <= 0 {
		return errors.New("PanelWattage must be > 0")
	}
	if m.InverterHeadroom < 1 {
		return errors.New("InverterHeadroom must be >= 1")
	}
	if len(m.StandardInverterSizesKVA) == 0 {
		return errors.New("StandardInverterSizesKVA must not be empty")
	}
	for i, s := range m.StandardInverterSizesKVA {
		if s <= 0 {
			return fmt.Errorf("StandardInverterSizesKVA[%d] must be > 0", i)
		}
		if i > 0 && s <= m.StandardInverterSizesKVA[i-1] {
			return errors.New("StandardInverterSizesKVA must be strictly ascending")
		}
	}
	if m.SystemVoltage <= 0 {
		return errors.New("SystemVoltage must be > 0")
	}
	if m.BackupHours < 0 || m.BackupHours > 24 {
		return errors.New("BackupHours must be in [0, 24]")
	}
	if m.DepthOfDischarge <= 0 || m.DepthOfDischarge > 1 {
		return errors.New("DepthOfDischarge must be in (0, 1]")
	}
	if m.BatteryEfficiency <= 0 || m.BatteryEfficiency > 1 {
		return errors.New("BatteryEfficiency must be in (0, 1]")
	}
	if m.StandardBatteryAh <= 0 {
		return errors.New("StandardBatteryAh must be > 0")
	}
	if m.CostPerPanel < 0 || m.CostPerKVAInverter < 0 || m.CostPerBattery < 0 {
		return errors.New("unit costs must be >= 0")
	}
	if m.InstallationRate < 0 {
		return errors.New("InstallationRate must be >= 0")
	}
	if m.SavingsRate <= 0 || m.SavingsRate > 1 {
		return errors.New("SavingsRate must be in (0, 1]")
	}
	if m.LifespanYears <= 0 {
		return errors.New("LifespanYears must be > 0")
	}
	t := m.Thresholds
	if t.LowUsage < 0 || t.HighUsage < t.LowUsage || t.Industrial < t.HighUsage {
		return errors.New("thresholds must satisfy 0<=LowUsage<=HighUsage<=Industrial")
	}
	d := m.Diesel
	if d.GeneratorCost < 0 || d.FuelPricePerLiter < 0 || d.LitersPerHour < 0 || d.HoursPerDay < 0 || d.HoursPerDay > 24 {
		return errors.New("diesel baseline values must be >= 0 (HoursPerDay <= 24)")
	}
	if d.FuelInflationRate <= -1 {
		return errors.New("FuelInflationRate must be > -1")
	}
	if m.SolarMaintenancePerYear < 0 {
		return errors.New("SolarMaintenancePerYear must be >= 0")
	}
	return nil
}
