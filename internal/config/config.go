package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-sizer/internal/model"

	"gopkg.in/yaml.v3"
)

// Quote store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load market parameters from a preset YAML (e.g. examples/markets/*.yaml).
	// Fields set in Market override the preset, which overrides the built-in defaults.
	MarketFile string        `yaml:"market_file"`
	Market     MarketConfig  `yaml:"market"`
	Catalog    CatalogConfig `yaml:"catalog"`
	Quotes     QuotesConfig  `yaml:"quotes"`
	Server     ServerConfig  `yaml:"server"`
}

type MarketConfig struct {
	Name           string `yaml:"name"`
	Country        string `yaml:"country"`
	CurrencyCode   string `yaml:"currency_code"`
	CurrencySymbol string `yaml:"currency_symbol"`

	TariffPerKWh float64 `yaml:"tariff_per_kwh"`
	DaysPerMonth float64 `yaml:"days_per_month"`
	PeakSunHours float64 `yaml:"peak_sun_hours"`
	PanelWattage float64 `yaml:"panel_wattage"`

	InverterHeadroom float64   `yaml:"inverter_headroom"`
	InverterSizesKVA []float64 `yaml:"inverter_sizes_kva"`
	InverterType     string    `yaml:"inverter_type"`

	SystemVoltage     float64 `yaml:"system_voltage"`
	BackupHours       float64 `yaml:"backup_hours"`
	DepthOfDischarge  float64 `yaml:"depth_of_discharge"`
	BatteryEfficiency float64 `yaml:"battery_efficiency"`
	BatteryAh         float64 `yaml:"battery_ah"`

	CostPerPanel       float64 `yaml:"cost_per_panel"`
	CostPerKVAInverter float64 `yaml:"cost_per_kva_inverter"`
	CostPerBattery     float64 `yaml:"cost_per_battery"`
	InstallationRate   float64 `yaml:"installation_rate"`

	SavingsRate   float64 `yaml:"savings_rate"`
	LifespanYears int     `yaml:"lifespan_years"`

	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Diesel     DieselConfig     `yaml:"diesel"`

	SolarMaintenancePerYear float64 `yaml:"solar_maintenance_per_year"`
}

type ThresholdsConfig struct {
	LowUsage   float64 `yaml:"low_usage"`
	HighUsage  float64 `yaml:"high_usage"`
	Industrial float64 `yaml:"industrial"`
}

type DieselConfig struct {
	GeneratorCost     float64 `yaml:"generator_cost"`
	FuelPricePerLiter float64 `yaml:"fuel_price_per_liter"`
	LitersPerHour     float64 `yaml:"liters_per_hour"`
	HoursPerDay       float64 `yaml:"hours_per_day"`
	FuelInflationRate float64 `yaml:"fuel_inflation_rate"`
}

type CatalogConfig struct {
	File string `yaml:"file"`
}

type QuotesConfig struct {
	Backend   string `yaml:"backend"`
	File      string `yaml:"file"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns a config that runs without any file: the built-in market,
// the bundled vendor catalog and a JSON quote file under ./data.
func Default() *Config {
	return &Config{
		Market:  FromModelParams(model.DefaultMarket()),
		Catalog: CatalogConfig{File: "examples/vendors.yaml"},
		Quotes: QuotesConfig{
			Backend:  BackendFile,
			File:     "data/quote_requests.json",
			RedisKey: "solar:quote_requests",
		},
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// LoadOrDefault loads path, or returns Default() when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	base := FromModelParams(model.DefaultMarket())
	if c.MarketFile != "" {
		loaded, err := LoadMarketFile(resolvePath(path, c.MarketFile))
		if err != nil {
			return nil, err
		}
		base = MergeMarket(base, loaded)
	}
	c.Market = MergeMarket(base, c.Market)

	if c.Catalog.File != "" {
		c.Catalog.File = resolvePath(path, c.Catalog.File)
	}
	return &c, nil
}

// resolvePath prefers interpreting p relative to the config file directory,
// but falls back to the provided path (relative to cwd) if that doesn't exist.
func resolvePath(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(configPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Catalog.File == "" {
		c.Catalog.File = d.Catalog.File
	}
	if c.Quotes.Backend == "" {
		c.Quotes.Backend = d.Quotes.Backend
	}
	if c.Quotes.File == "" {
		c.Quotes.File = d.Quotes.File
	}
	if c.Quotes.RedisKey == "" {
		c.Quotes.RedisKey = d.Quotes.RedisKey
	}
	if c.Server.Port == "" {
		c.Server.Port = d.Server.Port
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = d.Server.AllowedOrigins
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Market.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("market config invalid: %w", err)
	}
	if c.Catalog.File == "" {
		return errors.New("catalog.file is required")
	}
	switch c.Quotes.Backend {
	case BackendFile:
		if c.Quotes.File == "" {
			return errors.New("quotes.file is required for the file backend")
		}
	case BackendRedis:
		if c.Quotes.RedisAddr == "" {
			return errors.New("quotes.redis_addr is required for the redis backend")
		}
		if c.Quotes.RedisKey == "" {
			return errors.New("quotes.redis_key is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("quotes.backend must be one of %s, %s, %s (got %q)", BackendFile, BackendRedis, BackendMemory, c.Quotes.Backend)
	}
	return nil
}

// MarketParams returns the resolved market for sizing.
func (c *Config) MarketParams() model.MarketParams {
	return c.Market.ToModelParams()
}

func (m MarketConfig) ToModelParams() model.MarketParams {
	return model.MarketParams{
		Name:                     m.Name,
		Country:                  m.Country,
		CurrencyCode:             m.CurrencyCode,
		CurrencySymbol:           m.CurrencySymbol,
		TariffPerKWh:             m.TariffPerKWh,
		DaysPerMonth:             m.DaysPerMonth,
		PeakSunHours:             m.PeakSunHours,
		PanelWattage:             m.PanelWattage,
		InverterHeadroom:         m.InverterHeadroom,
		StandardInverterSizesKVA: append([]float64(nil), m.InverterSizesKVA...),
		InverterType:             m.InverterType,
		SystemVoltage:            m.SystemVoltage,
		BackupHours:              m.BackupHours,
		DepthOfDischarge:         m.DepthOfDischarge,
		BatteryEfficiency:        m.BatteryEfficiency,
		StandardBatteryAh:        m.BatteryAh,
		CostPerPanel:             m.CostPerPanel,
		CostPerKVAInverter:       m.CostPerKVAInverter,
		CostPerBattery:           m.CostPerBattery,
		InstallationRate:         m.InstallationRate,
		SavingsRate:              m.SavingsRate,
		LifespanYears:            m.LifespanYears,
		Thresholds: model.BillThresholds{
			LowUsage:   m.Thresholds.LowUsage,
			HighUsage:  m.Thresholds.HighUsage,
			Industrial: m.Thresholds.Industrial,
		},
		Diesel: model.DieselBaseline{
			GeneratorCost:     m.Diesel.GeneratorCost,
			FuelPricePerLiter: m.Diesel.FuelPricePerLiter,
			LitersPerHour:     m.Diesel.LitersPerHour,
			HoursPerDay:       m.Diesel.HoursPerDay,
			FuelInflationRate: m.Diesel.FuelInflationRate,
		},
		SolarMaintenancePerYear: m.SolarMaintenancePerYear,
	}
}

func FromModelParams(p model.MarketParams) MarketConfig {
	return MarketConfig{
		Name:                    p.Name,
		Country:                 p.Country,
		CurrencyCode:            p.CurrencyCode,
		CurrencySymbol:          p.CurrencySymbol,
		TariffPerKWh:            p.TariffPerKWh,
		DaysPerMonth:            p.DaysPerMonth,
		PeakSunHours:            p.PeakSunHours,
		PanelWattage:            p.PanelWattage,
		InverterHeadroom:        p.InverterHeadroom,
		InverterSizesKVA:        append([]float64(nil), p.StandardInverterSizesKVA...),
		InverterType:            p.InverterType,
		SystemVoltage:           p.SystemVoltage,
		BackupHours:             p.BackupHours,
		DepthOfDischarge:        p.DepthOfDischarge,
		BatteryEfficiency:       p.BatteryEfficiency,
		BatteryAh:               p.StandardBatteryAh,
		CostPerPanel:            p.CostPerPanel,
		CostPerKVAInverter:      p.CostPerKVAInverter,
		CostPerBattery:          p.CostPerBattery,
		InstallationRate:        p.InstallationRate,
		SavingsRate:             p.SavingsRate,
		LifespanYears:           p.LifespanYears,
		Thresholds:              ThresholdsConfig(p.Thresholds),
		Diesel:                  DieselConfig(p.Diesel),
		SolarMaintenancePerYear: p.SolarMaintenancePerYear,
	}
}

type marketFileWrapper struct {
	Market MarketConfig `yaml:"market"`
}

// LoadMarketFile reads a preset file of the form `market: {...}`.
// The result is not merged with defaults.
func LoadMarketFile(path string) (MarketConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MarketConfig{}, err
	}
	var w marketFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return MarketConfig{}, fmt.Errorf("parse market file %s: %w", path, err)
	}
	return w.Market, nil
}

// MergeMarket overlays non-zero fields from override onto base.
// A zero in override means "not set", so a preset cannot force a rate back to 0.
func MergeMarket(base, override MarketConfig) MarketConfig {
	out := base
	out.InverterSizesKVA = append([]float64(nil), base.InverterSizesKVA...)

	setString(&out.Name, override.Name)
	setString(&out.Country, override.Country)
	setString(&out.CurrencyCode, override.CurrencyCode)
	setString(&out.CurrencySymbol, override.CurrencySymbol)
	setString(&out.InverterType, override.InverterType)

	setFloat(&out.TariffPerKWh, override.TariffPerKWh)
	setFloat(&out.DaysPerMonth, override.DaysPerMonth)
	setFloat(&out.PeakSunHours, override.PeakSunHours)
	setFloat(&out.PanelWattage, override.PanelWattage)
	setFloat(&out.InverterHeadroom, override.InverterHeadroom)
	if len(override.InverterSizesKVA) > 0 {
		out.InverterSizesKVA = append([]float64(nil), override.InverterSizesKVA...)
	}

	setFloat(&out.SystemVoltage, override.SystemVoltage)
	setFloat(&out.BackupHours, override.BackupHours)
	setFloat(&out.DepthOfDischarge, override.DepthOfDischarge)
	setFloat(&out.BatteryEfficiency, override.BatteryEfficiency)
	setFloat(&out.BatteryAh, override.BatteryAh)

	setFloat(&out.CostPerPanel, override.CostPerPanel)
	setFloat(&out.CostPerKVAInverter, override.CostPerKVAInverter)
	setFloat(&out.CostPerBattery, override.CostPerBattery)
	setFloat(&out.InstallationRate, override.InstallationRate)

	setFloat(&out.SavingsRate, override.SavingsRate)
	if override.LifespanYears != 0 {
		out.LifespanYears = override.LifespanYears
	}

	setFloat(&out.Thresholds.LowUsage, override.Thresholds.LowUsage)
	setFloat(&out.Thresholds.HighUsage, override.Thresholds.HighUsage)
	setFloat(&out.Thresholds.Industrial, override.Thresholds.Industrial)

	setFloat(&out.Diesel.GeneratorCost, override.Diesel.GeneratorCost)
	setFloat(&out.Diesel.FuelPricePerLiter, override.Diesel.FuelPricePerLiter)
	setFloat(&out.Diesel.LitersPerHour, override.Diesel.LitersPerHour)
	setFloat(&out.Diesel.HoursPerDay, override.Diesel.HoursPerDay)
	setFloat(&out.Diesel.FuelInflationRate, override.Diesel.FuelInflationRate)

	setFloat(&out.SolarMaintenancePerYear, override.SolarMaintenancePerYear)
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
