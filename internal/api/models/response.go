package models

import (
	"solar-sizer/internal/model"
	"solar-sizer/internal/projection"
	"solar-sizer/internal/vendor"
)

// SizingResponse represents the response from POST /api/v1/sizing
type SizingResponse struct {
	Market     string              `json:"market"`
	Validation model.Verdict       `json:"validation"`
	Sizing     model.SizingResult  `json:"sizing"`
	Vendors    *vendor.MatchResult `json:"vendors,omitempty"`
}

// CostComparisonResponse represents the response from POST /api/v1/cost-comparison
type CostComparisonResponse struct {
	Market          string                      `json:"market"`
	Validation      model.Verdict               `json:"validation"`
	MonthlyFuelCost float64                     `json:"monthly_fuel_cost"`
	Points          []model.CostComparisonPoint `json:"points"`
	Summary         projection.Summary          `json:"summary"`
}

// MarketInfo represents information about a market preset
type MarketInfo struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Country          string    `json:"country"`
	CurrencyCode     string    `json:"currency_code"`
	CurrencySymbol   string    `json:"currency_symbol"`
	TariffPerKWh     float64   `json:"tariff_per_kwh"`
	PeakSunHours     float64   `json:"peak_sun_hours"`
	InverterSizesKVA []float64 `json:"inverter_sizes_kva"`
	File             string    `json:"file,omitempty"`
}

// NewMarketInfo summarizes market parameters for listing.
func NewMarketInfo(id, file string, m model.MarketParams) MarketInfo {
	return MarketInfo{
		ID:               id,
		Name:             m.Name,
		Country:          m.Country,
		CurrencyCode:     m.CurrencyCode,
		CurrencySymbol:   m.CurrencySymbol,
		TariffPerKWh:     m.TariffPerKWh,
		PeakSunHours:     m.PeakSunHours,
		InverterSizesKVA: append([]float64(nil), m.StandardInverterSizesKVA...),
		File:             file,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationRejected = "VALIDATION_REJECTED"
	CodeUnknownMarket      = "UNKNOWN_MARKET"
	CodeRegionUnavailable  = "REGION_UNAVAILABLE"
	CodeCapacityUnmatched  = "CAPACITY_UNMATCHED"
	CodeVendorNotFound     = "VENDOR_NOT_FOUND"
	CodeQuotesDisabled     = "QUOTES_DISABLED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
)

// NewError builds an ErrorResponse; details may be nil.
func NewError(code, message string, details map[string]interface{}) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}
