package models

import "solar-sizer/internal/model"

// ValidateRequest represents the request body for POST /api/v1/validate.
// MonthlyBill is left untyped so strings and nulls reach the validator.
type ValidateRequest struct {
	MonthlyBill any    `json:"monthly_bill"`
	Market      string `json:"market,omitempty"`
}

// SizingRequest represents the request body for POST /api/v1/sizing
type SizingRequest struct {
	MonthlyBill any    `json:"monthly_bill"`
	Market      string `json:"market,omitempty"`   // preset id, default market when empty
	Location    string `json:"location,omitempty"` // when set, vendors are matched too
}

// CostComparisonRequest represents the request body for POST /api/v1/cost-comparison
type CostComparisonRequest struct {
	MonthlyBill any    `json:"monthly_bill"`
	Years       int    `json:"years,omitempty"` // default: 10
	Market      string `json:"market,omitempty"`
}

// VendorMatchRequest represents the request body for POST /api/v1/vendors/match
type VendorMatchRequest struct {
	RequiredKW float64 `json:"required_kw" binding:"required,gt=0"`
	Location   string  `json:"location" binding:"required"`
}

// QuoteCreateRequest represents the request body for POST /api/v1/quotes.
// Either Sizing or MonthlyBill must be given; with only a bill the system is
// sized on the server.
type QuoteCreateRequest struct {
	UserData    model.Requester     `json:"user_data"`
	VendorID    string              `json:"vendor_id"`
	Sizing      *model.SizingResult `json:"sizing,omitempty"`
	MonthlyBill *float64            `json:"monthly_bill,omitempty"`
	Market      string              `json:"market,omitempty"`
}

// CaseStudyQuery represents the query for GET /api/v1/case-studies
type CaseStudyQuery struct {
	KW       float64 `form:"kw"`
	Location string  `form:"location"`
	Limit    int     `form:"limit"` // default: all
}
