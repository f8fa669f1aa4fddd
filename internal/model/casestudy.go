package model

// CaseStudy is a published customer story shown next to sizing results.
// InstallationCost is in USD regardless of the customer's market.
type CaseStudy struct {
	ID                       string  `json:"id"`
	ClientName               string  `json:"client_name"`
	Industry                 string  `json:"industry"`
	Location                 string  `json:"location"`
	SystemSizeKW             float64 `json:"system_size_kw"`
	InstallationCost         float64 `json:"installation_cost"`
	MonthlySavingsPercentage float64 `json:"monthly_savings_percentage"`
	PaybackPeriodMonths      int     `json:"payback_period_months"`
	SummaryQuote             string  `json:"summary_quote"`
}
