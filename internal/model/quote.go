package model

import "time"

const QuoteStatusPending = "pending"

// Requester is the contact who asks for a quote. Name and Email are mandatory.
type Requester struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"businessName"`
	Location     *string `json:"location"`
}

// QuoteRequest is one persisted quote record. Records are append-only.
type QuoteRequest struct {
	QuoteID       string        `json:"quoteId"`
	Status        string        `json:"status"`
	Timestamp     time.Time     `json:"timestamp"`
	UserData      Requester     `json:"userData"`
	Vendor        QuoteVendor   `json:"vendor"`
	SystemDetails SystemDetails `json:"systemDetails"`
}

type QuoteVendor struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type SystemDetails struct {
	RecommendedCapacityKW float64          `json:"recommendedCapacityKW"`
	TotalCost             float64          `json:"totalCost"`
	MonthlySavings        float64          `json:"monthlySavings"`
	PaybackPeriodYears    float64          `json:"paybackPeriodYears"`
	Components            ComponentSummary `json:"components"`
}

type ComponentSummary struct {
	Panels      int     `json:"panels"`
	InverterKVA float64 `json:"inverterKVA"`
	Batteries   int     `json:"batteries"`
}
