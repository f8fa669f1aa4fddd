// Package advisor wires validation, sizing, cost projection, vendor matching
// and quote recording into the one in-process API used by the HTTP server and
// the CLI.
package advisor

import (
	"context"
	"errors"
	"fmt"

	"solar-sizer/internal/model"
	"solar-sizer/internal/projection"
	"solar-sizer/internal/quote"
	"solar-sizer/internal/sizing"
	"solar-sizer/internal/vendor"
)

var (
	ErrValidationRejected = errors.New("monthly bill rejected")
	ErrQuotesDisabled     = errors.New("quote recording is not configured")
)

// Advisor is safe for concurrent use. Everything except RecordQuote is pure.
type Advisor struct {
	market    model.MarketParams
	validator *sizing.Validator
	calc      *sizing.Calculator
	projector *projection.Projector
	matcher   *vendor.Matcher
	recorder  *quote.Recorder
}

// New builds an advisor for one market. store may be nil, in which case
// RecordQuote returns ErrQuotesDisabled.
func New(market model.MarketParams, catalog []model.Vendor, store quote.Store) (*Advisor, error) {
	if err := market.Validate(); err != nil {
		return nil, fmt.Errorf("market %q invalid: %w", market.Name, err)
	}
	matcher := vendor.NewMatcher(catalog)
	var recorder *quote.Recorder
	if store != nil {
		recorder = quote.NewRecorder(matcher, store)
	}
	return build(market, matcher, recorder), nil
}

func build(market model.MarketParams, matcher *vendor.Matcher, recorder *quote.Recorder) *Advisor {
	return &Advisor{
		market:    market.Clone(),
		validator: sizing.NewValidator(market.Thresholds),
		calc:      sizing.NewCalculator(market),
		projector: projection.New(market),
		matcher:   matcher,
		recorder:  recorder,
	}
}

// WithMarket returns an advisor for another market that shares this one's
// vendor catalog and quote store.
func (a *Advisor) WithMarket(market model.MarketParams) (*Advisor, error) {
	if err := market.Validate(); err != nil {
		return nil, fmt.Errorf("market %q invalid: %w", market.Name, err)
	}
	return build(market, a.matcher, a.recorder), nil
}

func (a *Advisor) Market() model.MarketParams { return a.market.Clone() }

func (a *Advisor) Validate(bill float64) model.Verdict { return a.validator.Validate(bill) }

// ValidateInput accepts untyped input (numbers, numeric strings, nil).
func (a *Advisor) ValidateInput(raw any) model.Verdict { return a.validator.ValidateInput(raw) }

// Size does not validate; callers gate on Validate first.
func (a *Advisor) Size(bill float64) model.SizingResult { return a.calc.Size(bill) }

func (a *Advisor) ProjectCosts(bill float64, years int) []model.CostComparisonPoint {
	return a.projector.Project(bill, years)
}

func (a *Advisor) MonthlyFuelCost() float64 { return a.projector.MonthlyFuelCost() }

func (a *Advisor) MatchVendors(requiredKW float64, location string) vendor.MatchResult {
	return a.matcher.Match(requiredKW, location)
}

func (a *Advisor) Vendors() []model.Vendor { return a.matcher.Vendors() }

func (a *Advisor) Locations() []string { return a.matcher.Locations() }

func (a *Advisor) CatalogSummary() vendor.CatalogSummary { return a.matcher.Summarize() }

func (a *Advisor) RecordQuote(ctx context.Context, who model.Requester, vendorID string, result *model.SizingResult) (*quote.Receipt, error) {
	if a.recorder == nil {
		return nil, ErrQuotesDisabled
	}
	return a.recorder.Record(ctx, who, vendorID, result)
}

func (a *Advisor) Quotes(ctx context.Context) ([]model.QuoteRequest, error) {
	if a.recorder == nil {
		return nil, ErrQuotesDisabled
	}
	return a.recorder.List(ctx)
}

// Assessment is the validate -> size -> match pipeline for one bill.
type Assessment struct {
	Validation model.Verdict       `json:"validation"`
	Sizing     *model.SizingResult `json:"sizing,omitempty"`
	Vendors    *vendor.MatchResult `json:"vendors,omitempty"`
}

// Assess validates the bill, sizes a system and matches vendors for location.
// A rejected bill stops the pipeline with ErrValidationRejected; the returned
// assessment still carries the verdict. Matching runs only when location is
// non-empty, and its failures are reported in Vendors rather than as an error.
func (a *Advisor) Assess(bill float64, location string) (Assessment, error) {
	out := Assessment{Validation: a.Validate(bill)}
	if !out.Validation.Proceedable() {
		return out, fmt.Errorf("%w: %s", ErrValidationRejected, out.Validation.Message)
	}

	result := a.Size(bill)
	out.Sizing = &result

	if vendor.NormalizeLocation(location) != "" {
		match := a.MatchVendors(result.SystemSize.ActualCapacityKW, location)
		out.Vendors = &match
	}
	return out, nil
}
