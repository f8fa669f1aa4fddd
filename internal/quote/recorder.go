package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"solar-sizer/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid quote request")
	ErrVendorNotFound = errors.New("vendor not found")
)

// VendorLookup resolves catalog vendors by id. *vendor.Matcher satisfies it.
type VendorLookup interface {
	Vendor(id string) (model.Vendor, bool)
}

// Receipt is returned to the requester after a quote is stored.
type Receipt struct {
	QuoteID string             `json:"quoteId"`
	Message string             `json:"message"`
	Request model.QuoteRequest `json:"quoteRequest"`
}

// Recorder validates quote requests and appends them to a Store.
type Recorder struct {
	vendors VendorLookup
	store   Store
	now     func() time.Time
	newID   func(time.Time) string
}

type Option func(*Recorder)

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator replaces the quote id generator.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(r *Recorder) { r.newID = gen }
}

func NewRecorder(vendors VendorLookup, store Store, opts ...Option) *Recorder {
	r := &Recorder{
		vendors: vendors,
		store:   store,
		now:     time.Now,
		newID:   NewQuoteID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewQuoteID returns QR-<unix millis>-<8 hex chars of a random UUID>.
func NewQuoteID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("QR-%d-%s", t.UnixMilli(), suffix)
}

// Record stores a pending quote request for vendorID. Nothing is written when
// the requester, vendor id or sizing result is missing, or when the vendor is
// not in the catalog.
func (r *Recorder) Record(ctx context.Context, who model.Requester, vendorID string, sizing *model.SizingResult) (*Receipt, error) {
	who.Name = strings.TrimSpace(who.Name)
	who.Email = strings.TrimSpace(who.Email)
	vendorID = strings.TrimSpace(vendorID)

	if who.Name == "" || who.Email == "" {
		return nil, fmt.Errorf("%w: user data must include name and email", ErrInvalidRequest)
	}
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendor id is required", ErrInvalidRequest)
	}
	if sizing == nil {
		return nil, fmt.Errorf("%w: sizing result is required", ErrInvalidRequest)
	}

	v, ok := r.vendors.Vendor(vendorID)
	if !ok {
		return nil, fmt.Errorf("%w: vendor with id %s", ErrVendorNotFound, vendorID)
	}

	now := r.now().UTC()
	req := model.QuoteRequest{
		QuoteID:   r.newID(now),
		Status:    model.QuoteStatusPending,
		Timestamp: now,
		UserData: model.Requester{
			Name:         who.Name,
			Email:        who.Email,
			Phone:        nonEmpty(who.Phone),
			BusinessName: nonEmpty(who.BusinessName),
			Location:     nonEmpty(who.Location),
		},
		Vendor: model.QuoteVendor{
			ID:          v.ID,
			CompanyName: v.CompanyName,
			Email:       v.Email,
			Phone:       v.Phone,
		},
		SystemDetails: model.SystemDetails{
			RecommendedCapacityKW: sizing.SystemSize.ActualCapacityKW,
			TotalCost:             sizing.Costs.Total,
			MonthlySavings:        sizing.Financials.MonthlySavings,
			PaybackPeriodYears:    sizing.Financials.PaybackPeriodYears,
			Components: model.ComponentSummary{
				Panels:      sizing.Components.Panels.Quantity,
				InverterKVA: sizing.Components.Inverter.SizeKVA,
				Batteries:   sizing.Components.Batteries.Quantity,
			},
		},
	}

	if err := r.store.Append(ctx, req); err != nil {
		return nil, fmt.Errorf("record quote %s: %w", req.QuoteID, err)
	}
	slog.Info("quote request recorded", "quote_id", req.QuoteID, "vendor_id", v.ID,
		"capacity_kw", req.SystemDetails.RecommendedCapacityKW)

	return &Receipt{
		QuoteID: req.QuoteID,
		Message: fmt.Sprintf("Quote request sent to %s. They typically respond within %s.", v.CompanyName, v.AvgResponseTime),
		Request: req,
	}, nil
}

// List returns every stored quote in insertion order.
func (r *Recorder) List(ctx context.Context) ([]model.QuoteRequest, error) {
	return r.store.List(ctx)
}

// nonEmpty maps blank optional fields to nil so they persist as null.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
