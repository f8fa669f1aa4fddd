package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-sizer/internal/model"
	"solar-sizer/internal/quote"
	"solar-sizer/internal/vendor"
)

func catalog() []model.Vendor {
	return []model.Vendor{
		{
			ID: "VEN001", CompanyName: "Lagos SolarTech Solutions", Verified: true,
			SystemSizeMinKW: 3, SystemSizeMaxKW: 50,
			Headquarters: "Lagos, Nigeria", ServiceAreas: []string{"Lagos", "Ogun"},
			Rating: 4.8, YearsInBusiness: 12, InstallationsCompleted: 450, AvgResponseTime: "2 hours",
		},
		{
			ID: "VEN002", CompanyName: "Eko Green Power", Verified: true,
			SystemSizeMinKW: 1, SystemSizeMaxKW: 10,
			Headquarters: "Lagos, Nigeria", ServiceAreas: []string{"Lagos"},
			Rating: 4.5, YearsInBusiness: 6, AvgResponseTime: "4 hours",
		},
	}
}

func newAdvisor(t *testing.T) (*Advisor, *quote.MemoryStore) {
	t.Helper()
	store := quote.NewMemoryStore()
	a, err := New(model.DefaultMarket(), catalog(), store)
	require.NoError(t, err)
	return a, store
}

func TestAssessBakery(t *testing.T) {
	a, _ := newAdvisor(t)

	out, err := a.Assess(225000, "Lagos")
	require.NoError(t, err)

	assert.Equal(t, model.SeveritySuccess, out.Validation.Severity)
	require.NotNil(t, out.Sizing)
	assert.Equal(t, 12.8, out.Sizing.SystemSize.ActualCapacityKW)

	require.NotNil(t, out.Vendors)
	require.True(t, out.Vendors.Success())
	require.Len(t, out.Vendors.Vendors, 1, "12.8 kW is beyond VEN002's range")
	assert.Equal(t, "VEN001", out.Vendors.Vendors[0].ID)
}

func TestAssessRejectsBeforeSizing(t *testing.T) {
	a, _ := newAdvisor(t)

	for _, bill := range []float64{0, -5, 20000000} {
		out, err := a.Assess(bill, "Lagos")
		assert.True(t, errors.Is(err, ErrValidationRejected), "bill %v", bill)
		assert.False(t, out.Validation.IsValid)
		assert.Nil(t, out.Sizing)
		assert.Nil(t, out.Vendors)
	}
}

func TestAssessWarnedBillStillProceeds(t *testing.T) {
	a, _ := newAdvisor(t)

	out, err := a.Assess(10000, "")
	require.NoError(t, err)
	assert.Equal(t, model.SeverityWarning, out.Validation.Severity)
	assert.NotNil(t, out.Sizing)
	assert.Nil(t, out.Vendors, "no location means no matching")
}

func TestAssessReportsMatchFailures(t *testing.T) {
	a, _ := newAdvisor(t)

	out, err := a.Assess(225000, "Nairobi")
	require.NoError(t, err)
	require.NotNil(t, out.Vendors)
	assert.Equal(t, vendor.StatusRegionUnavailable, out.Vendors.Status)
}

func TestRecordQuoteEndToEnd(t *testing.T) {
	a, store := newAdvisor(t)
	ctx := context.Background()

	result := a.Size(225000)
	receipt, err := a.RecordQuote(ctx, model.Requester{Name: "Chioma", Email: "chioma@bakery.ng"}, "VEN001", &result)
	require.NoError(t, err)
	assert.Equal(t, 12.8, receipt.Request.SystemDetails.RecommendedCapacityKW)
	assert.Equal(t, 19560000.0, receipt.Request.SystemDetails.TotalCost)

	stored, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	quotes, err := a.Quotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, quotes)

	_, err = a.RecordQuote(ctx, model.Requester{Name: "Chioma", Email: "chioma@bakery.ng"}, "VEN404", &result)
	assert.ErrorIs(t, err, quote.ErrVendorNotFound)
}

func TestQuotesDisabledWithoutStore(t *testing.T) {
	a, err := New(model.DefaultMarket(), catalog(), nil)
	require.NoError(t, err)

	result := a.Size(225000)
	_, err = a.RecordQuote(context.Background(), model.Requester{Name: "A", Email: "a@b.c"}, "VEN001", &result)
	assert.ErrorIs(t, err, ErrQuotesDisabled)
	_, err = a.Quotes(context.Background())
	assert.ErrorIs(t, err, ErrQuotesDisabled)
}

func TestWithMarket(t *testing.T) {
	a, store := newAdvisor(t)

	m := model.DefaultMarket()
	m.Name = "double-tariff"
	m.TariffPerKWh = 240
	b, err := a.WithMarket(m)
	require.NoError(t, err)

	assert.Equal(t, 12.8, a.Size(225000).SystemSize.ActualCapacityKW)
	assert.Equal(t, 6.4, b.Size(225000).SystemSize.ActualCapacityKW)
	assert.Equal(t, a.Locations(), b.Locations())

	result := b.Size(225000)
	_, err = b.RecordQuote(context.Background(), model.Requester{Name: "A", Email: "a@b.c"}, "VEN002", &result)
	require.NoError(t, err)
	stored, _ := store.List(context.Background())
	assert.Len(t, stored, 1, "derived advisors share the quote store")

	bad := model.DefaultMarket()
	bad.PanelWattage = 0
	_, err = a.WithMarket(bad)
	assert.Error(t, err)
	_, err = New(bad, catalog(), nil)
	assert.Error(t, err)
}

func TestProjectionAndCatalogAccessors(t *testing.T) {
	a, _ := newAdvisor(t)

	points := a.ProjectCosts(225000, 10)
	assert.Len(t, points, 10)
	assert.Equal(t, 288000.0, a.MonthlyFuelCost())

	assert.Len(t, a.Vendors(), 2)
	assert.Equal(t, []string{"Lagos", "Ogun"}, a.Locations())
	assert.Equal(t, 2, a.CatalogSummary().Verified)
	assert.Equal(t, "nigeria", a.Market().Name)
}
