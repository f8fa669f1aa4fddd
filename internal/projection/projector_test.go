package projection

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
)

func TestProjectBakeryTenYears(t *testing.T) {
	market := model.DefaultMarket()
	points := New(market).Project(225000, DefaultYears)

	require.Len(t, points, 10)

	initial := sizing.NewCalculator(market).Size(225000).Costs.Total
	assert.Equal(t, 1, points[0].Year)
	assert.Equal(t, initial, points[0].SolarCumulative)

	// 1 l/h * 8 h * 30 days * 1200 = 288000 per month -> 3456000 in year 1
	assert.Equal(t, 800000.0+3456000.0, points[0].DieselCumulative)
	// year 2 fuel is inflated by 10%
	assert.Equal(t, 800000.0+3456000.0+3801600.0, points[1].DieselCumulative)
	assert.Equal(t, initial+50000, points[1].SolarCumulative)
	assert.Equal(t, initial+9*50000, points[9].SolarCumulative)
}

func TestProjectSeriesShape(t *testing.T) {
	p := New(model.DefaultMarket())
	for _, years := range []int{1, 3, 10, 25} {
		for _, bill := range []float64{14999, 80000, 225000, 650000, 7500000} {
			points := p.Project(bill, years)
			require.Len(t, points, years)
			for i := 1; i < len(points); i++ {
				assert.Equal(t, points[i-1].Year+1, points[i].Year)
				assert.GreaterOrEqual(t, points[i].SolarCumulative, points[i-1].SolarCumulative)
				assert.GreaterOrEqual(t, points[i].DieselCumulative, points[i-1].DieselCumulative)
			}
		}
	}
}

func TestProjectIsRestartable(t *testing.T) {
	p := New(model.DefaultMarket())
	assert.Equal(t, p.Project(225000, 10), p.Project(225000, 10))
}

func TestProjectNonPositiveHorizon(t *testing.T) {
	p := New(model.DefaultMarket())
	assert.Empty(t, p.Project(225000, 0))
	assert.Empty(t, p.Project(225000, -4))
}

func TestMonthlyFuelCostUsesMarket(t *testing.T) {
	m := model.DefaultMarket()
	m.Diesel.HoursPerDay = 4
	m.Diesel.FuelPricePerLiter = 180
	assert.Equal(t, 4.0*30*180, New(m).MonthlyFuelCost())
}

func TestSummarize(t *testing.T) {
	points := []model.CostComparisonPoint{
		{Year: 1, SolarCumulative: 100, DieselCumulative: 60},
		{Year: 2, SolarCumulative: 110, DieselCumulative: 105},
		{Year: 3, SolarCumulative: 120, DieselCumulative: 150},
		{Year: 4, SolarCumulative: 130, DieselCumulative: 200},
	}
	s := Summarize(points)
	assert.Equal(t, 4, s.Years)
	assert.Equal(t, 3, s.BreakevenYear)
	assert.Equal(t, 70.0, s.TotalSavings)

	t.Run("should report no breakeven", func(t *testing.T) {
		s := Summarize(points[:2])
		assert.Equal(t, 0, s.BreakevenYear)
		assert.Equal(t, -5.0, s.TotalSavings)
	})

	t.Run("should handle empty series", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})
}

func TestWriteComparisonCSV(t *testing.T) {
	points := []model.CostComparisonPoint{
		{Year: 1, SolarCumulative: 19560000, DieselCumulative: 4256000},
		{Year: 2, SolarCumulative: 19610000, DieselCumulative: 8057600},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonCSV(&buf, points))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"year", "solar_cumulative", "diesel_cumulative", "savings"}, rows[0])
	assert.Equal(t, []string{"1", "19560000", "4256000", "-15304000"}, rows[1])
	assert.Equal(t, []string{"2", "19610000", "8057600", "-11552400"}, rows[2])
}

func TestWriteComparisonCSVFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "comparison.csv")
	require.NoError(t, WriteComparisonCSVFile(path, []model.CostComparisonPoint{{Year: 1, SolarCumulative: 1, DieselCumulative: 2}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1,1,2,1")
}
