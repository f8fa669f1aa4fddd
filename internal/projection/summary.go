package projection

import "solar-sizer/internal/model"

// Summary condenses a comparison series into the two figures shown to owners.
type Summary struct {
	Years int `json:"years"`

	// TotalSavings is diesel minus solar cumulative cost at the last year.
	// Negative when diesel stays cheaper over the horizon.
	TotalSavings float64 `json:"totalSavings"`

	// BreakevenYear is the first year solar is cumulatively cheaper than diesel.
	// 0 when that never happens within the horizon.
	BreakevenYear int `json:"breakevenYear"`
}

func Summarize(points []model.CostComparisonPoint) Summary {
	s := Summary{Years: len(points)}
	if len(points) == 0 {
		return s
	}
	last := points[len(points)-1]
	s.TotalSavings = last.DieselCumulative - last.SolarCumulative
	for _, pt := range points {
		if pt.SolarCumulative < pt.DieselCumulative {
			s.BreakevenYear = pt.Year
			break
		}
	}
	return s
}
