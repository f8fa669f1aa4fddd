package projection

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"solar-sizer/internal/model"
)

// WriteComparisonCSV writes one row per year with the running savings column.
func WriteComparisonCSV(w io.Writer, points []model.CostComparisonPoint) error {
	cw := csv.NewWriter(w)

	header := []string{
		"year",
		"solar_cumulative",
		"diesel_cumulative",
		"savings",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Year),
			fmtAmount(p.SolarCumulative),
			fmtAmount(p.DieselCumulative),
			fmtAmount(p.DieselCumulative - p.SolarCumulative),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSVFile creates path (and its directory) and writes the series to it.
func WriteComparisonCSVFile(path string, points []model.CostComparisonPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteComparisonCSV(f, points)
}

func fmtAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', 0, 64)
}
