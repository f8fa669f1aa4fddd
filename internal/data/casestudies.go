package data

import (
	"math"
	"os"
	"sort"
	"strings"

	"solar-sizer/internal/model"
)

// LoadCaseStudies reads the case study list. A missing file is an empty list.
func LoadCaseStudies(path string) ([]model.CaseStudy, error) {
	var studies []model.CaseStudy
	if err := ReadJSON(path, &studies); err != nil {
		if os.IsNotExist(err) {
			return []model.CaseStudy{}, nil
		}
		return nil, err
	}
	return studies, nil
}

// SimilarCaseStudies returns up to limit studies ordered by closeness of system
// size to kw. Studies whose location mentions the given location sort first.
func SimilarCaseStudies(studies []model.CaseStudy, kw float64, location string, limit int) []model.CaseStudy {
	loc := strings.ToLower(strings.TrimSpace(location))
	out := append([]model.CaseStudy(nil), studies...)
	local := func(s model.CaseStudy) bool {
		return loc != "" && strings.Contains(strings.ToLower(s.Location), loc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := local(out[i]), local(out[j])
		if li != lj {
			return li
		}
		return math.Abs(out[i].SystemSizeKW-kw) < math.Abs(out[j].SystemSizeKW-kw)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
