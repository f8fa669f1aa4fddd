package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/model"
	"solar-sizer/internal/quote"
)

func testCatalog() []model.Vendor {
	return []model.Vendor{
		{
			ID: "VEN001", CompanyName: "Lagos SolarTech Solutions", Verified: true,
			SystemSizeMinKW: 3, SystemSizeMaxKW: 50,
			Headquarters: "Lagos, Nigeria", ServiceAreas: []string{"Lagos", "Ogun"},
			Rating: 4.8, YearsInBusiness: 12, InstallationsCompleted: 450, AvgResponseTime: "2 hours",
		},
		{
			ID: "VEN009", CompanyName: "Mille Collines Solar", Verified: true,
			SystemSizeMinKW: 1, SystemSizeMaxKW: 30,
			Headquarters: "Kigali, Rwanda", ServiceAreas: []string{"Kigali"},
			Rating: 4.7, YearsInBusiness: 8, AvgResponseTime: "2 hours",
		},
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doubled.yaml"),
		[]byte("market:\n  name: doubled\n  country: Testland\n  tariff_per_kwh: 240\n"), 0644))

	a, err := advisor.New(model.DefaultMarket(), testCatalog(), quote.NewMemoryStore())
	require.NoError(t, err)

	return NewRouter(Deps{
		Advisor:    a,
		MarketsDir: dir,
		CaseStudies: []model.CaseStudy{
			{ID: "STORY001", Location: "Lagos, Nigeria", SystemSizeKW: 3.5},
			{ID: "STORY002", Location: "Nairobi, Kenya", SystemSizeKW: 8},
		},
		AllowedOrigins: []string{"https://app.example.com"},
	})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", body)
	return e["code"].(string)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	for _, path := range []string{"/health", "/api/v1/health"} {
		w, body := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", body["status"])
	}
}

func TestValidateEndpoint(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"should accept a typical bill", `{"monthly_bill": 225000}`, "success"},
		{"should warn on a small bill", `{"monthly_bill": 10000}`, "warning"},
		{"should reject a missing bill", `{}`, "error"},
		{"should reject text", `{"monthly_bill": "lots"}`, "error"},
		{"should accept a numeric string", `{"monthly_bill": "225000"}`, "success"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := do(t, r, http.MethodPost, "/api/v1/validate", tc.body)
			require.Equal(t, http.StatusOK, w.Code)
			v := body["validation"].(map[string]any)
			assert.Equal(t, tc.want, v["type"])
		})
	}
}

func TestSizingEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("should size the bakery and match vendors", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill": 225000, "location": "Lagos"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "nigeria", body["market"])

		s := body["sizing"].(map[string]any)
		size := s["systemSize"].(map[string]any)
		assert.Equal(t, 12.8, size["actualCapacityKW"])
		assert.Equal(t, 12.5, size["recommendedCapacityKW"])
		costs := s["costs"].(map[string]any)
		assert.Equal(t, 19560000.0, costs["total"])

		vendors := body["vendors"].(map[string]any)
		assert.Equal(t, "matched", vendors["status"])
	})

	t.Run("should omit vendors without a location", func(t *testing.T) {
		_, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill": 225000}`)
		assert.NotContains(t, body, "vendors")
	})

	t.Run("should use a market preset", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill": 225000, "market": "doubled"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "doubled", body["market"])
		size := body["sizing"].(map[string]any)["systemSize"].(map[string]any)
		assert.Equal(t, 6.4, size["actualCapacityKW"])
	})

	t.Run("should reject an unknown market", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill": 225000, "market": "atlantis"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "UNKNOWN_MARKET", errorCode(t, body))
	})

	t.Run("should refuse to size a rejected bill", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill": 0}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "VALIDATION_REJECTED", errorCode(t, body))
		details := body["error"].(map[string]any)["details"].(map[string]any)
		assert.Equal(t, false, details["validation"].(map[string]any)["isValid"])
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/sizing", `{"monthly_bill":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, body))
	})
}

func TestCostComparisonEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("should default to ten years", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/cost-comparison", `{"monthly_bill": 225000}`)
		require.Equal(t, http.StatusOK, w.Code)
		points := body["points"].([]any)
		assert.Len(t, points, 10)
		first := points[0].(map[string]any)
		assert.Equal(t, 1.0, first["year"])
		assert.Equal(t, 4256000.0, first["dieselCumulative"])
		assert.Equal(t, 288000.0, body["monthly_fuel_cost"])
		assert.Equal(t, 10.0, body["summary"].(map[string]any)["years"])
	})

	t.Run("should reject an out of range horizon", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/cost-comparison", `{"monthly_bill": 225000, "years": 51}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w, _ = do(t, r, http.MethodPost, "/api/v1/cost-comparison", `{"monthly_bill": 225000, "years": -1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should export csv", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/cost-comparison?format=csv", `{"monthly_bill": 225000, "years": 3}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "year,solar_cumulative,diesel_cumulative,savings", lines[0])
	})
}

func TestVendorMatchEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("should return ranked vendors", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/vendors/match", `{"required_kw": 12.8, "location": "lagos"}`)
		require.Equal(t, http.StatusOK, w.Code)
		vendors := body["vendors"].([]any)
		require.Len(t, vendors, 1)
		assert.Equal(t, "VEN001", vendors[0].(map[string]any)["id"])
		assert.Equal(t, "3-50kW", vendors[0].(map[string]any)["system_capacity_range"])
	})

	t.Run("should report an unserved region", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/vendors/match", `{"required_kw": 12.8, "location": "Atlantis"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "REGION_UNAVAILABLE", errorCode(t, body))
		details := body["error"].(map[string]any)["details"].(map[string]any)
		assert.ElementsMatch(t, []any{"Kigali", "Lagos", "Ogun"}, details["available_locations"])
	})

	t.Run("should report an unmatched capacity", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/vendors/match", `{"required_kw": 10000, "location": "Lagos"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CAPACITY_UNMATCHED", errorCode(t, body))
	})

	t.Run("should require fields", func(t *testing.T) {
		for _, b := range []string{`{"location": "Lagos"}`, `{"required_kw": 5}`, `{"required_kw": 5, "location": "  "}`, `{"required_kw": -1, "location": "Lagos"}`} {
			w, _ := do(t, r, http.MethodPost, "/api/v1/vendors/match", b)
			assert.Equal(t, http.StatusBadRequest, w.Code, b)
		}
	})
}

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/v1/vendors", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["vendors"].([]any), 2)
	assert.Equal(t, 2.0, body["summary"].(map[string]any)["verified"])

	w, body = do(t, r, http.MethodGet, "/api/v1/locations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, body["count"])

	w, body = do(t, r, http.MethodGet, "/api/v1/markets", "")
	require.Equal(t, http.StatusOK, w.Code)
	markets := body["markets"].([]any)
	require.Len(t, markets, 1)
	assert.Equal(t, "doubled", markets[0].(map[string]any)["id"])
	assert.Equal(t, 240.0, markets[0].(map[string]any)["tariff_per_kwh"])
	assert.Equal(t, "nigeria", body["default"].(map[string]any)["name"])

	w, body = do(t, r, http.MethodGet, "/api/v1/case-studies?kw=8&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	studies := body["case_studies"].([]any)
	require.Len(t, studies, 1)
	assert.Equal(t, "STORY002", studies[0].(map[string]any)["id"])
}

func TestQuoteEndpoints(t *testing.T) {
	r := setupRouter(t)

	t.Run("should record a quote sized on the server", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/quotes",
			`{"user_data": {"name": "Chioma", "email": "chioma@bakery.ng"}, "vendor_id": "VEN001", "monthly_bill": 225000}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Regexp(t, `^QR-\d+-[0-9a-f]{8}$`, body["quoteId"])
		assert.Equal(t, "Quote request sent to Lagos SolarTech Solutions. They typically respond within 2 hours.", body["message"])
		details := body["quoteRequest"].(map[string]any)["systemDetails"].(map[string]any)
		assert.Equal(t, 12.8, details["recommendedCapacityKW"])
	})

	t.Run("should reject missing contact details", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/quotes",
			`{"user_data": {"name": "Chioma"}, "vendor_id": "VEN001", "monthly_bill": 225000}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, body))
	})

	t.Run("should reject a missing sizing result", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/quotes",
			`{"user_data": {"name": "Chioma", "email": "c@b.ng"}, "vendor_id": "VEN001"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject an unknown vendor", func(t *testing.T) {
		w, body := do(t, r, http.MethodPost, "/api/v1/quotes",
			`{"user_data": {"name": "Chioma", "email": "c@b.ng"}, "vendor_id": "VEN404", "monthly_bill": 225000}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "VENDOR_NOT_FOUND", errorCode(t, body))
	})

	t.Run("should list only stored quotes", func(t *testing.T) {
		w, body := do(t, r, http.MethodGet, "/api/v1/quotes", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, body["count"])
	})
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sizing", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	r := setupRouter(t)
	w, body := do(t, r, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}
