package sizing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"solar-sizer/internal/model"
)

func newDefaultValidator() *Validator {
	return NewValidator(model.DefaultMarket().Thresholds)
}

func TestValidateRejectsNonProceedableInputs(t *testing.T) {
	v := newDefaultValidator()
	for _, raw := range []any{0, -1, nil, "x", "", true, math.NaN(), math.Inf(1), 10000001, []int{1}} {
		verdict := v.ValidateInput(raw)
		assert.False(t, verdict.Proceedable(), "input=%v", raw)
		assert.Equal(t, model.SeverityError, verdict.Severity, "input=%v", raw)
		assert.NotEmpty(t, verdict.Message)
	}
}

func TestValidateBoundaries(t *testing.T) {
	v := newDefaultValidator()

	cases := []struct {
		name     string
		bill     float64
		valid    bool
		severity model.Severity
	}{
		{"just below low usage floor", 14999, true, model.SeverityWarning},
		{"low usage floor is success", 15000, true, model.SeveritySuccess},
		{"typical sme", 225000, true, model.SeveritySuccess},
		{"high usage ceiling is success", 5000000, true, model.SeveritySuccess},
		{"above high usage ceiling", 5000001, true, model.SeverityWarning},
		{"industrial ceiling is warning", 10000000, true, model.SeverityWarning},
		{"above industrial ceiling", 10000001, false, model.SeverityError},
		{"tiny positive", 0.5, true, model.SeverityWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := v.Validate(tc.bill)
			assert.Equal(t, tc.valid, verdict.IsValid)
			assert.Equal(t, tc.severity, verdict.Severity)
		})
	}
}

func TestValidateMessages(t *testing.T) {
	v := newDefaultValidator()

	assert.Equal(t, msgNotPositive, v.Validate(0).Message)
	assert.Equal(t, msgNotANumber, v.ValidateInput("x").Message)
	assert.Contains(t, v.Validate(20000000).Message, "custom audit")
	assert.Contains(t, v.Validate(6000000).Message, "engineering team")
	assert.Contains(t, v.Validate(100).Message, "quite low")
	assert.Equal(t, msgNormalRange, v.Validate(80000).Message)
}

func TestValidateIsDeterministic(t *testing.T) {
	v := newDefaultValidator()
	assert.Equal(t, v.Validate(14999), v.Validate(14999))
}

func TestValidateInputNumericShapes(t *testing.T) {
	v := newDefaultValidator()
	for _, raw := range []any{225000, int64(225000), float32(225000), 225000.0, json.Number("225000"), " 225000 "} {
		verdict := v.ValidateInput(raw)
		assert.Equal(t, model.SeveritySuccess, verdict.Severity, "input=%#v", raw)
	}
}

func TestValidateUsesMarketThresholds(t *testing.T) {
	v := NewValidator(model.BillThresholds{LowUsage: 2500, HighUsage: 800000, Industrial: 1600000})

	assert.Equal(t, model.SeveritySuccess, v.Validate(15000).Severity)
	assert.Equal(t, model.SeverityWarning, v.Validate(900000).Severity)
	assert.False(t, v.Validate(2000000).IsValid)
}
