package sizing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"solar-sizer/internal/model"
)

const (
	msgNotANumber     = "Monthly bill must be a valid number"
	msgNotPositive    = "Monthly bill must be greater than zero"
	msgLowUsage       = "This usage is quite low; solar might take longer to pay for itself. Consider if solar is right for your business at this consumption level."
	msgIndustrialLoad = "For industrial loads this large, please contact our engineering team for a custom audit. Standard calculations may not be accurate for your needs."
	msgHighUsage      = "This is a very high energy consumption. We recommend consulting with our engineering team for optimal system design."
	msgNormalRange    = "Monthly bill is within normal SME range"
)

// Validator gates monthly bills before sizing runs.
type Validator struct {
	thresholds model.BillThresholds
}

func NewValidator(t model.BillThresholds) *Validator {
	return &Validator{thresholds: t}
}

// Validate classifies a numeric bill.
//
// Bands, in order:
// - not finite or <= 0: error
// - below LowUsage: warning
// - above Industrial: error
// - above HighUsage: warning
// - otherwise: success
func (v *Validator) Validate(bill float64) model.Verdict {
	if math.IsNaN(bill) || math.IsInf(bill, 0) {
		return reject(msgNotANumber)
	}
	if bill <= 0 {
		return reject(msgNotPositive)
	}
	if bill < v.thresholds.LowUsage {
		return warn(msgLowUsage)
	}
	if bill > v.thresholds.Industrial {
		return reject(msgIndustrialLoad)
	}
	if bill > v.thresholds.HighUsage {
		return warn(msgHighUsage)
	}
	return model.Verdict{IsValid: true, Severity: model.SeveritySuccess, Message: msgNormalRange}
}

// ValidateInput classifies an untyped bill as decoded from JSON or a form.
// nil, booleans and non-numeric strings are rejected.
func (v *Validator) ValidateInput(raw any) model.Verdict {
	bill, ok := ParseBill(raw)
	if !ok {
		return reject(msgNotANumber)
	}
	return v.Validate(bill)
}

// ParseBill extracts a float from the shapes a bill can arrive in.
func ParseBill(raw any) (float64, bool) {
	switch x := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func reject(msg string) model.Verdict {
	return model.Verdict{IsValid: false, Severity: model.SeverityError, Message: msg}
}

func warn(msg string) model.Verdict {
	return model.Verdict{IsValid: true, Severity: model.SeverityWarning, Message: msg}
}
