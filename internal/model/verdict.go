package model

// Severity classifies a validation verdict.
// Keep these values stable; they are returned by the API.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Verdict is the outcome of validating a monthly bill.
type Verdict struct {
	IsValid  bool     `json:"isValid"`
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
}

// Proceedable reports whether sizing may run for the validated bill.
func (v Verdict) Proceedable() bool { return v.IsValid }
