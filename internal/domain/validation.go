// internal/domain/validation.go
package domain

// WarningSeverity grades an advisory finding. It influences UI emphasis
// only, never control flow.
type WarningSeverity string

const (
	SeverityLow    WarningSeverity = "low"
	SeverityMedium WarningSeverity = "medium"
	SeverityHigh   WarningSeverity = "high"
)

// ValidationWarning is an advisory finding attached to an otherwise
// successful result.
type ValidationWarning struct {
	Message  string          `bson:"message" json:"message"`
	Severity WarningSeverity `bson:"severity" json:"severity"`
}

// ValidationResult is the outcome of any validation pass in the pipeline.
// Errors block generation; warnings ride along with a successful result.
type ValidationResult struct {
	IsValid  bool                `bson:"isValid" json:"isValid"`
	Errors   []string            `bson:"errors,omitempty" json:"errors,omitempty"`
	Warnings []ValidationWarning `bson:"warnings,omitempty" json:"warnings,omitempty"`
}

// NewValidationResult returns a passing result to be filled in by checks.
func NewValidationResult() ValidationResult {
	return ValidationResult{IsValid: true}
}

// AddError records a blocking problem and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records an advisory finding with the given severity.
func (r *ValidationResult) AddWarning(msg string, severity WarningSeverity) {
	r.Warnings = append(r.Warnings, ValidationWarning{Message: msg, Severity: severity})
}

// Merge folds another result into this one. Errors from either side make the
// combined result invalid.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}
