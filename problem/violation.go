package problem

import (
	"fmt"
	"net/http"
)

const (
	// ConstraintViolationType identifies problems carrying field violations.
	ConstraintViolationType = "https://zalando.github.io/problem/constraint-violation"
	// ConstraintViolationTitle is the title of problems carrying field violations.
	ConstraintViolationTitle = "Constraint Violation"
)

// ViolationError is the StructuredProblem produced by request validation.
type ViolationError struct {
	status     Status
	detail     string
	violations []Violation
	params     map[string]any
}

// NewViolations builds a ViolationError. A zero status defaults to 400.
func NewViolations(status Status, violations ...Violation) *ViolationError {
	if status.IsZero() {
		status = StatusOf(http.StatusBadRequest)
	}
	vs := make([]Violation, len(violations))
	copy(vs, violations)
	return &ViolationError{status: status, violations: vs}
}

// WithDetail returns a copy of v carrying detail.
func (v *ViolationError) WithDetail(detail string) *ViolationError {
	cp := *v
	cp.detail = detail
	return &cp
}

// WithParameter returns a copy of v carrying the extension member.
// Reserved member names are ignored.
func (v *ViolationError) WithParameter(key string, value any) *ViolationError {
	cp := *v
	if key == "" || IsReserved(key) {
		return &cp
	}
	cp.params = copyParams(v.params)
	if cp.params == nil {
		cp.params = make(map[string]any, 1)
	}
	cp.params[key] = value
	return &cp
}

func (v *ViolationError) Type() string               { return ConstraintViolationType }
func (v *ViolationError) Title() string              { return ConstraintViolationTitle }
func (v *ViolationError) Status() Status             { return v.status }
func (v *ViolationError) Detail() string             { return v.detail }
func (v *ViolationError) Instance() string           { return "" }
func (v *ViolationError) Parameters() map[string]any { return v.params }
func (v *ViolationError) Violations() []Violation    { return v.violations }

func (v *ViolationError) Error() string {
	switch len(v.violations) {
	case 0:
		return ConstraintViolationTitle
	case 1:
		return fmt.Sprintf("%s: %s %s", ConstraintViolationTitle, v.violations[0].Field, v.violations[0].Message)
	default:
		return fmt.Sprintf("%s: %d fields rejected", ConstraintViolationTitle, len(v.violations))
	}
}

func (v *ViolationError) MarshalJSON() ([]byte, error) {
	var o object
	o.addProblem(v)
	vs := v.violations
	if vs == nil {
		vs = []Violation{}
	}
	o.add(memberViolations, vs)
	return o.bytes()
}
