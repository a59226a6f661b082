// Package problem maps failed requests onto RFC 7807 "Problem Details for
// HTTP APIs" documents.
//
// The package decides three things for the error-handling pipeline: which
// payload shape to emit, whether stack traces are redacted, and whether the
// error message may leak into the detail member. It performs no I/O; callers
// serialize the returned values with encoding/json.
package problem

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of every problem document.
const ContentType = "application/problem+json"

// DefaultType is the problem type implied when none is set. It is omitted on the wire.
const DefaultType = "about:blank"

// Status is an HTTP status code with its reason phrase.
// The zero value means "no status".
type Status struct {
	Code   int
	Reason string
}

// StatusOf returns the Status for code with the standard reason phrase.
func StatusOf(code int) Status {
	return Status{Code: code, Reason: http.StatusText(code)}
}

// IsZero reports whether s carries no status code.
func (s Status) IsZero() bool { return s.Code == 0 }

func (s Status) String() string {
	if s.Reason == "" {
		return http.StatusText(s.Code)
	}
	return s.Reason
}

// MarshalJSON encodes the status as its bare numeric code.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Code)
}

// UnmarshalJSON decodes a numeric status and restores the reason phrase.
func (s *Status) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	*s = StatusOf(code)
	return nil
}

// Problem is the read side of an RFC 7807 document.
type Problem interface {
	Type() string
	Title() string
	Status() Status
	Detail() string
	Instance() string
	// Parameters returns the extension members. Callers must not mutate it.
	Parameters() map[string]any
}

// StructuredProblem is a Problem produced by validation. It carries one
// Violation per rejected field and is never redacted.
type StructuredProblem interface {
	Problem
	Violations() []Violation
}

// Violation is a single field-level validation failure.
type Violation struct {
	Field        string `json:"field"`
	Message      string `json:"message"`
	InvalidValue any    `json:"invalidValue"`
}

// Response is the error response the host framework is about to write.
type Response struct {
	Status      Status
	ContentType string
	Body        any
}
