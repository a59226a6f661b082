package problem

import (
	"errors"
	"fmt"
)

// Kind classifies the root cause of a failed request.
type Kind uint8

const (
	// KindGeneric is any error that is neither a problem nor a missing parameter.
	KindGeneric Kind = iota
	// KindProblem is a root cause that already is a Problem.
	KindProblem
	// KindMissingParameter is a required route, query or header value that was not bound.
	KindMissingParameter
)

func (k Kind) String() string {
	switch k {
	case KindProblem:
		return "problem"
	case KindMissingParameter:
		return "missing_parameter"
	default:
		return "generic"
	}
}

// Classify returns the Kind of err. A Problem anywhere in the chain wins
// over a MissingParameterError.
func Classify(err error) Kind {
	if err == nil {
		return KindGeneric
	}

	var p Problem
	if errors.As(err, &p) {
		return KindProblem
	}

	var mp *MissingParameterError
	if errors.As(err, &mp) {
		return KindMissingParameter
	}

	return KindGeneric
}

// FieldError is one framework-level error attached to a failed request.
// Empty strings mean "not provided".
type FieldError struct {
	Title   string
	Message string
	Path    string
}

// FieldErrorer is implemented by errors that describe themselves as field errors.
type FieldErrorer interface {
	FieldErrors() []FieldError
}

// FieldErrorsOf returns the field errors err describes, or a single entry
// holding its message.
func FieldErrorsOf(err error) []FieldError {
	if err == nil {
		return nil
	}
	var fe FieldErrorer
	if errors.As(err, &fe) {
		return fe.FieldErrors()
	}
	return []FieldError{{Message: err.Error()}}
}

// ErrorContext is the read-only description of a failed request.
type ErrorContext struct {
	// RootCause is the error that failed the request. It may be nil.
	RootCause error
	// Kind is the classification of RootCause.
	Kind Kind
	// Errors are the field errors in the order the framework reported them.
	Errors []FieldError
	// Method is the HTTP method of the originating request.
	Method string
}

// NewErrorContext builds an ErrorContext and classifies cause once.
func NewErrorContext(method string, cause error, errs ...FieldError) ErrorContext {
	return ErrorContext{
		RootCause: cause,
		Kind:      Classify(cause),
		Errors:    errs,
		Method:    method,
	}
}

// ParameterSource names where a bound parameter was expected.
type ParameterSource string

const (
	QueryValue   ParameterSource = "QueryValue"
	PathVariable ParameterSource = "PathVariable"
	Header       ParameterSource = "Header"
)

// MissingArgumentTitle is the field error title of a MissingParameterError.
const MissingArgumentTitle = "Required argument missing"

// MissingParameterError is raised when a required request parameter is
// missing or cannot be bound. Its message only names the parameter, so it is
// the one error kind whose text may appear in a problem detail.
type MissingParameterError struct {
	Source ParameterSource
	Name   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required %s [%s] not specified", e.Source, e.Name)
}

// FieldErrors describes the missing parameter as a single field error.
func (e *MissingParameterError) FieldErrors() []FieldError {
	return []FieldError{{
		Title:   MissingArgumentTitle,
		Message: e.Error(),
		Path:    e.Name,
	}}
}
