package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/godamri/helix-problem/problem"
)

const (
	// General & System
	ErrSystem         = "SYS_INTERNAL_ERROR"
	ErrBadRequest     = "SYS_BAD_REQUEST"
	ErrServiceUnavail = "SYS_SERVICE_UNAVAILABLE"
	ErrGatewayTimeout = "SYS_GATEWAY_TIMEOUT"

	// Validation
	ErrValidation    = "VAL_INVALID_INPUT"
	ErrMissingField  = "VAL_MISSING_FIELD"
	ErrInvalidFormat = "VAL_INVALID_FORMAT"

	// Auth
	ErrMissingToken  = "AUTH_MISSING_TOKEN"
	ErrInvalidToken  = "AUTH_INVALID_TOKEN"
	ErrForbidden     = "AUTH_FORBIDDEN"
	ErrAccountLocked = "AUTH_ACCOUNT_LOCKED"

	// Resource / Data (Database Mapped)
	ErrNotFound        = "RES_NOT_FOUND"
	ErrAlreadyExists   = "RES_ALREADY_EXISTS"
	ErrConflict        = "RES_CONFLICT"
	ErrVersionMismatch = "RES_VERSION_MISMATCH"

	// Business Logic
	ErrRuleViolation = "BIZ_RULE_VIOLATION"
	ErrRateLimit     = "BIZ_RATE_LIMIT_EXCEEDED"
)

func MapStatus(code string) int {
	switch code {
	case ErrBadRequest, ErrValidation, ErrMissingField, ErrInvalidFormat:
		return http.StatusBadRequest

	case ErrMissingToken, ErrInvalidToken:
		return http.StatusUnauthorized

	case ErrForbidden, ErrAccountLocked:
		return http.StatusForbidden

	case ErrNotFound:
		return http.StatusNotFound

	case ErrAlreadyExists, ErrConflict, ErrVersionMismatch:
		return http.StatusConflict

	case ErrRateLimit:
		return http.StatusTooManyRequests

	case ErrRuleViolation:
		return http.StatusUnprocessableEntity

	case ErrServiceUnavail:
		return http.StatusServiceUnavailable

	case ErrGatewayTimeout:
		return http.StatusGatewayTimeout

	case ErrSystem:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// CodedError tags an error with one of the codes above so the pipeline can
// pick a status without knowing where the error came from.
type CodedError struct {
	Code string
	Err  error
}

// Coded wraps err with code.
func Coded(code string, err error) *CodedError {
	return &CodedError{Code: code, Err: err}
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CodedError) Unwrap() error { return e.Err }

// CodeOf returns the code carried by err, or ErrSystem.
func CodeOf(err error) string {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrSystem
}

// StatusFor decides the response status of a failed request.
// Priority: the problem's own status > missing parameter (400) > coded status > 500.
func StatusFor(err error) problem.Status {
	var p problem.Problem
	if errors.As(err, &p) && !p.Status().IsZero() {
		return p.Status()
	}

	var mp *problem.MissingParameterError
	if errors.As(err, &mp) {
		return problem.StatusOf(http.StatusBadRequest)
	}

	return problem.StatusOf(MapStatus(CodeOf(err)))
}
