// Package binding reads required request values and decodes JSON bodies,
// reporting failures as errors the problem pipeline understands.
package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/godamri/helix-problem/problem"
	"github.com/godamri/helix-problem/validation"
)

// MaxBodyBytes caps the size of decoded JSON bodies.
const MaxBodyBytes = 1 << 20

// RequiredQuery returns the named query value.
func RequiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", &problem.MissingParameterError{Source: problem.QueryValue, Name: name}
	}
	return v, nil
}

// RequiredPathParam returns the named chi URL parameter.
func RequiredPathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if v == "" {
		return "", &problem.MissingParameterError{Source: problem.PathVariable, Name: name}
	}
	return v, nil
}

// RequiredHeader returns the named request header.
func RequiredHeader(r *http.Request, name string) (string, error) {
	v := r.Header.Get(name)
	if v == "" {
		return "", &problem.MissingParameterError{Source: problem.Header, Name: name}
	}
	return v, nil
}

// Decoder decodes JSON bodies and validates the result.
type Decoder struct {
	validator *validation.Validator
}

func NewDecoder(v *validation.Validator) *Decoder {
	if v == nil {
		v = validation.New()
	}
	return &Decoder{validator: v}
}

// DecodeJSON fills dst from the request body and validates it.
// Unreadable bodies become a 400 problem whose detail never quotes the payload.
func (d *Decoder) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return malformed(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return malformed(errors.New("body must contain a single JSON value"))
	}

	return d.validator.Struct(dst)
}

func malformed(err error) error {
	detail := "request body is not valid JSON"

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		detail = "request body must not be empty"
	case errors.As(err, &maxErr):
		return problem.New(
			problem.WithStatus(problem.StatusOf(http.StatusRequestEntityTooLarge)),
			problem.WithTitle(http.StatusText(http.StatusRequestEntityTooLarge)),
			problem.WithDetail(fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit)),
			problem.WithCause(err),
		)
	case errors.As(err, &typeErr):
		detail = fmt.Sprintf("field %q has the wrong type", typeErr.Field)
	}

	return problem.New(
		problem.WithStatus(problem.StatusOf(http.StatusBadRequest)),
		problem.WithTitle(http.StatusText(http.StatusBadRequest)),
		problem.WithDetail(detail),
		problem.WithCause(err),
	)
}
