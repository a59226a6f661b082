package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestErrorDefaults(t *testing.T) {
	e := New()
	if e.Type() != DefaultType {
		t.Fatalf("expected %s, got %s", DefaultType, e.Type())
	}
	if e.StackTrace() != nil || e.Cause() != nil {
		t.Fatalf("expected no stack and no cause")
	}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Fatalf("expected empty document, got %s", b)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		opts []Option
		want string
	}{
		{opts: []Option{WithTitle("Not Found"), WithDetail("order 7")}, want: "Not Found: order 7"},
		{opts: []Option{WithTitle("Not Found")}, want: "Not Found"},
		{opts: []Option{WithDetail("order 7")}, want: "order 7"},
		{opts: []Option{WithStatus(StatusOf(http.StatusNotFound))}, want: "Not Found"},
		{opts: nil, want: "problem"},
	}
	for _, tc := range cases {
		if got := New(tc.opts...).Error(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestErrorReservedParametersIgnored(t *testing.T) {
	e := New(
		WithTitle("real"),
		WithParameter("title", "spoofed"),
		WithParameter("stackTrace", "spoofed"),
		WithParameter("", "empty"),
		WithParameter("ok", true),
	)

	if len(e.Parameters()) != 1 || e.Parameters()["ok"] != true {
		t.Fatalf("unexpected parameters %v", e.Parameters())
	}
}

func TestErrorUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	e := New(WithCause(fmt.Errorf("wrap: %w", sentinel)))
	if !errors.Is(e, sentinel) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestWithStackCapturesCaller(t *testing.T) {
	e := New(WithStack())
	st := e.StackTrace()
	if len(st) == 0 {
		t.Fatalf("expected a stack")
	}
	if !strings.Contains(st[0], "TestWithStackCapturesCaller") {
		t.Fatalf("expected innermost frame to be the caller, got %s", st[0])
	}

	given := StackTrace{"a", "b"}
	if got := New(WithStack(), WithStackTrace(given)).StackTrace(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("expected the given stack to win, got %v", got)
	}
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(StatusOf(http.StatusTooManyRequests))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "429" {
		t.Fatalf("expected bare code, got %s", b)
	}

	var s Status
	if err := json.Unmarshal([]byte("404"), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Code != http.StatusNotFound || s.Reason != "Not Found" {
		t.Fatalf("unexpected status %+v", s)
	}
}

func TestClassify(t *testing.T) {
	missing := &MissingParameterError{Source: QueryValue, Name: "id"}
	cases := []struct {
		err  error
		want Kind
	}{
		{err: nil, want: KindGeneric},
		{err: errors.New("x"), want: KindGeneric},
		{err: missing, want: KindMissingParameter},
		{err: fmt.Errorf("ctx: %w", missing), want: KindMissingParameter},
		{err: New(WithCause(missing)), want: KindProblem},
		{err: NewViolations(Status{}), want: KindProblem},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.err, tc.want, got)
		}
	}
}

func TestFieldErrorsOf(t *testing.T) {
	if FieldErrorsOf(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	got := FieldErrorsOf(&MissingParameterError{Source: Header, Name: "X-Api-Key"})
	if len(got) != 1 || got[0].Path != "X-Api-Key" || got[0].Title != MissingArgumentTitle ||
		got[0].Message != "required Header [X-Api-Key] not specified" {
		t.Fatalf("unexpected field errors %+v", got)
	}

	got = FieldErrorsOf(errors.New("boom"))
	if len(got) != 1 || got[0].Message != "boom" || got[0].Title != "" || got[0].Path != "" {
		t.Fatalf("unexpected field errors %+v", got)
	}
}

func TestViolationError(t *testing.T) {
	v := NewViolations(Status{}, Violation{Field: "email", Message: "must be a valid email", InvalidValue: "x"})
	if v.Status().Code != http.StatusBadRequest {
		t.Fatalf("expected default 400, got %d", v.Status().Code)
	}
	if v.Error() != "Constraint Violation: email must be a valid email" {
		t.Fatalf("unexpected message %q", v.Error())
	}

	withDetail := v.WithDetail("see violations").WithParameter("traceId", "t1").WithParameter("violations", "spoof")
	if v.Detail() != "" || v.Parameters() != nil {
		t.Fatalf("expected original to stay unchanged")
	}

	b, err := json.Marshal(withDetail)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"https://zalando.github.io/problem/constraint-violation","title":"Constraint Violation","status":400,"detail":"see violations","traceId":"t1","violations":[{"field":"email","message":"must be a valid email","invalidValue":"x"}]}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}

	empty, _ := json.Marshal(NewViolations(Status{}))
	if !strings.Contains(string(empty), `"violations":[]`) {
		t.Fatalf("expected empty violations array, got %s", empty)
	}
}
