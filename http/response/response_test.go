package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/godamri/helix-problem/pkg/contextx"
	"github.com/godamri/helix-problem/problem"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "problem status", err: problem.New(problem.WithStatus(problem.StatusOf(http.StatusTeapot))), want: http.StatusTeapot},
		{name: "problem without status", err: Coded(ErrNotFound, problem.New()), want: http.StatusNotFound},
		{name: "missing parameter", err: fmt.Errorf("bind: %w", &problem.MissingParameterError{Source: problem.QueryValue, Name: "id"}), want: http.StatusBadRequest},
		{name: "coded", err: Coded(ErrAlreadyExists, errors.New("dup")), want: http.StatusConflict},
		{name: "violations", err: problem.NewViolations(problem.Status{}), want: http.StatusBadRequest},
		{name: "gateway timeout", err: Coded(ErrGatewayTimeout, nil), want: http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.err); got.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got.Code)
			}
		})
	}
}

func TestCodedError(t *testing.T) {
	inner := errors.New("no rows")
	err := Coded(ErrNotFound, inner)
	if err.Error() != "RES_NOT_FOUND: no rows" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected unwrap to reach inner error")
	}
	if CodeOf(errors.New("x")) != ErrSystem {
		t.Fatalf("expected system code for uncoded errors")
	}
}

func TestWriteProblem(t *testing.T) {
	rr := httptest.NewRecorder()
	body := problem.Redact(problem.New(problem.WithStatus(problem.StatusOf(http.StatusNotFound)), problem.WithTitle("Not Found")))

	err := WriteProblem(rr, problem.Response{
		Status:      problem.StatusOf(http.StatusNotFound),
		ContentType: problem.ContentType,
		Body:        body,
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != problem.ContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rr.Body.String() != "{\"title\":\"Not Found\",\"status\":404}\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestWriteProblemWithoutBody(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := WriteProblem(rr, problem.Response{Status: problem.StatusOf(http.StatusBadRequest)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rr.Code != http.StatusBadRequest || rr.Body.Len() != 0 {
		t.Fatalf("expected bare 400, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestWriteProblemEncodeFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	err := WriteProblem(rr, problem.Response{
		Status: problem.StatusOf(http.StatusBadRequest),
		Body:   problem.New(problem.WithParameter("bad", math.Inf(1))),
	})
	if err == nil {
		t.Fatalf("expected encode error")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestJSONEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req = req.WithContext(contextx.WithTraceID(req.Context(), "trace-1"))

	JSON(rr, req, http.StatusOK, map[string]string{"id": "1"})

	var env struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Meta    Meta              `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["id"] != "1" || env.Meta.TraceID != "trace-1" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}
