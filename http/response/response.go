package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/godamri/helix-problem/pkg/contextx"
	"github.com/godamri/helix-problem/problem"
)

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    Meta        `json:"meta"`
}

type Meta struct {
	TraceID string `json:"trace_id"`
}

// JSON writes a success envelope. Failures go through WriteProblem instead.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	env := Envelope{
		Success: true,
		Data:    data,
		Meta:    Meta{TraceID: contextx.GetTraceID(r.Context())},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		// Headers are gone already (e.g. broken pipe). Nothing left but to log.
		slog.WarnContext(r.Context(), "response: failed to encode envelope", "error", err)
	}
}

// WriteProblem writes a response produced by problem.Processor.
// A nil body (HEAD requests) only writes the status line and headers.
func WriteProblem(w http.ResponseWriter, resp problem.Response) error {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}

	code := resp.Status.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}

	if resp.Body == nil {
		w.WriteHeader(code)
		return nil
	}

	// Encode first so a marshalling failure can still become a clean 500.
	b, err := json.Marshal(resp.Body)
	if err != nil {
		w.Header().Set("Content-Type", problem.ContentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":500}`))
		return err
	}

	w.WriteHeader(code)
	_, err = w.Write(append(b, '\n'))
	return err
}
