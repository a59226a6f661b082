package telemetry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/godamri/helix-problem/pkg/contextx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceHandler wraps a slog.Handler to stamp request correlation ids on
// every record and to mirror warnings and errors onto the active span.
type TraceHandler struct {
	slog.Handler
}

func NewTraceHandler(h slog.Handler) *TraceHandler {
	return &TraceHandler{Handler: h}
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	// Our own X-Trace-Id wins; the OTel trace id is the fallback.
	if id := contextx.GetTraceID(ctx); id != "untriaged" {
		r.AddAttrs(slog.String("trace_id", id))
	} else if sc.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()))
	}
	if sc.HasSpanID() {
		r.AddAttrs(slog.String("span_id", sc.SpanID().String()))
	}
	if id := contextx.GetRequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}

	if span.IsRecording() && r.Level >= slog.LevelWarn {
		recordOnSpan(span, r)
	}

	return h.Handler.Handle(ctx, r)
}

// recordOnSpan marks the span failed for errors and adds an event for warnings.
func recordOnSpan(span trace.Span, r slog.Record) {
	attrs := make([]attribute.KeyValue, 0, r.NumAttrs())
	var recorded error

	r.Attrs(func(a slog.Attr) bool {
		switch a.Value.Kind() {
		case slog.KindString:
			attrs = append(attrs, attribute.String(a.Key, a.Value.String()))
		case slog.KindInt64:
			attrs = append(attrs, attribute.Int64(a.Key, a.Value.Int64()))
		case slog.KindFloat64:
			attrs = append(attrs, attribute.Float64(a.Key, a.Value.Float64()))
		case slog.KindBool:
			attrs = append(attrs, attribute.Bool(a.Key, a.Value.Bool()))
		default:
			attrs = append(attrs, attribute.String(a.Key, a.Value.String()))
		}
		if a.Key == "error" && a.Value.Kind() == slog.KindAny {
			if e, ok := a.Value.Any().(error); ok {
				recorded = e
			}
		}
		return true
	})

	if r.Level < slog.LevelError {
		span.AddEvent("log_warning", trace.WithAttributes(
			append(attrs, attribute.String("message", r.Message))...,
		))
		return
	}

	if recorded == nil {
		recorded = errors.New(r.Message)
	}
	span.RecordError(recorded, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, r.Message)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}
