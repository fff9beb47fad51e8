package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestTracer_NilProvider(t *testing.T) {
	tracer := Tracer(nil)
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestTracer_WithProvider(t *testing.T) {
	tracer := Tracer(noop.NewTracerProvider())
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestSetupPropagation(t *testing.T) {
	orig := otel.GetTextMapPropagator()
	defer otel.SetTextMapPropagator(orig)

	SetupPropagation()

	found := false
	for _, f := range otel.GetTextMapPropagator().Fields() {
		if f == "traceparent" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected propagator to handle 'traceparent'")
	}
}

func TestNewTracerProvider(t *testing.T) {
	tp, err := NewTracerProvider(t.Context(), "http://localhost:0/v1/traces", ServiceName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(t.Context()) }()

	var _ trace.TracerProvider = tp
}

func TestConversationSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := Tracer(tp)

	_, span := StartConversationSpan(context.Background(), tracer, "mistral", "ag_1")
	EndSpan(span, nil)
	_, failed := StartConversationSpan(context.Background(), tracer, "mistral", "ag_2")
	EndSpan(failed, errors.New("timed out"))

	ended := recorder.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	if ended[0].Name() != "conversation.start" || ended[0].SpanKind() != trace.SpanKindClient {
		t.Errorf("unexpected span %q kind %v", ended[0].Name(), ended[0].SpanKind())
	}
	if ended[0].Status().Code != codes.Ok {
		t.Errorf("expected ok status, got %v", ended[0].Status())
	}

	want := attribute.String("gen_ai.agent.id", "ag_2")
	hasAttr := false
	for _, kv := range ended[1].Attributes() {
		if kv == want {
			hasAttr = true
		}
	}
	if !hasAttr {
		t.Errorf("missing agent attribute: %v", ended[1].Attributes())
	}
	if ended[1].Status().Code != codes.Error || len(ended[1].Events()) == 0 {
		t.Errorf("expected error status and recorded error event, got %v", ended[1].Status())
	}
}
