package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	tests := []Options{
		{Enabled: false, Endpoint: "http://localhost:4318"},
		{Enabled: true, Endpoint: ""},
	}

	for _, opts := range tests {
		shutdown, err := Setup(context.Background(), opts)
		if err != nil {
			t.Fatalf("Setup(%+v) error: %v", opts, err)
		}
		if shutdown == nil {
			t.Fatalf("Setup(%+v) returned nil shutdown", opts)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("noop shutdown error: %v", err)
		}
	}
}

func TestTracersStartSpans(t *testing.T) {
	ctx := context.Background()
	_, span := Tracer("test").Start(ctx, "test.span")
	span.End()

	_, noopSpan := NoopTracer().Start(ctx, "noop.span")
	if noopSpan.SpanContext().IsValid() {
		t.Error("noop tracer should produce invalid span contexts")
	}
	noopSpan.End()
}
