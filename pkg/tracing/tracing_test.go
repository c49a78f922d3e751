package tracing

import (
	"context"
	"testing"
)

// TestExtractTraceID_NoSpan 无Span的Context应返回空串
func TestExtractTraceID_NoSpan(t *testing.T) {
	if id := ExtractTraceID(context.Background()); id != "" {
		t.Errorf("期望空TraceID，实际%q", id)
	}
	if id := ExtractSpanID(context.Background()); id != "" {
		t.Errorf("期望空SpanID，实际%q", id)
	}
}

// TestStartSpan_NoProvider 未初始化Provider时StartSpan也不应panic
func TestStartSpan_NoProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "bookbazar", "ListBooks")
	defer span.End()

	if ctx == nil {
		t.Fatal("StartSpan应返回有效Context")
	}
}
