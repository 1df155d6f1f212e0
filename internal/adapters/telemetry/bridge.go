package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/lesscache/internal/core/ports"
)

// SourceAttribute is the span attribute carrying the source key.
const SourceAttribute = "lesscache.source"

// LogBridge implements sdktrace.SpanProcessor and reports failed and slow
// compile spans to a logger.
type LogBridge struct {
	logger    ports.Logger
	span      string
	threshold time.Duration
}

// NewLogBridge returns a bridge for spans named span. Spans lasting at least
// threshold are reported; a zero threshold reports only failures.
func NewLogBridge(logger ports.Logger, span string, threshold time.Duration) *LogBridge {
	return &LogBridge{logger: logger, span: span, threshold: threshold}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || s.Name() != b.span || !s.SpanContext().IsValid() {
		return
	}

	source := "unknown source"
	for _, attr := range s.Attributes() {
		if string(attr.Key) == SourceAttribute {
			source = attr.Value.Emit()
		}
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	switch {
	case s.Status().Code == codes.Error:
		desc := s.Status().Description
		if desc == "" {
			desc = "compilation failed"
		}
		b.logger.Warn(fmt.Sprintf("compiling %s failed after %s: %s", source, elapsed.Round(time.Millisecond), desc))
	case b.threshold > 0 && elapsed >= b.threshold:
		b.logger.Warn(fmt.Sprintf("compiling %s took %s", source, elapsed.Round(time.Millisecond)))
	}
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}
