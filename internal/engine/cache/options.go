package cache

import (
	"context"
	"time"

	"go.trai.ch/lesscache/internal/core/ports"
)

// Option configures a Manager.
type Option func(*Manager)

// WithTracer sets the tracer used for lookup and compile spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(m *Manager) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics ports.Metrics) Option {
	return func(m *Manager) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// WithClock sets the clock used to time compilations.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) RecordError(error)        {}
func (nopSpan) SetAttribute(string, any) {}

type nopMetrics struct{}

func (nopMetrics) CacheHit()                            {}
func (nopMetrics) CacheMiss(string)                     {}
func (nopMetrics) CompileDuration(time.Duration, error) {}
func (nopMetrics) Cleared()                             {}
func (nopMetrics) EntryCount(int)                       {}
