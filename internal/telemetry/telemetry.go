// Package telemetry exposes battle counters through the OpenTelemetry metric
// API. Without an SDK installed the global provider is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Garsondee/Naval-Skirmish/internal/sim"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Recorder holds the battle instruments.
type Recorder struct {
	ticks      metric.Int64Counter
	shots      metric.Int64Counter
	hits       metric.Int64Counter
	deaths     metric.Int64Counter
	collisions metric.Int64Counter
	outcomes   metric.Int64Counter
}

// NewRecorder builds instruments from the global meter provider.
func NewRecorder() (*Recorder, error) {
	return NewRecorderFromMeter(meter())
}

// NewRecorderFromMeter builds instruments from m.
func NewRecorderFromMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	if r.ticks, err = m.Int64Counter("naval.ticks",
		metric.WithDescription("Simulation ticks advanced")); err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}
	if r.shots, err = m.Int64Counter("naval.shots",
		metric.WithDescription("Shots fired")); err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	if r.hits, err = m.Int64Counter("naval.hits",
		metric.WithDescription("Shots that hit")); err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}
	if r.deaths, err = m.Int64Counter("naval.deaths",
		metric.WithDescription("Ships sunk")); err != nil {
		return nil, fmt.Errorf("creating deaths counter: %w", err)
	}
	if r.collisions, err = m.Int64Counter("naval.collisions",
		metric.WithDescription("Collision events that dealt damage")); err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}
	if r.outcomes, err = m.Int64Counter("naval.outcomes",
		metric.WithDescription("Battles finished")); err != nil {
		return nil, fmt.Errorf("creating outcomes counter: %w", err)
	}
	return r, nil
}

// Noop returns a recorder backed by the no-op meter.
func Noop() *Recorder {
	r, err := NewRecorderFromMeter(noop.Meter{})
	if err != nil {
		panic(err) // the no-op meter never fails
	}
	return r
}

func (r *Recorder) Tick(ctx context.Context) {
	r.ticks.Add(ctx, 1)
}

func (r *Recorder) Shot(ctx context.Context, team string, hit bool) {
	attrs := metric.WithAttributes(attribute.String("team", team))
	r.shots.Add(ctx, 1, attrs)
	if hit {
		r.hits.Add(ctx, 1, attrs)
	}
}

func (r *Recorder) Death(ctx context.Context, team, cause string) {
	r.deaths.Add(ctx, 1, metric.WithAttributes(
		attribute.String("team", team),
		attribute.String("cause", cause),
	))
}

func (r *Recorder) Collision(ctx context.Context, kind string) {
	r.collisions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (r *Recorder) Outcome(ctx context.Context, outcome string) {
	r.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
