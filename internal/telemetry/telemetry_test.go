package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewRecorder_GlobalProvider(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRecorder_NoopAcceptsEveryEvent(t *testing.T) {
	r, err := NewRecorderFromMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		r.Tick(ctx)
		r.Shot(ctx, "A", true)
		r.Shot(ctx, "B", false)
		r.Death(ctx, "B", "island")
		r.Collision(ctx, "ship")
		r.Outcome(ctx, "team_a_wins")
	})
	assert.NotNil(t, Noop())
}
