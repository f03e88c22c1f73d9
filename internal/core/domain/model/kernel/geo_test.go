package kernel_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shibuya = kernel.MustNewLocation(35.6586, 139.7454, time.Time{})
	ginza   = kernel.MustNewLocation(35.6739, 139.7658, time.Time{})
)

func TestDistanceKm(t *testing.T) {
	t.Run("should be zero for identical points", func(t *testing.T) {
		assert.InDelta(t, 0, kernel.DistanceKm(shibuya, shibuya), 1e-12)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		assert.InDelta(t, kernel.DistanceKm(shibuya, ginza), kernel.DistanceKm(ginza, shibuya), 1e-9)
	})

	t.Run("should match the known Shibuya to Ginza distance", func(t *testing.T) {
		assert.InDelta(t, 2.5, kernel.DistanceKm(shibuya, ginza), 0.1)
	})

	t.Run("should measure one degree of latitude", func(t *testing.T) {
		a := kernel.MustNewLocation(0, 0, time.Time{})
		b := kernel.MustNewLocation(1, 0, time.Time{})

		assert.InDelta(t, 111.195, kernel.DistanceKm(a, b), 0.01)
	})
}

func TestMoveToward(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should snap to the destination inside the arrival epsilon", func(t *testing.T) {
		near := kernel.MustNewLocation(ginza.Latitude()+0.00005, ginza.Longitude(), time.Time{})

		next := kernel.MoveToward(near, ginza, 30, time.Second, now, kernel.NoJitter)

		eq, err := next.IsEqual(ginza)
		require.NoError(t, err)
		assert.True(t, eq)
	})

	t.Run("should cover speed times dt along the line", func(t *testing.T) {
		total := kernel.DistanceKm(shibuya, ginza)

		next := kernel.MoveToward(shibuya, ginza, 36, time.Second, now, kernel.NoJitter)

		assert.InDelta(t, 0.01, kernel.DistanceKm(shibuya, next), 1e-4)
		assert.InDelta(t, total-0.01, kernel.DistanceKm(next, ginza), 1e-4)
		assert.Equal(t, now, next.CapturedAt())
	})

	t.Run("should land exactly on the destination when the step overshoots", func(t *testing.T) {
		next := kernel.MoveToward(shibuya, ginza, 100000, time.Second, now, kernel.UniformJitter(kernel.MaxJitterDeg))

		eq, err := next.IsEqual(ginza)
		require.NoError(t, err)
		assert.True(t, eq)
		assert.Equal(t, now, next.CapturedAt())
	})

	t.Run("should never move away from the destination", func(t *testing.T) {
		pos := shibuya
		prev := kernel.DistanceKm(pos, ginza)

		for range 100 {
			pos = kernel.MoveToward(pos, ginza, 1000, time.Second, now, kernel.UniformJitter(kernel.MaxJitterDeg))
			d := kernel.DistanceKm(pos, ginza)
			assert.LessOrEqual(t, d, prev)
			prev = d
		}

		assert.Less(t, prev, kernel.ArrivalEpsilonKm)
	})

	t.Run("should bound the jitter offset", func(t *testing.T) {
		wild := func() (float64, float64) { return 1, -1 }

		straight := kernel.MoveToward(shibuya, ginza, 36, time.Second, now, kernel.NoJitter)
		jittered := kernel.MoveToward(shibuya, ginza, 36, time.Second, now, wild)

		assert.InDelta(t, straight.Latitude(), jittered.Latitude(), kernel.MaxJitterDeg+1e-12)
		assert.InDelta(t, straight.Longitude(), jittered.Longitude(), kernel.MaxJitterDeg+1e-12)
	})
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name     string
		traveled float64
		total    float64
		want     float64
	}{
		{name: "halfway", traveled: 1, total: 2, want: 0.5},
		{name: "overshoot is clamped", traveled: 3, total: 2, want: 1},
		{name: "negative is clamped", traveled: -1, total: 2, want: 0},
		{name: "zero total counts as complete", traveled: 0, total: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, kernel.ProgressFraction(tt.traveled, tt.total), 1e-12)
		})
	}
}

func TestStraightRoute(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	route := kernel.StraightRoute(shibuya, ginza, 10, start, time.Minute)

	require.Len(t, route, 11)
	first, err := route[0].IsEqual(shibuya)
	require.NoError(t, err)
	assert.True(t, first)
	assert.InDelta(t, ginza.Latitude(), route[10].Latitude(), 1e-9)
	assert.InDelta(t, ginza.Longitude(), route[10].Longitude(), 1e-9)
	assert.Equal(t, start.Add(10*time.Minute), route[10].CapturedAt())
}
