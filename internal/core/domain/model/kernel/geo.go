package kernel

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// ArrivalEpsilonKm is the remaining distance below which MoveToward snaps
	// to the destination.
	ArrivalEpsilonKm = 0.01

	// MaxJitterDeg bounds the per-step positional noise MoveToward may add.
	// One micro-degree is about 11 cm.
	MaxJitterDeg = 1e-6

	kmPerDegree = math.Pi * EarthRadiusKm / 180
)

// Jitter yields a small positional offset in degrees for a single step.
type Jitter func() (dLat, dLon float64)

// NoJitter moves in a perfectly straight line.
func NoJitter() (float64, float64) {
	return 0, 0
}

// UniformJitter returns offsets drawn uniformly from [-maxDeg/2, maxDeg/2],
// with maxDeg capped at MaxJitterDeg.
func UniformJitter(maxDeg float64) Jitter {
	maxDeg = math.Min(math.Abs(maxDeg), MaxJitterDeg)
	return func() (float64, float64) {
		return (rand.Float64() - 0.5) * maxDeg, (rand.Float64() - 0.5) * maxDeg //nolint:gosec // simulation only
	}
}

// DistanceKm returns the great-circle distance between a and b in kilometres.
func DistanceKm(a, b Location) float64 {
	lat1 := degreesToRadians(a.latitude)
	lat2 := degreesToRadians(b.latitude)
	dLat := lat2 - lat1
	dLon := degreesToRadians(b.longitude - a.longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// MoveToward advances current toward destination at speedKmh for one step of
// length dt. If less than ArrivalEpsilonKm remains, destination is returned
// unchanged. Otherwise the mover covers min(speed*dt/distance, 1) of the
// remaining vector and the result is stamped with now. Jitter is only applied
// when enough distance remains that it cannot carry the mover past destination.
func MoveToward(current, destination Location, speedKmh float64, dt time.Duration, now time.Time, jitter Jitter) Location {
	distance := DistanceKm(current, destination)
	if distance < ArrivalEpsilonKm {
		return destination
	}

	maxMovementKm := speedKmh * dt.Hours()
	ratio := math.Min(maxMovementKm/distance, 1)
	if ratio >= 1 {
		return destination.At(now)
	}

	lat := current.latitude + (destination.latitude-current.latitude)*ratio
	lon := current.longitude + (destination.longitude-current.longitude)*ratio

	remainingKm := distance * (1 - ratio)
	if jitter != nil && remainingKm > 2*MaxJitterDeg*kmPerDegree*math.Sqrt2 {
		dLat, dLon := jitter()
		lat += clampJitter(dLat)
		lon += clampJitter(dLon)
	}

	return locationOf(lat, lon, now)
}

// ProgressFraction returns traveled/total clamped to [0,1].
// A zero total means there was nothing to travel, which counts as complete.
func ProgressFraction(traveledKm, totalKm float64) float64 {
	if totalKm <= 0 {
		return 1
	}
	return math.Max(0, math.Min(traveledKm/totalKm, 1))
}

// StraightRoute samples steps+1 evenly spaced points from start to destination,
// stamped spacing apart starting at startAt. It is a preview, not a plan the
// simulation follows.
func StraightRoute(start, destination Location, steps int, startAt time.Time, spacing time.Duration) []Location {
	if steps < 1 {
		steps = 1
	}

	latStep := (destination.latitude - start.latitude) / float64(steps)
	lonStep := (destination.longitude - start.longitude) / float64(steps)

	route := make([]Location, 0, steps+1)
	for i := 0; i <= steps; i++ {
		route = append(route, locationOf(
			start.latitude+latStep*float64(i),
			start.longitude+lonStep*float64(i),
			startAt.Add(time.Duration(i)*spacing),
		))
	}
	return route
}

func clampJitter(d float64) float64 {
	return math.Max(-MaxJitterDeg, math.Min(MaxJitterDeg, d))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
