// Package geocoding resolves restaurant and customer identifiers to waypoints
// for the dispatch service. Known places come from a static table; unknown
// ones are handled by a FallbackPolicy.
package geocoding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"
)

// FallbackPolicy decides what Locate does for an identifier it does not know.
type FallbackPolicy string

const (
	// FallbackRandom places unknown identifiers at a random point around the city center.
	FallbackRandom FallbackPolicy = "random"
	// FallbackStrict reports unknown identifiers as not found.
	FallbackStrict FallbackPolicy = "strict"
)

// ParseFallbackPolicy accepts "random" and "strict".
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch p := FallbackPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FallbackRandom, FallbackStrict:
		return p, nil
	case "":
		return FallbackRandom, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("geocoder fallback", fmt.Errorf("%q is not random or strict", s))
	}
}

// StaticGeocoder looks identifiers up in a fixed table.
type StaticGeocoder struct {
	places  map[string]kernel.Location
	center  kernel.Location
	spanDeg float64
	policy  FallbackPolicy
	now     func() time.Time
}

// NewStaticGeocoder builds a geocoder over places. center and spanDeg bound
// the random fallback.
func NewStaticGeocoder(
	places map[string]kernel.Location,
	center kernel.Location,
	spanDeg float64,
	policy FallbackPolicy,
) (*StaticGeocoder, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if spanDeg < 0 {
		return nil, errs.NewValueIsOutOfRangeError("spanDeg", spanDeg, 0, 90)
	}
	if _, err := ParseFallbackPolicy(string(policy)); err != nil {
		return nil, err
	}

	table := make(map[string]kernel.Location, len(places))
	for id, loc := range places {
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("place %s: %w", id, err)
		}
		table[id] = loc
	}

	return &StaticGeocoder{
		places:  table,
		center:  center,
		spanDeg: spanDeg,
		policy:  policy,
		now:     time.Now,
	}, nil
}

// NewRestaurantGeocoder serves the coordinates of the restaurant catalogue.
func NewRestaurantGeocoder(
	restaurants []*restaurant.Restaurant,
	center kernel.Location,
	spanDeg float64,
	policy FallbackPolicy,
) (*StaticGeocoder, error) {
	places := make(map[string]kernel.Location, len(restaurants))
	for _, r := range restaurants {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		places[r.ID()] = r.Location()
	}
	return NewStaticGeocoder(places, center, spanDeg, policy)
}

// NewCustomerGeocoder has no addresses and always picks a random point around
// center.
func NewCustomerGeocoder(center kernel.Location, spanDeg float64) (*StaticGeocoder, error) {
	return NewStaticGeocoder(nil, center, spanDeg, FallbackRandom)
}

// Locate returns the waypoint of entityID stamped with the current time.
func (g *StaticGeocoder) Locate(ctx context.Context, entityID string) (kernel.Location, error) {
	if err := ctx.Err(); err != nil {
		return kernel.Location{}, err
	}

	now := g.now()
	if loc, ok := g.places[entityID]; ok {
		return loc.At(now), nil
	}

	if g.policy == FallbackStrict {
		return kernel.Location{}, errs.NewObjectNotFoundError("entityID", entityID)
	}
	return kernel.NewRandomLocationAround(g.center, g.spanDeg, now)
}
