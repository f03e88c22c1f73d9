package kernel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// LatitudeMin is the southern bound of a valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northern bound of a valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the western bound of a valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the eastern bound of a valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewRandomLocationAround constructors")

// Location is an immutable geographic fix: latitude and longitude in degrees
// plus the moment the fix was captured.
//
// Every movement produces a new Location; there are no setters. The zero value
// is invalid and fails Validate.
//
//	shibuya, err := kernel.NewLocation(35.6586, 139.7454, time.Now())
type Location struct { //nolint:recvcheck //using for validation
	latitude   float64
	longitude  float64
	capturedAt time.Time
	guard      guard.ConstructorGuard
}

// NewLocation validates the coordinates and returns a Location stamped with capturedAt.
func NewLocation(latitude, longitude float64, capturedAt time.Time) (Location, error) {
	loc := Location{
		capturedAt: capturedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for compile-time constants such as seed data.
// It panics on invalid coordinates.
func MustNewLocation(latitude, longitude float64, capturedAt time.Time) Location {
	loc, err := NewLocation(latitude, longitude, capturedAt)
	if err != nil {
		panic(err)
	}
	return loc
}

// NewRandomLocationAround returns a fix uniformly distributed in a square of
// side spanDeg centred on center.
func NewRandomLocationAround(center Location, spanDeg float64, capturedAt time.Time) (Location, error) {
	if err := center.Validate(); err != nil {
		return Location{}, err
	}
	if spanDeg < 0 {
		return Location{}, errs.NewValueIsOutOfRangeError("span", spanDeg, 0, LatitudeMax)
	}

	lat := center.latitude + (rand.Float64()-0.5)*spanDeg  //nolint:gosec // simulation only
	lon := center.longitude + (rand.Float64()-0.5)*spanDeg //nolint:gosec // simulation only
	return locationOf(lat, lon, capturedAt), nil
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// CapturedAt returns the moment the fix was taken.
func (l Location) CapturedAt() time.Time {
	return l.capturedAt
}

// At returns the same point re-stamped with t.
func (l Location) At(t time.Time) Location {
	return locationOf(l.latitude, l.longitude, t)
}

// IsEqual compares coordinates only; capture time is ignored.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// String formats the coordinates with six decimals.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.latitude, l.longitude)
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}

// locationOf builds a Location from coordinates derived from valid ones,
// clamping the tiny overshoot interpolation or jitter can introduce.
func locationOf(latitude, longitude float64, capturedAt time.Time) Location {
	return Location{
		latitude:   math.Max(LatitudeMin, math.Min(LatitudeMax, latitude)),
		longitude:  math.Max(LongitudeMin, math.Min(LongitudeMax, longitude)),
		capturedAt: capturedAt,
		guard:      guard.NewConstructorGuard(),
	}
}
