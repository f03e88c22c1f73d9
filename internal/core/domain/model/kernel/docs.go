// Package kernel provides the shared value objects of the food delivery domain.
//
// The package includes:
//   - UUID: identity of orders and deliveries, exchanged as canonical strings
//   - Location: an immutable latitude/longitude fix with its capture time
//   - the geo engine: DistanceKm (haversine), MoveToward (interpolated movement
//     with bounded jitter), ProgressFraction and StraightRoute
//
// Value objects are immutable and safe for concurrent use. Zero values are
// invalid and fail Validate.
package kernel
