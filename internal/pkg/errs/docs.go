// Package errs provides standardized error types for the food delivery services.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) returned by Unwrap,
//     so callers can classify failures with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//
// The types cover missing values, invalid values, out-of-range values,
// failed lookups and stale versions.
package errs
