// Package driver models the dispatch fleet: drivers, their vehicles and the
// availability flag the assignment policy reserves atomically.
package driver
