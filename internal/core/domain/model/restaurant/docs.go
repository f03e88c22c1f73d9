// Package restaurant holds the static restaurant catalogue the kitchen serves.
package restaurant
