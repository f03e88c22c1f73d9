// Package delivery provides the Delivery aggregate of the dispatch service.
//
// A Delivery moves through ASSIGNED, EN_ROUTE_TO_RESTAURANT, AT_RESTAURANT,
// PICKED_UP, EN_ROUTE_TO_CUSTOMER and DELIVERED. Waypoints and leg distances
// are captured once at assignment; the current location is replaced on every
// simulation tick and the progress percentage is derived from it on read.
package delivery
