// Package order provides the Order aggregate shared by the ordering service
// (authoritative copy) and the kitchen (projection).
//
// The package includes:
//   - Order: identity, customer and restaurant references, items, total and lifecycle
//   - Item: an order line with quantity and unit price held as decimals
//   - Status: CREATED, ACCEPTED, PREPARING, READY, PICKED_UP, DELIVERED
//
// Key business rules:
//   - An order needs at least one item; quantities are positive, prices non-negative
//   - The total is the sum of subtotals and is never recomputed after creation
//   - Kitchen transitions are guarded: CREATED→ACCEPTED→PREPARING→READY
//   - Status reports from other services are applied unconditionally
package order
