// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - DriverDispatcher: reserves the first available driver and plans the
//     Delivery that carries an order from its restaurant to its customer
package services
