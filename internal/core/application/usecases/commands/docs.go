// Package commands contains the business operations that change state in the
// ordering, kitchen and dispatch services.
//
// Every command follows the same pattern: a value built by its constructor
// and checked with Validate, and a handler that loads aggregates through the
// ports repositories, applies the domain transition and publishes the
// resulting event. Operations that may legitimately do nothing report an
// Outcome instead of an error.
package commands
