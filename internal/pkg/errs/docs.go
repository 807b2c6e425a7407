// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Validation errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError and ObjectNotFoundError. These are raised for malformed
//     order, line, shipment or invoice data and are propagated unchanged.
//   - Fatal processing errors: ConfigurationError (a required accounting setting such
//     as the round down account is missing) and StockShortageError (a pick-up batch
//     cannot be reserved). Both abort the whole processing call and are meant to be
//     shown to the user verbatim.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
