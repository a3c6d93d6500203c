// Package errs provides standardized error types for the production application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types grouped by how callers react to them:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//     (the validation family, no state change)
//   - ObjectNotFoundError: a referenced entity is absent
//   - ConflictError: a uniqueness rule was violated
//   - BlockedError: an unresolved blocking anomaly refuses the action
//   - PreconditionFailedError: a stage advancement guard is not met
//   - InvalidStateError: the operation makes no sense for the entity's current state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels.
package errs
