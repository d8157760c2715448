// Package errs provides the error types shared by every layer of the service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details (parameter name, path, status code)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// The sentinels line up with the three failure classes the handlers care about:
//   - ErrObjectNotFound: an expected record is missing, nothing was mutated
//   - ErrRemoteCallFailed: a call to the document store failed, partial writes may remain
//   - ErrValueIsRequired / ErrValueIsInvalid / ErrValueIsOutOfRange: input rejected
//     before any remote call
//
// ErrPreconditionFailed reports a conditional write that lost against a concurrent writer.
package errs
