// Package reflecterr defines the failure taxonomy shared by the reflection
// packages.
//
// Every failure is reported as an *Error whose Kind is one of the exported
// sentinel values, so callers can branch with errors.Is while still getting
// the fully rendered diagnostic (names, signatures, conflicting ids) from
// Error().
package reflecterr
