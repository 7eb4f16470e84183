// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure that reaches a client a
// consistent, serializable shape (HTTPError with optional field-level
// errors and action hints) while still playing nicely with Go's
// standard errors package.
package errs
