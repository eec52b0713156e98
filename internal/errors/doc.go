// Package errors provides the classified error type used across docsite.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (how bad), a retry strategy and structured context. Errors are built with
// a fluent builder:
//
//	err := errors.ValidationError("sidebar category has no items").
//		WithContext("path", "docSidebar[2]").
//		Build()
//
// The CLI and HTTP adapters turn classified errors into exit codes and JSON
// responses respectively.
package errors
