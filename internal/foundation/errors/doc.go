// Package errors provides the classified error primitives used across confdocs.
//
// Every failure that reaches the CLI is either a ClassifiedError or wraps one,
// so the command layer can pick an exit code and a short user-facing message
// without string matching.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, filesystem, parse, schema, render, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and console presentation
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryParse, "report is not valid YAML").
//		WithContext("report", path).
//		Build()
package errors
