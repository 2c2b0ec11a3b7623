package errors

// Package errors provides sentinel errors for conformance report loading.
// Classified errors returned by the conformance package wrap one of these so
// callers can branch with errors.Is.

import "errors"

var (
	// ErrReportsDirMissing indicates the configured report directory does not exist.
	ErrReportsDirMissing = errors.New("reports directory not found")

	// ErrNoReports indicates no file matched the report pattern.
	ErrNoReports = errors.New("no conformance reports found")

	// ErrReportRead indicates a discovered report could not be read.
	ErrReportRead = errors.New("report read failed")

	// ErrReportParse indicates a report is not parseable as YAML.
	ErrReportParse = errors.New("report parse failed")

	// ErrMissingField indicates a report lacks a required field.
	ErrMissingField = errors.New("report missing required field")
)
