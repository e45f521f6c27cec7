// Package logging assembles the structured slog loggers used across
// beetbridge.
//
// It owns the console/JSON handler selection, centralizes level and output
// plumbing, and standardizes the attribute keys the parsing engine and the
// session layer tag their lines with. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
