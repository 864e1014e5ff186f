// Package logging assembles the structured slog loggers used across
// cosmic-screenshot.
//
// It owns the console and JSON handlers, level and output plumbing, and a
// no-op logger for tests and wiring code that cannot fail. Log output goes to
// stderr so stdout stays reserved for command results such as the saved
// screenshot path.
package logging
