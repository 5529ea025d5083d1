// Package logging assembles structured slog loggers and formatting helpers used
// across m8org.
//
// It owns the configurable console/JSON handlers, tees every record into a JSON
// log file in the state directory, and exposes context-aware helpers so the
// organizer can tag log lines with run IDs, source files, and stages. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
