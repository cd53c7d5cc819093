// Package logging configures the process-wide slog logger.
//
// Two output formats are supported: a compact console format for interactive
// use and line-delimited JSON for log collection. Helpers mirror the slog
// attribute constructors so call sites do not import log/slog directly.
package logging
