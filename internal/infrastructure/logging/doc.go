// Package logging provides structured logging for the telemetry backend.
//
// It wraps log/slog with service defaults: every record carries the service
// name and version, output format and level come from configuration, and
// component loggers are derived with With().
package logging
