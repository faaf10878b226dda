// Package logging provides structured logging utilities for poddiag.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record, and
// environment-based level configuration via LOG_LEVEL. Debug level adds
// source location tracking.
//
// Typical usage:
//
//	logging.SetDefaultStructuredLoggerWithLevel("poddiag", version, "info")
//	slog.Info("collection started", "users", 2)
package logging
