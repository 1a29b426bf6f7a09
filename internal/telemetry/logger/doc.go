// Package logger provides structured logging for authgate.
//
// It wraps log/slog to provide structured JSON logging with automatic
// redaction of sensitive values (agtk_/agth_ prefixed strings and
// password-like keys), context-aware request ID propagation, and
// runtime log level adjustment.
package logger
