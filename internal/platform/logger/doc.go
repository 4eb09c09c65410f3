// Package logger provides structured JSON logging on top of log/slog, with
// helpers for carrying a request-scoped logger through a context.Context.
package logger
