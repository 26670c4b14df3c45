// Package logger wraps zap to provide:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and a shared atomic level,
//   - convenience functions (Info, InfoKV, WarnKV, ...).
//
// Packages accept a context and extract the logger from it, so log lines carry
// the scope (package name, tag, target) that the caller attached.
package logger
