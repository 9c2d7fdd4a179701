// Package logger wraps zap to offer:
//   - a global sugared logger writing console lines to stderr, so command
//     output on stdout stays machine readable,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - an adapter that lets robfig/cron report through the same logger.
//
// Services accept a context and extract the logger from it, enabling scoped,
// structured logging throughout the codebase.
package logger
