package logger

import (
	"context"

	"github.com/robfig/cron/v3"
)

// cronLogger routes robfig/cron messages through the context logger.
type cronLogger struct {
	ctx context.Context //nolint:containedctx // The logger lives in the context.
}

// CronLogger returns a cron.Logger backed by the logger stored in ctx.
// Routine scheduler chatter is demoted to debug level.
//
//nolint:ireturn // cron.WithLogger accepts the interface.
func CronLogger(ctx context.Context) cron.Logger {
	return &cronLogger{ctx: ctx}
}

// Info implements cron.Logger.
func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	DebugKV(l.ctx, msg, keysAndValues...)
}

// Error implements cron.Logger.
func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	ErrorKV(l.ctx, msg, append(keysAndValues, "error", err)...)
}
