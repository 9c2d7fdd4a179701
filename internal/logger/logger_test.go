package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that scoped loggers travel through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zap.DebugLevel, &buf))
	ctx = WithName(ctx, "almanac")
	ctx = WithKV(ctx, "zenith", "civil")

	InfoKV(ctx, "event computed", "event", "rise")

	out := buf.String()
	require.Contains(t, out, "almanac")
	require.Contains(t, out, "event computed")
	require.Contains(t, out, "civil")
	require.Contains(t, out, "rise")

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestCronLogger ensures scheduler errors reach the context logger.
func TestCronLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zap.InfoLevel, &buf))
	l := CronLogger(ctx)

	l.Info("wake", "now", "later")
	require.Empty(t, buf.String())

	l.Error(errors.New("boom"), "job failed", "entry", 1)
	require.Contains(t, buf.String(), "job failed")
	require.Contains(t, buf.String(), "boom")
}
