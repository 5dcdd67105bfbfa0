package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/logger"
)

func newTestHandler(t *testing.T, buf *bytes.Buffer, level slog.Leveler) *logger.PrettyHandler {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})
}

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "graph built", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "cache is stale", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "build failed", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "batch read", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			lg := slog.New(newTestHandler(t, buf, slog.LevelInfo))

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		build      func(slog.Handler) slog.Handler
		args       []any
		goldenName string
	}{
		{
			name: "handler attrs",
			build: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("workbook", "Q3.xlsx")})
			},
			args:       []any{"sheet", "Inputs", "cells", 120},
			goldenName: "handler_attrs",
		},
		{
			name: "nested groups",
			build: func(h slog.Handler) slog.Handler {
				return h.WithGroup("build").WithAttrs([]slog.Attr{slog.String("id", "b1")}).WithGroup("batch")
			},
			args:       []any{"index", 3},
			goldenName: "handler_group_nested",
		},
		{
			name:       "group value",
			build:      func(h slog.Handler) slog.Handler { return h },
			args:       []any{slog.Group("progress", slog.Int("done", 2), slog.Int("total", 5))},
			goldenName: "handler_group_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			lg := slog.New(tt.build(newTestHandler(t, buf, slog.LevelInfo)))

			lg.Info("reading batch", tt.args...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup_EmptyName(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := newTestHandler(t, buf, slog.LevelInfo)

	assert.Same(t, handler, handler.WithGroup(""))
	assert.Same(t, handler, handler.WithAttrs(nil))
}

func TestPrettyHandler_Enabled_FollowsLevelVar(t *testing.T) {
	buf := &bytes.Buffer{}
	level := &slog.LevelVar{}
	handler := newTestHandler(t, buf, level)

	assert.False(t, handler.Enabled(t.Context(), slog.LevelDebug))

	level.Set(slog.LevelDebug)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelDebug))

	slog.New(handler).Debug("batch 1/4")
	assert.Equal(t, "batch 1/4\n", buf.String())
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	handler := logger.NewPrettyHandler(brokenWriter{}, nil)

	var r slog.Record
	r.Level = slog.LevelInfo
	r.Message = "graph built"

	err := handler.Handle(t.Context(), r)
	require.Error(t, err)
}
