package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xlgraph/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing plain text into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("loaded graph from cache") }, goldenName: "info_basic"},
		{name: "info multiline", log: func(l *logger.Logger) { l.Info("Sheet1!B2\nSheet1!C2") }, goldenName: "info_multiline"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("Sheet1!B2: 1 reference could not be parsed (partial)") }, goldenName: "warn_basic"},
		{name: "debug hidden", log: func(l *logger.Logger) { l.Debug("batch 1/3") }, goldenName: "debug_hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_SetVerbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetVerbose(true)
	lg.Debug("batch 1/3")
	assert.Equal(t, "batch 1/3\n", buf.String())

	buf.Reset()
	lg.SetVerbose(false)
	lg.Debug("batch 2/3")
	assert.Empty(t, buf.String())
}

func TestLogger_SetVerbose_SurvivesFormatSwitch(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetVerbose(true)
	lg.SetJSON(true)
	lg.Debug("batch 1/3")

	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        os.ErrNotExist,
			goldenName: "error_simple",
		},
		{
			name:       "multiline standard error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: field depth not found"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("zip: not a valid zip file"), "failed to open workbook"),
				"failed to build dependency graph",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name:       "stdlib chain",
			err:        fmt.Errorf("trace: %w", errors.New("cell Sheet1!ZZZ0 is invalid")),
			goldenName: "error_chain_stdlib",
		},
		{
			name: "metadata on main and cause",
			err: func() error {
				inner := zerr.With(zerr.New("sheet not found"), "sheet", "Missing")
				outer := zerr.Wrap(inner, "trace failed")
				return zerr.With(outer, "cell", "Missing!A1")
			}(),
			goldenName: "error_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON_WithErrorChain(t *testing.T) {
	err := zerr.With(
		zerr.Wrap(errors.New("permission denied"), "failed to write cache entry"),
		"path", "/tmp/q3.graph.json",
	)

	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "failed to write cache entry")
	assert.Contains(t, out, "/tmp/q3.graph.json")
	assert.NotContains(t, out, "✗")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	pretty := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("json"))
	jsonOut := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))

	assert.Equal(t, "✗ Error: pretty\n", pretty)
	assert.Contains(t, jsonOut, `"error":"json"`)
	assert.Equal(t, "✗ Error: pretty again\n", buf.String())
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	require.NotPanics(t, func() {
		logger.New().SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Go(func() {
			lg.Info(fmt.Sprintf("info %d", i))
			lg.Warn("warn")
			lg.Debug("debug")
			lg.Error(errors.New("concurrent error"))
		})
	}
	wg.Go(func() { lg.SetJSON(true) })
	wg.Go(func() { lg.SetVerbose(true) })
	wg.Go(func() { lg.SetJSON(false) })
	wg.Wait()
}
