package domain

import "time"

// Cache backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Config is the resolved analysis configuration.
type Config struct {
	// Source is the file the configuration was loaded from, empty for defaults.
	Source      string
	Mode        Mode
	Trace       TraceConfig
	Build       BuildConfig
	Cache       CacheConfig
	Annotations AnnotationsConfig
	Watch       WatchConfig
}

// TraceConfig holds trace request defaults and limits.
type TraceConfig struct {
	DefaultDepth     int
	MaxDepth         int
	DefaultDirection Direction
}

// BuildConfig controls batched workbook reads.
type BuildConfig struct {
	BatchSize     int
	MaxRetries    int
	RetryBackoff  time.Duration
	MaxRangeCells int
}

// CacheConfig controls graph persistence.
type CacheConfig struct {
	Enabled  bool
	Backend  string
	Location string
}

// AnnotationsConfig locates the annotation store.
type AnnotationsConfig struct {
	Path string
}

// WatchConfig controls the watch loop.
type WatchConfig struct {
	AutoRebuild bool
	Debounce    time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Mode: ModeFullGraph,
		Trace: TraceConfig{
			DefaultDepth:     3,
			MaxDepth:         10,
			DefaultDirection: DirectionBoth,
		},
		Build: BuildConfig{
			BatchSize:     1000,
			MaxRetries:    3,
			RetryBackoff:  200 * time.Millisecond,
			MaxRangeCells: 1_000_000,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Backend:  BackendFile,
			Location: DefaultCachePath(),
		},
		Annotations: AnnotationsConfig{
			Path: DefaultAnnotationsPath(),
		},
		Watch: WatchConfig{
			AutoRebuild: true,
			Debounce:    500 * time.Millisecond,
		},
	}
}

// ClampDepth bounds a requested depth by the configured maximum.
// A negative request selects the default depth.
func (c TraceConfig) ClampDepth(requested int) (depth int, clamped bool) {
	if requested < 0 {
		return c.DefaultDepth, false
	}
	if c.MaxDepth > 0 && requested > c.MaxDepth {
		return c.MaxDepth, true
	}
	return requested, false
}
