// Package config provides the configuration loader for xlgraph.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"go.trai.ch/xlgraph/internal/core/domain"
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, OSFS{})
}

// NewLoaderWithFS creates a new Loader reading through fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load discovers xlgraph.yaml starting at dir and walking up to the root.
// Without a file the defaults are returned. Relative cache and annotation
// paths are resolved against dir, the workbook directory.
func (l *Loader) Load(dir string) (*domain.Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToResolvePath.Error()), "dir", dir)
	}

	cfg := domain.DefaultConfig()

	configPath, found, err := l.findConfiguration(absDir)
	if err != nil {
		return nil, err
	}

	if found {
		l.Logger.Debug("using configuration " + configPath)

		file, err := l.readFile(configPath)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		if err := apply(&cfg, file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		cfg.Source = configPath
	}

	cfg.Cache.Location = domain.ResolveAgainst(absDir, cfg.Cache.Location)
	cfg.Annotations.Path = domain.ResolveAgainst(absDir, cfg.Annotations.Path)

	return &cfg, nil
}

func (l *Loader) findConfiguration(start string) (string, bool, error) {
	currentDir := start
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		info, err := l.FS.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) readFile(configPath string) (*File, error) {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return &file, nil
}

// apply overlays the values set in file onto cfg and validates them.
func apply(cfg *domain.Config, file *File) error {
	if file.Version != "" && file.Version != SupportedVersion {
		return invalid("version", file.Version)
	}

	if file.Mode != "" {
		mode, err := domain.ParseMode(file.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}

	steps := []func(*domain.Config, *File) error{
		applyTrace,
		applyBuild,
		applyCache,
		applyWatch,
	}
	for _, step := range steps {
		if err := step(cfg, file); err != nil {
			return err
		}
	}

	if file.Annotations != nil && file.Annotations.Path != "" {
		cfg.Annotations.Path = file.Annotations.Path
	}

	return nil
}

func applyTrace(cfg *domain.Config, file *File) error {
	t := file.Trace
	if t == nil {
		return nil
	}

	if t.MaxDepth != nil {
		if *t.MaxDepth < 1 {
			return invalid("trace.max_depth", *t.MaxDepth)
		}
		cfg.Trace.MaxDepth = *t.MaxDepth
	}
	if t.DefaultDepth != nil {
		if *t.DefaultDepth < 0 {
			return invalid("trace.default_depth", *t.DefaultDepth)
		}
		cfg.Trace.DefaultDepth = *t.DefaultDepth
	}
	if cfg.Trace.DefaultDepth > cfg.Trace.MaxDepth {
		return invalid("trace.default_depth", cfg.Trace.DefaultDepth)
	}
	if t.DefaultDirection != "" {
		direction, err := domain.ParseDirection(t.DefaultDirection)
		if err != nil {
			return err
		}
		cfg.Trace.DefaultDirection = direction
	}

	return nil
}

func applyBuild(cfg *domain.Config, file *File) error {
	b := file.Build
	if b == nil {
		return nil
	}

	if b.BatchSize != nil {
		if *b.BatchSize < 1 {
			return invalid("build.batch_size", *b.BatchSize)
		}
		cfg.Build.BatchSize = *b.BatchSize
	}
	if b.MaxRetries != nil {
		if *b.MaxRetries < 0 {
			return invalid("build.max_retries", *b.MaxRetries)
		}
		cfg.Build.MaxRetries = *b.MaxRetries
	}
	if b.RetryBackoff != "" {
		backoff, err := parseDuration("build.retry_backoff", b.RetryBackoff)
		if err != nil {
			return err
		}
		cfg.Build.RetryBackoff = backoff
	}
	if b.MaxRangeCells != nil {
		if *b.MaxRangeCells < 1 {
			return invalid("build.max_range_cells", *b.MaxRangeCells)
		}
		cfg.Build.MaxRangeCells = *b.MaxRangeCells
	}

	return nil
}

func applyCache(cfg *domain.Config, file *File) error {
	c := file.Cache
	if c == nil {
		return nil
	}

	if c.Enabled != nil {
		cfg.Cache.Enabled = *c.Enabled
	}
	if c.Backend != "" {
		switch c.Backend {
		case domain.BackendFile, domain.BackendBadger:
			cfg.Cache.Backend = c.Backend
		default:
			return domain.With(domain.ErrInvalidBackend, "backend", c.Backend)
		}
	}
	if c.Location != "" {
		cfg.Cache.Location = c.Location
	}

	return nil
}

func applyWatch(cfg *domain.Config, file *File) error {
	w := file.Watch
	if w == nil {
		return nil
	}

	if w.AutoRebuild != nil {
		cfg.Watch.AutoRebuild = *w.AutoRebuild
	}
	if w.Debounce != "" {
		debounce, err := parseDuration("watch.debounce", w.Debounce)
		if err != nil {
			return err
		}
		cfg.Watch.Debounce = debounce
	}

	return nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, invalid(field, raw)
	}
	return d, nil
}

func invalid(field string, value any) error {
	return zerr.With(domain.With(domain.ErrConfigInvalid, "field", field), "value", fmt.Sprint(value))
}
