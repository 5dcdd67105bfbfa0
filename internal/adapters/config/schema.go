package config

// File represents the structure of the xlgraph.yaml configuration file.
// Pointer fields distinguish "unset" from zero so defaults survive partial files.
type File struct {
	Version     string          `yaml:"version"`
	Mode        string          `yaml:"mode"`
	Trace       *TraceDTO       `yaml:"trace"`
	Build       *BuildDTO       `yaml:"build"`
	Cache       *CacheDTO       `yaml:"cache"`
	Annotations *AnnotationsDTO `yaml:"annotations"`
	Watch       *WatchDTO       `yaml:"watch"`
}

// TraceDTO configures trace defaults.
type TraceDTO struct {
	DefaultDepth     *int   `yaml:"default_depth"`
	MaxDepth         *int   `yaml:"max_depth"`
	DefaultDirection string `yaml:"default_direction"`
}

// BuildDTO configures batched workbook reads.
type BuildDTO struct {
	BatchSize     *int   `yaml:"batch_size"`
	MaxRetries    *int   `yaml:"max_retries"`
	RetryBackoff  string `yaml:"retry_backoff"`
	MaxRangeCells *int   `yaml:"max_range_cells"`
}

// CacheDTO configures graph persistence.
type CacheDTO struct {
	Enabled  *bool  `yaml:"enabled"`
	Backend  string `yaml:"backend"`
	Location string `yaml:"location"`
}

// AnnotationsDTO locates the annotation store.
type AnnotationsDTO struct {
	Path string `yaml:"path"`
}

// WatchDTO configures the watch loop.
type WatchDTO struct {
	AutoRebuild *bool  `yaml:"auto_rebuild"`
	Debounce    string `yaml:"debounce"`
}
