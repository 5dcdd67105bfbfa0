package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-workbook-directory state directory.
	StateDirName = ".xlgraph"

	// CacheDirName is the name of the graph cache directory.
	CacheDirName = "cache"

	// BadgerDirName is the name of the embedded key-value cache directory.
	BadgerDirName = "badger"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "xlgraph.yaml"

	// AnnotationsFileName is the name of the annotation store.
	AnnotationsFileName = "annotations.toml"

	// GraphFileSuffix is appended to cache entry file names.
	GraphFileSuffix = ".graph.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default cache location, relative to the workbook directory.
// It joins .xlgraph and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}

// DefaultAnnotationsPath returns the default annotation store location.
func DefaultAnnotationsPath() string {
	return filepath.Join(StateDirName, AnnotationsFileName)
}

// ResolveAgainst returns p unchanged when absolute, otherwise joined onto base.
func ResolveAgainst(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
