package domain

import (
	"context"
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConnectionLost is returned when the workbook source becomes unreachable mid-operation.
	ErrConnectionLost = zerr.New("workbook connection lost")

	// ErrNodeNotFound is returned when a trace root is absent from a built graph.
	ErrNodeNotFound = zerr.New("cell not found in dependency graph")

	// ErrUnsupportedDirection is returned when dependents are requested in on-demand mode.
	ErrUnsupportedDirection = zerr.New("direction is not supported in on-demand mode")

	// ErrBatchReadFailure is recorded when a row batch cannot be read after all retries.
	ErrBatchReadFailure = zerr.New("failed to read row batch")

	// ErrMalformedReference is logged when a formula token cannot be resolved to cells.
	ErrMalformedReference = zerr.New("malformed cell reference")

	// ErrWorkbookBusy is returned when another build or trace holds the workbook.
	ErrWorkbookBusy = zerr.New("workbook is busy with another request")

	// ErrGraphSealed is returned when inserting into a sealed graph.
	ErrGraphSealed = zerr.New("dependency graph is sealed")

	// ErrGraphNotSealed is returned when persisting a graph without a dependents index.
	ErrGraphNotSealed = zerr.New("dependency graph is not sealed")

	// ErrDuplicateNode is returned when a cell is inserted twice.
	ErrDuplicateNode = zerr.New("duplicate formula node")

	// ErrInvalidCellReference is returned for text that is not a valid cell address.
	ErrInvalidCellReference = zerr.New("invalid cell reference")

	// ErrInvalidCellValue is returned when a persisted value has an unknown kind.
	ErrInvalidCellValue = zerr.New("invalid cell value")

	// ErrInvalidDirection is returned for an unknown trace direction.
	ErrInvalidDirection = zerr.New("invalid direction, expected precedents, dependents or both")

	// ErrInvalidMode is returned for an unknown analysis mode.
	ErrInvalidMode = zerr.New("invalid mode, expected full_graph or on_demand")

	// ErrInvalidDepth is returned for a negative trace depth.
	ErrInvalidDepth = zerr.New("depth must not be negative")

	// ErrInvalidBackend is returned for an unknown cache backend.
	ErrInvalidBackend = zerr.New("invalid cache backend, expected file or badger")

	// ErrWorkbookOpenFailed is returned when a workbook cannot be opened.
	ErrWorkbookOpenFailed = zerr.New("failed to open workbook")

	// ErrSheetReadFailed is returned when a sheet cannot be read.
	ErrSheetReadFailed = zerr.New("failed to read sheet")

	// ErrCacheCorrupt is returned when a persisted graph fails validation.
	ErrCacheCorrupt = zerr.New("cached graph is corrupt")

	// ErrCacheDisabled is returned by cache management commands when caching is off.
	ErrCacheDisabled = zerr.New("graph cache is disabled")

	// ErrStoreCreateFailed is returned when the cache store cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create graph cache store")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read graph cache entry")

	// ErrStoreUnmarshalFailed is returned when a cache entry cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal graph cache entry")

	// ErrStoreMarshalFailed is returned when a cache entry cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal graph cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write graph cache entry")

	// ErrStoreDeleteFailed is returned when a cache entry cannot be removed.
	ErrStoreDeleteFailed = zerr.New("failed to delete graph cache entry")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration value")

	// ErrAnnotationsReadFailed is returned when the annotation file cannot be read.
	ErrAnnotationsReadFailed = zerr.New("failed to read annotations")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrFailedToResolvePath is returned when a workbook path cannot be made absolute.
	ErrFailedToResolvePath = zerr.New("failed to resolve workbook path")

	// ErrWatcherStartFailed is returned when file watching cannot start.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)

// With attaches metadata to a sentinel error while keeping it matchable with errors.Is.
func With(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// IsCancellation reports whether err stems from a cancelled or expired context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
