package ports

import "go.trai.ch/xlgraph/internal/core/domain"

// ConfigLoader defines the interface for loading the analysis configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration for a workbook directory, walking up
	// to the filesystem root, and falls back to defaults when none is found.
	Load(dir string) (*domain.Config, error)
}
