package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/xlgraph/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultCachePath",
			got:      domain.DefaultCachePath(),
			expected: filepath.Join(".xlgraph", "cache"),
		},
		{
			name:     "DefaultAnnotationsPath",
			got:      domain.DefaultAnnotationsPath(),
			expected: filepath.Join(".xlgraph", "annotations.toml"),
		},
		{
			name:     "ResolveAgainst relative",
			got:      domain.ResolveAgainst(filepath.FromSlash("/data/books"), filepath.FromSlash(".xlgraph/cache")),
			expected: filepath.FromSlash("/data/books/.xlgraph/cache"),
		},
		{
			name:     "ResolveAgainst absolute",
			got:      domain.ResolveAgainst(filepath.FromSlash("/data/books"), filepath.FromSlash("/var/cache/xlgraph")),
			expected: filepath.FromSlash("/var/cache/xlgraph"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.got)
			}
		})
	}
}
