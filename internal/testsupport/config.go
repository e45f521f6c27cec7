// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"beetbridge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ImportDir = filepath.Join(base, "import")
	cfg.Paths.SessionDir = filepath.Join(base, "session")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithDiffThreshold overrides the character alignment threshold.
func WithDiffThreshold(threshold int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Diff.CharThreshold = threshold
	}
}

// WithPluginTTL overrides the plugin cache TTL in seconds.
func WithPluginTTL(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Plugins.CacheTTLSeconds = seconds
	}
}
