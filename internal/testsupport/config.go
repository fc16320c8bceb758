// Package testsupport provides helpers for tests that need a fully
// populated configuration rooted in a temporary directory.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/config"
)

// NewConfig returns a valid configuration whose directories all live under
// a test-scoped temporary directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	defaults := config.Default()
	cfg := &defaults
	cfg.Paths.MEIDir = filepath.Join(base, "mei")
	cfg.Paths.HumdrumDir = filepath.Join(base, "humdrum")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return cfg
}

// WriteConfigFile serializes the configuration to a TOML file and returns
// its path, for tests that exercise config loading end to end.
func WriteConfigFile(t *testing.T, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
