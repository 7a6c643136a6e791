// Package iotesting provides shared helpers of integration tests.
package iotesting

import (
	"os"
	"testing"

	"github.com/skippy/farm/internal/ioconfig"
	"github.com/skippy/farm/pkg/config"
)

// TestDatabaseName is the archive database used by all integration
// tests, so they never touch a production archive.
const TestDatabaseName = "farm_test"

// GetTestConfig returns configuration for integration tests. It reads
// the user's config.yaml and FARM_* variables, then forces the
// database name to TestDatabaseName.
func GetTestConfig() *config.Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	cfg, err := ioconfig.Load(home)
	if err != nil {
		cfg = config.New()
	}
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns only the database part of
// GetTestConfig.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SetupTempHome creates a temporary home directory for a test and points
// HOME at it, so config, cache and logs never land in the real home.
func SetupTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}
