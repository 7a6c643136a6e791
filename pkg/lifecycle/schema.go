// Package lifecycle defines contracts of the estimate archive: schema
// management and archiving of computed estimates.
package lifecycle

import (
	"context"

	"github.com/skippy/farm/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	Migrate(ctx context.Context, cfg *config.Config) error
}
