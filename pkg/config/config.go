// Package config provides configuration management for farm.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Growth: base_potential, hemisphere, crop_coefficient, forecast_days
//   - SDM: tree_ndvi, utilization, calibration_file
//   - Pedigree: max_depth
//   - Sync: growth_rate_tolerance
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Sync.DryRun (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use FARM_ prefix with underscores for nesting:
//
//	FARM_DATABASE_HOST=localhost
//	FARM_GROWTH_HEMISPHERE=south
//	FARM_PEDIGREE_MAX_DEPTH=8
//	FARM_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete farm configuration.
type Config struct {
	// Database contains PostgreSQL connection settings of the estimate
	// archive.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Growth contains settings of the pasture growth model.
	Growth GrowthConfig `mapstructure:"growth" yaml:"growth"`

	// SDM contains settings of the standing dry matter model.
	SDM SDMConfig `mapstructure:"sdm" yaml:"sdm"`

	// Pedigree contains settings of the pedigree analyzer.
	Pedigree PedigreeConfig `mapstructure:"pedigree" yaml:"pedigree"`

	// Sync contains settings of pushing estimates upstream.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of paddocks estimated concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of estimates written per INSERT statement.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// GrowthConfig contains settings of the pasture growth model.
type GrowthConfig struct {
	// BasePotential is the growth rate (kg DM/ha/day) of pasture with
	// no temperature, moisture, season or soil limitation.
	BasePotential float64 `mapstructure:"base_potential" yaml:"base_potential"`

	// Hemisphere determines how months map to seasons: "north" or "south".
	Hemisphere string `mapstructure:"hemisphere" yaml:"hemisphere"`

	// CropCoefficient scales reference evapotranspiration to pasture
	// water use. Typical values are 0.85-1.0.
	CropCoefficient float64 `mapstructure:"crop_coefficient" yaml:"crop_coefficient"`

	// ForecastDays is how many days past the last observation forecast
	// mode projects.
	ForecastDays int `mapstructure:"forecast_days" yaml:"forecast_days"`
}

// SDMConfig contains settings of the standing dry matter model.
type SDMConfig struct {
	// TreeNDVI is the NDVI of full tree canopy used to remove the tree
	// signal from a paddock composite.
	TreeNDVI float64 `mapstructure:"tree_ndvi" yaml:"tree_ndvi"`

	// Utilization is the share of standing dry matter available to
	// grazing animals.
	Utilization float64 `mapstructure:"utilization" yaml:"utilization"`

	// CalibrationFile is an optional path to seasonal NDVI calibration
	// curves. Relative paths are resolved against the config directory.
	// Empty value means built-in curves.
	CalibrationFile string `mapstructure:"calibration_file" yaml:"calibration_file"`
}

// PedigreeConfig contains settings of the pedigree analyzer.
type PedigreeConfig struct {
	// MaxDepth limits how many generations are traversed.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// SyncConfig contains settings of pushing estimates upstream.
type SyncConfig struct {
	// GrowthRateTolerance (kg DM/ha/day) below which a changed growth
	// rate is not pushed again.
	GrowthRateTolerance float64 `mapstructure:"growth_rate_tolerance" yaml:"growth_rate_tolerance"`

	// DryRun previews pushes without writing anything.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "farm",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Growth: GrowthConfig{
			BasePotential:   80,
			Hemisphere:      "north",
			CropCoefficient: 0.9,
			ForecastDays:    7,
		},
		SDM: SDMConfig{
			TreeNDVI:    0.8,
			Utilization: 0.75,
		},
		Pedigree: PedigreeConfig{
			MaxDepth: 6,
		},
		Sync: SyncConfig{
			GrowthRateTolerance: 1.0,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
