package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of estimates per INSERT.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptGrowthBasePotential sets unconstrained growth rate in kg DM/ha/day.
func OptGrowthBasePotential(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Growth Base Potential", f) {
			c.Growth.BasePotential = f
		}
	}
}

// OptGrowthHemisphere sets the hemisphere of the farm.
// Valid values: "north", "south".
func OptGrowthHemisphere(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Growth.Hemisphere", s) {
			c.Growth.Hemisphere = s
		}
	}
}

// OptGrowthCropCoefficient sets the pasture crop coefficient.
func OptGrowthCropCoefficient(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Growth Crop Coefficient", f) {
			c.Growth.CropCoefficient = f
		}
	}
}

// OptGrowthForecastDays sets the forecast horizon in days.
func OptGrowthForecastDays(i int) Option {
	return func(c *Config) {
		if isValidInt("Growth Forecast Days", i) {
			c.Growth.ForecastDays = i
		}
	}
}

// OptSDMTreeNDVI sets NDVI of the tree canopy endmember.
func OptSDMTreeNDVI(f float64) Option {
	return func(c *Config) {
		if isValidFraction("SDM Tree NDVI", f) {
			c.SDM.TreeNDVI = f
		}
	}
}

// OptSDMUtilization sets the grazeable share of standing dry matter.
func OptSDMUtilization(f float64) Option {
	return func(c *Config) {
		if isValidFraction("SDM Utilization", f) {
			c.SDM.Utilization = f
		}
	}
}

// OptSDMCalibrationFile sets a path to seasonal calibration curves.
func OptSDMCalibrationFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SDM Calibration File", s) {
			c.SDM.CalibrationFile = s
		}
	}
}

// OptPedigreeMaxDepth sets how many generations the analyzer traverses.
func OptPedigreeMaxDepth(i int) Option {
	return func(c *Config) {
		if isValidInt("Pedigree Max Depth", i) {
			c.Pedigree.MaxDepth = i
		}
	}
}

// OptSyncGrowthRateTolerance sets the smallest change of growth rate
// (kg DM/ha/day) that is pushed upstream.
func OptSyncGrowthRateTolerance(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Sync Growth Rate Tolerance", f) {
			c.Sync.GrowthRateTolerance = f
		}
	}
}

// OptSyncDryRun previews pushes without writing.
// Runtime-only field - not in ToOptions().
func OptSyncDryRun(b bool) Option {
	return func(c *Config) {
		c.Sync.DryRun = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
