// Package ioconfig reads config.yaml and FARM_* environment variables
// with viper and turns them into a config.Config.
package ioconfig

import (
	"os"
	"strings"

	"github.com/skippy/farm/internal/iofs"
	"github.com/skippy/farm/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix of environment variables that override config.yaml.
const EnvPrefix = "FARM"

// Load reads configuration of homeDir. A missing config.yaml is not an
// error: defaults and environment variables are used instead. The
// returned config has HomeDir set.
func Load(homeDir string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)
	initEnvVars(v)

	if _, err = os.Stat(cfgPath); err == nil {
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var fromFile config.Config
	if err = v.Unmarshal(&fromFile); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	res.Update(fromFile.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(homeDir)})
	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", "FARM_DATABASE_HOST")
	_ = v.BindEnv("database.port", "FARM_DATABASE_PORT")
	_ = v.BindEnv("database.user", "FARM_DATABASE_USER")
	_ = v.BindEnv("database.password", "FARM_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "FARM_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "FARM_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.batch_size", "FARM_DATABASE_BATCH_SIZE")

	// Models
	_ = v.BindEnv("growth.base_potential", "FARM_GROWTH_BASE_POTENTIAL")
	_ = v.BindEnv("growth.hemisphere", "FARM_GROWTH_HEMISPHERE")
	_ = v.BindEnv("growth.crop_coefficient", "FARM_GROWTH_CROP_COEFFICIENT")
	_ = v.BindEnv("growth.forecast_days", "FARM_GROWTH_FORECAST_DAYS")
	_ = v.BindEnv("sdm.tree_ndvi", "FARM_SDM_TREE_NDVI")
	_ = v.BindEnv("sdm.utilization", "FARM_SDM_UTILIZATION")
	_ = v.BindEnv("sdm.calibration_file", "FARM_SDM_CALIBRATION_FILE")
	_ = v.BindEnv("pedigree.max_depth", "FARM_PEDIGREE_MAX_DEPTH")
	_ = v.BindEnv("sync.growth_rate_tolerance", "FARM_SYNC_GROWTH_RATE_TOLERANCE")

	// Log configuration
	_ = v.BindEnv("log.level", "FARM_LOG_LEVEL")
	_ = v.BindEnv("log.format", "FARM_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "FARM_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "FARM_JOBS_NUMBER")

	v.AutomaticEnv()
}
