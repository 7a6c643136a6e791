// Package schema provides models of the PostgreSQL estimate archive. The
// archive keeps every computed growth and feed estimate together with the
// run that produced it, and is read by the upstream push job.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// ArchiveRun is one archiving of estimates.
type ArchiveRun struct {
	// ID is a random UUID v4 of the run.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"type:uuid;primaryKey"`

	// Kind is "growth" or "feed".
	Kind string `db:"kind" ddl:"VARCHAR(20) NOT NULL" gorm:"size:20;not null"`

	// DateFrom is the first day of estimates in the run.
	DateFrom time.Time `db:"date_from" ddl:"DATE" gorm:"type:date"`

	// DateTo is the last day of estimates in the run.
	DateTo time.Time `db:"date_to" ddl:"DATE" gorm:"type:date"`

	// Paddocks is the number of paddocks with estimates.
	Paddocks int `db:"paddocks" ddl:"INT" gorm:"not null;default:0"`

	// Rows is the number of rows written.
	Rows int `db:"rows" ddl:"INT" gorm:"not null;default:0"`

	// Skipped is the number of estimates within tolerance of the archive.
	Skipped int `db:"skipped" ddl:"INT" gorm:"not null;default:0"`

	// Version of farm that computed estimates.
	Version string `db:"version" ddl:"VARCHAR(50)" gorm:"size:50"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// GrowthRate is a daily pasture growth estimate of a paddock.
type GrowthRate struct {
	// ID is UUID v5 of "paddock_id|date", so a paddock has one row a day.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"type:uuid;primaryKey"`

	// RunID refers to the ArchiveRun that wrote the row last.
	RunID string `db:"run_id" ddl:"UUID NOT NULL" gorm:"type:uuid;not null;index"`

	PaddockID string `db:"paddock_id" ddl:"VARCHAR(255) NOT NULL" gorm:"size:255;not null;index:idx_growth_paddock_date"`

	PaddockName string `db:"paddock_name" ddl:"VARCHAR(255)" gorm:"size:255"`

	Date time.Time `db:"date" ddl:"DATE NOT NULL" gorm:"type:date;not null;index:idx_growth_paddock_date"`

	// KgHaDay is dry matter growth in kg/ha/day.
	KgHaDay float64 `db:"kg_ha_day" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`

	TempFactor     float64 `db:"temp_factor" ddl:"DOUBLE PRECISION"`
	MoistureFactor float64 `db:"moisture_factor" ddl:"DOUBLE PRECISION"`
	SeasonalFactor float64 `db:"seasonal_factor" ddl:"DOUBLE PRECISION"`
	SoilFactor     float64 `db:"soil_factor" ddl:"DOUBLE PRECISION"`

	Season string `db:"season" ddl:"VARCHAR(10)" gorm:"size:10"`

	// Forecast is true for projected days.
	Forecast bool `db:"forecast" ddl:"BOOLEAN NOT NULL DEFAULT FALSE" gorm:"not null;default:false"`

	// Pushed is set by the upstream push job.
	Pushed bool `db:"pushed" ddl:"BOOLEAN NOT NULL DEFAULT FALSE" gorm:"not null;default:false"`

	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}

// FeedReading is standing dry matter and feed on offer of a paddock on
// the date of an NDVI composite.
type FeedReading struct {
	// ID is UUID v5 of "paddock_id|date".
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"type:uuid;primaryKey"`

	RunID string `db:"run_id" ddl:"UUID NOT NULL" gorm:"type:uuid;not null;index"`

	PaddockID string `db:"paddock_id" ddl:"VARCHAR(255) NOT NULL" gorm:"size:255;not null;index:idx_feed_paddock_date"`

	PaddockName string `db:"paddock_name" ddl:"VARCHAR(255)" gorm:"size:255"`

	Date time.Time `db:"date" ddl:"DATE NOT NULL" gorm:"type:date;not null;index:idx_feed_paddock_date"`

	Season string `db:"season" ddl:"VARCHAR(10)" gorm:"size:10"`

	NDVI        float64 `db:"ndvi" ddl:"DOUBLE PRECISION"`
	PastureNDVI float64 `db:"pasture_ndvi" ddl:"DOUBLE PRECISION"`

	// SDMKgHa is standing dry matter in kg DM/ha.
	SDMKgHa float64 `db:"sdm_kg_ha" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`

	// FOOKgHa is feed on offer after utilization and grazing correction.
	FOOKgHa float64 `db:"foo_kg_ha" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`

	Correction float64 `db:"correction" ddl:"DOUBLE PRECISION"`

	// GrowthRate is SDM change per day since the previous composite.
	GrowthRate sql.NullFloat64 `db:"growth_rate" ddl:"DOUBLE PRECISION"`

	// Flags is a comma separated list of quality flags.
	Flags string `db:"flags" ddl:"TEXT" gorm:"type:text"`

	Pushed bool `db:"pushed" ddl:"BOOLEAN NOT NULL DEFAULT FALSE" gorm:"not null;default:false"`

	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE"`
}
