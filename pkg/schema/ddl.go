package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// ArchiveRun DDL methods
func (r ArchiveRun) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r ArchiveRun) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_archive_runs_kind ON archive_runs(kind, created_at);",
	}
}

func (r ArchiveRun) TableName() string {
	return "archive_runs"
}

// GrowthRate DDL methods
func (g GrowthRate) TableDDL() string {
	return generateDDL(g, g.TableName())
}

func (g GrowthRate) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_growth_paddock_date ON growth_rates(paddock_id, date);",
		"CREATE INDEX idx_growth_rates_run_id ON growth_rates(run_id);",
	}
}

func (g GrowthRate) TableName() string {
	return "growth_rates"
}

// FeedReading DDL methods
func (f FeedReading) TableDDL() string {
	return generateDDL(f, f.TableName())
}

func (f FeedReading) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_feed_paddock_date ON feed_readings(paddock_id, date);",
		"CREATE INDEX idx_feed_readings_run_id ON feed_readings(run_id);",
	}
}

func (f FeedReading) TableName() string {
	return "feed_readings"
}
