package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

// NotConnectedError is returned when the schema is changed before the
// operator connects.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

func GORMConnectionError(err error) error {
	msg := `Cannot open the estimate archive with GORM

<em>How to fix:</em>
  1. Ensure the database is reachable
  2. Check the database section of config.yaml`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to open GORM: %w", fn.Name(), err),
	}
}

func CreateSchemaError(err error) error {
	msg := `Cannot create archive tables

<em>How to fix:</em>
  1. Check the database user has CREATE permission
  2. Check PostgreSQL logs for details`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to create schema: %w", fn.Name(), err),
	}
}

func MigrateSchemaError(err error) error {
	msg := `Cannot migrate archive tables

<em>How to fix:</em>
  1. Back up the archive
  2. Run 'farm archive create --force' to rebuild it`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to migrate schema: %w", fn.Name(), err),
	}
}

func CollationError(table, column string, err error) error {
	msg := "Cannot set collation on <em>%s.%s</em>"
	vars := []any{table, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to set collation on %s.%s: %w",
			fn.Name(), table, column, err),
	}
}
