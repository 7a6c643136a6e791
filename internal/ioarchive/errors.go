package ioarchive

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Cannot archive estimates without database connection",
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

func ArchiveRunError(kind string, err error) error {
	msg := "Cannot register <em>%s</em> archive run"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveRunError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot insert %s run: %w", fn.Name(), kind, err),
	}
}

func ArchiveInsertError(table string, err error) error {
	msg := `Cannot write estimates to <em>%s</em>

<em>How to fix:</em>
  1. Run 'farm archive migrate' to update the schema
  2. Check PostgreSQL logs for details`
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot insert into %s: %w", fn.Name(), table, err),
	}
}

func ArchiveQueryError(table string, err error) error {
	msg := "Cannot read archived estimates from <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot query %s: %w", fn.Name(), table, err),
	}
}
