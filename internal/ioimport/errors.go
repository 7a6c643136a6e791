package ioimport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

// ImportDecodeError is returned when an export file is not valid JSON of
// the expected shape.
func ImportDecodeError(path string, format Format, err error) error {
	msg := "Cannot read <em>%s</em> as %s export"
	vars := []any{path, format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s as %s: %w",
			fn.Name(), path, format, err),
	}
}

// ImportKindError is returned for an unknown export format.
func ImportKindError(format string) error {
	msg := "Unknown import format <em>%s</em>, use one of: %s"
	vars := []any{format, formatNames()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportKindError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format '%s'", fn.Name(), format),
	}
}

// ImportEmptyError is returned when an export holds no usable records.
func ImportEmptyError(path string) error {
	msg := "No records found in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no records in %s", fn.Name(), path),
	}
}
