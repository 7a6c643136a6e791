package ioreport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

func ReportSheetError(sheet string, err error) error {
	msg := "Cannot write report sheet <em>%s</em>"
	vars := []any{sheet}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportSheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write sheet %s: %w", fn.Name(), sheet, err),
	}
}

func ReportSaveError(path string, err error) error {
	msg := "Cannot save report to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save %s: %w", fn.Name(), path, err),
	}
}
