package iocalib

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

func CalibrationReadError(path string, err error) error {
	msg := "Cannot read calibration file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CalibrationReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse calibration %s: %w",
			fn.Name(), path, err),
	}
}

func CalibrationSeasonError(path, season, reason string) error {
	msg := "Calibration file <em>%s</em> has a bad curve for <em>%s</em>: %s"
	vars := []any{path, season, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CalibrationSeasonError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: season '%s' in %s: %s",
			fn.Name(), season, path, reason),
	}
}
