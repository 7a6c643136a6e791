package records

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

// InvalidInputError is returned when an estimator receives input that is
// outside of its physical or logical domain.
func InvalidInputError(msg string, vars ...any) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  "Invalid input: " + msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid input: %s",
			fn.Name(), fmt.Sprintf(msg, vars...)),
	}
}

// DataGapError reports inputs that have no usable data. It is not fatal:
// callers decide whether to skip or fill the gap.
func DataGapError(subject string, missing []string) error {
	msg := "No usable data for <em>%s</em> (%d missing)"
	vars := []any{subject, len(missing)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataGapError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: data gap for %s: %v",
			fn.Name(), subject, missing),
	}
}

// IsInvalidInput reports whether err carries the InvalidInputError code.
func IsInvalidInput(err error) bool {
	return hasCode(err, errcode.InvalidInputError)
}

// IsDataGap reports whether err carries the DataGapError code.
func IsDataGap(err error) bool {
	return hasCode(err, errcode.DataGapError)
}

func hasCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}
