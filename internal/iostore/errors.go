package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
)

// StoreOpenError is returned when the record store cannot be opened.
func StoreOpenError(path string, err error) error {
	msg := "Cannot open record store <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// StoreNotOpenError is returned when the store is used after Close.
func StoreNotOpenError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotOpenError,
		Msg:  "Record store is not open",
		Err:  fmt.Errorf("from %s: record store is not open", fn.Name()),
	}
}

// StoreReadError is returned when records of a kind cannot be loaded.
func StoreReadError(kind Kind, err error) error {
	msg := "Cannot read <em>%s</em> records from the store"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), kind, err),
	}
}

// StoreWriteError is returned when records of a kind cannot be saved.
func StoreWriteError(kind Kind, err error) error {
	msg := "Cannot save <em>%s</em> records to the store"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), kind, err),
	}
}
