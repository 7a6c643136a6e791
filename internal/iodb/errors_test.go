package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := ConnectionError("localhost", 5432, "farm", "postgres", cause)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 5)
	assert.ErrorIs(t, gnErr.Err, cause)
	assert.Contains(t, gnErr.Err.Error(), "localhost:5432/farm")
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"check", TableCheckError(cause), errcode.DBTableCheckError},
		{"exists", TableExistsCheckError("t", cause),
			errcode.DBTableExistsCheckError},
		{"query", QueryTablesError(cause), errcode.DBQueryTablesError},
		{"scan", ScanTableError(cause), errcode.DBScanTableError},
		{"drop", DropTableError("t", cause), errcode.DBDropTableError},
	}
	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "iodb", v.msg)
	}
}
