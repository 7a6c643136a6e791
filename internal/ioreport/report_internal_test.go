package ioreport

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetWithoutHeader(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	err = r.sheet("Empty", nil, nil)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReportSheetError, gnErr.Code)
	assert.Empty(t, r.Sheets())
}
