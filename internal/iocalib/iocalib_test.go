package iocalib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/iocalib"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
	"github.com/skippy/farm/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	res, err := iocalib.Load("")
	require.NoError(t, err)
	assert.Equal(t, sdm.DefaultCalibration(), res)
}

func TestTemplateMatchesDefault(t *testing.T) {
	res, err := iocalib.Parse("template", []byte(templates.CalibrationYAML))
	require.NoError(t, err)
	assert.Equal(t, sdm.DefaultCalibration(), res)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	err := os.WriteFile(path, []byte(`curves:
  Autumn:
    scale: 500
    coef: 3
    offset: 0
    min_ndvi: 0.2
    max_sdm: 2000
`), 0644)
	require.NoError(t, err)

	res, err := iocalib.Load(path)
	require.NoError(t, err)
	assert.Len(res, 4)
	fall := res.Curve(records.Fall)
	assert.Equal("fall", fall.Name)
	assert.Equal(500.0, fall.Scale)
	assert.Equal(0.0, fall.SDM(0.1))
	assert.Equal(sdm.DefaultCalibration()[records.Spring], res.Curve(records.Spring))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		code gn.ErrorCode
	}{
		{"yaml", "curves: [", errcode.CalibrationReadError},
		{"season", "curves:\n  monsoon:\n    scale: 1\n    coef: 1\n    max_sdm: 1\n",
			errcode.CalibrationSeasonError},
		{"curve", "curves:\n  spring:\n    scale: 0\n    coef: 1\n    max_sdm: 1\n",
			errcode.CalibrationSeasonError},
	}
	for _, v := range tests {
		_, err := iocalib.Parse("test.yaml", []byte(v.data))
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}

	_, err := iocalib.Load(filepath.Join(t.TempDir(), "none.yaml"))
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}
