package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skippy/farm/pkg/records"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "farm", cmd.Use)

	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	for _, v := range []string{
		"import", "growth", "sdm", "pedigree", "archive", "report",
	} {
		assert.Contains(t, names, v)
	}
}

func TestVersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		require.NoError(t, cmd.Execute(), flag)
		assert.Contains(t, buf.String(), "v1.2.3", flag)
		assert.Contains(t, buf.String(), "abc123", flag)
	}
}

func TestHelpText(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	help := buf.String()
	assert.Contains(t, help, "pasture growth")
	assert.Contains(t, help, "FARM_")
	assert.Contains(t, help, "farm import")
}

func find(t *testing.T, path ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := getRootCmd().Find(path)
	require.NoError(t, err)
	return cmd
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		path  []string
		flags []string
	}{
		{[]string{"import"}, []string{"format"}},
		{[]string{"growth"}, []string{
			"from", "to", "paddock", "forecast", "hemisphere", "json",
			"archive", "dry-run",
		}},
		{[]string{"sdm"}, []string{"date", "paddock", "json", "archive", "dry-run"}},
		{[]string{"pedigree", "ancestors"}, []string{"depth"}},
		{[]string{"pedigree", "offspring"}, []string{"depth"}},
		{[]string{"pedigree", "inbreeding"}, []string{"depth"}},
		{[]string{"pedigree", "check"}, nil},
		{[]string{"pedigree", "tree"}, nil},
		{[]string{"archive", "create"}, []string{"force"}},
		{[]string{"archive", "migrate"}, nil},
		{[]string{"archive", "push"}, []string{"from", "to", "dry-run"}},
		{[]string{"archive", "status"}, nil},
		{[]string{"report"}, []string{"from", "to", "paddock", "output"}},
	}
	for _, v := range tests {
		cmd := find(t, v.path...)
		name := v.path[len(v.path)-1]
		assert.Equal(t, name, cmd.Name())
		assert.NotEmpty(t, cmd.Short, name)
		assert.NotNil(t, cmd.RunE, name)
		for _, f := range v.flags {
			assert.NotNil(t, cmd.Flags().Lookup(f), "%s --%s", name, f)
		}
	}
}

func TestFlagShorthands(t *testing.T) {
	force := find(t, "archive", "create").Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)
	assert.Equal(t, "false", force.DefValue)

	out := find(t, "report").Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
	assert.Equal(t, "farm-report.xlsx", out.DefValue)
}

func TestArgs(t *testing.T) {
	assert.Error(t, find(t, "import").Args(nil, nil))
	assert.Error(t, find(t, "pedigree", "inbreeding").Args(nil, []string{"a"}))
	assert.NoError(t, find(t, "pedigree", "inbreeding").Args(nil, []string{"a", "b"}))
	assert.Error(t, find(t, "pedigree", "check").Args(nil, []string{"a"}))
	assert.Error(t, find(t, "pedigree", "offspring").Args(nil, nil))
	assert.NoError(t, find(t, "pedigree", "offspring").Args(nil, []string{"a"}))
}

func TestDateRange(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)

	var r rangeFlags
	rng, err := r.dateRange(now)
	require.NoError(t, err)
	assert.Equal(30, rng.Days())
	assert.Equal("2025-04-11..2025-05-10", rng.String())

	r = rangeFlags{from: "2025-04-01", to: "2025-04-10"}
	rng, err = r.dateRange(now)
	require.NoError(t, err)
	assert.Equal(10, rng.Days())

	r = rangeFlags{to: "2025-03-01"}
	rng, err = r.dateRange(now)
	require.NoError(t, err)
	assert.Equal("2025-01-31..2025-03-01", rng.String())

	r = rangeFlags{from: "2025-04-10", to: "2025-04-01"}
	_, err = r.dateRange(now)
	assert.True(records.IsInvalidInput(err))

	r = rangeFlags{from: "April"}
	_, err = r.dateRange(now)
	assert.Error(err)

	day, err := parseDay("", now)
	require.NoError(t, err)
	assert.Equal(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), day)
}

func TestLicenseHeader(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	files = append(files, filepath.Join("..", "main.go"))
	for _, v := range files {
		if strings.HasSuffix(v, "_test.go") {
			continue
		}
		data, err := os.ReadFile(v)
		require.NoError(t, err)
		assert.True(t,
			strings.HasPrefix(string(data), "/*\nCopyright © 2025 skippy\n"), v)
	}
}
