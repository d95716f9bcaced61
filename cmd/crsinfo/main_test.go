package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crs "github.com/tingold/orb-crs"
	"github.com/tingold/orb-crs/fgb"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(crs.WellKnown())+1)
	assert.Contains(t, lines[0], "IDENTIFIER")
	assert.NotContains(t, out, "|")
	assert.Contains(t, out, "CRS:84")
	assert.Contains(t, out, "EPSG:4978")
}

func TestWKT(t *testing.T) {
	out, err := run(t, "wkt", "crs:84", "--indent=-1", "--no-authority")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `GEOGCS["WGS84(DD)", DATUM[`), out)
	assert.NotContains(t, out, "AUTHORITY")

	out, err = run(t, "wkt", "UTM:31s")
	require.NoError(t, err)
	assert.Contains(t, out, `PROJCS["WGS 84 / UTM zone 31S"`)
	assert.Contains(t, out, `PARAMETER["false_northing", 10000000.0]`)

	_, err = run(t, "wkt", "EPSG:1")
	assert.Error(t, err)
	_, err = run(t, "wkt", "UTM:99N")
	assert.ErrorIs(t, err, crs.ErrInvalidParameter)
	_, err = run(t, "wkt", "WGS84(DD)", "--shift", "sideways")
	assert.ErrorIs(t, err, crs.ErrInvalidParameter)
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "CRS:84", "WGS 84")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "true"))

	out, err = run(t, "compare", "CRS:84", "CRS:84", "--shift", "positive")
	require.NoError(t, err)
	assert.Contains(t, out, "STRICT           false")
	assert.Contains(t, out, "IGNORE_METADATA  false")
	assert.Contains(t, out, "APPROXIMATE      true")

	out, err = run(t, "compare", "CRS:84", "EPSG:4978", "--mode", "approximate")
	require.NoError(t, err)
	assert.Equal(t, "APPROXIMATE      false\n", out)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "positive.fgb")
	_, err := run(t, "export", "CRS:84", path, "--shift", "positive")
	require.NoError(t, err)
	r, err := fgb.NewReader(path)
	require.NoError(t, err)
	h := r.Header()
	assert.Equal(t, uint64(len(cities)), h.FeaturesCount)
	assert.GreaterOrEqual(t, h.Envelope[0], 0.0)
	assert.Equal(t, "WGS84(DD)", h.CRS.Name)
	require.NoError(t, r.Close())

	path = filepath.Join(dir, "utm.fgb")
	_, err = run(t, "export", "UTM:32N", path)
	require.NoError(t, err)
	r, err = fgb.NewReader(path)
	require.NoError(t, err)
	h = r.Header()
	assert.Equal(t, "EPSG", h.CRS.Org)
	assert.Equal(t, int32(32632), h.CRS.Code)

	fc, err := r.ReadAll()
	require.NoError(t, err)
	names := map[string]orb.Point{}
	for _, f := range fc.Features {
		names[f.Properties.MustString("name")] = f.Geometry.(orb.Point)
	}
	assert.Len(t, names, 2)
	require.Contains(t, names, "Paris")
	assert.Contains(t, names, "Berlin")
	assert.Less(t, names["Paris"][0], 500000.0)
	assert.Greater(t, names["Paris"][1], 5000000.0)

	_, err = run(t, "export", "Unix/POSIX", filepath.Join(dir, "time.fgb"))
	assert.Error(t, err)
}
