package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/quadfield/math/interpolate"
)

func TestDefaults(t *testing.T) {
	con, err := ParseFieldConfig("[Field]\nOutput = out\n")
	require.NoError(t, err)

	assert.Equal(t, "out", con.Output)
	assert.Equal(t, 200, con.Size)
	assert.Equal(t, int64(0), con.Seed)
	assert.Equal(t, "Direct", con.Method)
	assert.True(t, con.Verify)
	assert.Equal(t, "Jet", con.Palette)
	assert.Equal(t, "png", con.Format)
	assert.True(t, con.RawImage)
	assert.Equal(t, -1, con.ProfileRow)
	assert.Equal(t, 200, con.ImagePixels())
	assert.False(t, con.ValidCornersFile())
	assert.False(t, con.ValidLogFile())
}

func TestParseFieldConfig(t *testing.T) {
	con, err := ParseFieldConfig(`[Field]
Output = out/dir
Size = 64
Seed = 12345
Method = MatrixForm
Verify = false
Palette = viridis
Format = tiff
Pixels = 256
RawImage = false
ProfileRow = 10
ProfilePlot = row.png
PrependName = pre_
AppendName = _app
LogFile = log.out
`)
	require.NoError(t, err)

	assert.Equal(t, 64, con.Size)
	assert.Equal(t, int64(12345), con.Seed)
	m, err := interpolate.ParseMethod(con.Method)
	require.NoError(t, err)
	assert.Equal(t, interpolate.MatrixFormMethod, m)
	assert.False(t, con.Verify)
	assert.False(t, con.RawImage)
	assert.Equal(t, 256, con.ImagePixels())
	assert.True(t, con.ValidLogFile())

	name, err := con.OutputName("interpolated_MatrixForm")
	require.NoError(t, err)
	assert.Equal(t, "pre_interpolated_MatrixForm_app.tiff", name)
}

func TestInvalidFieldConfig(t *testing.T) {
	table := []struct {
		body, msg string
	}{
		{"Size = 10", "'Output'"},
		{"Output = o\nSize = 0", "'Size'"},
		{"Output = o\nMethod = Spline", "'Method'"},
		{"Output = o\nPalette = Rainbow", "'Palette'"},
		{"Output = o\nFormat = gif", "'Format'"},
		{"Output = o\nPixels = -3", "'Pixels'"},
		{"Output = o\nSize = 10\nProfileRow = 10\nProfilePlot = p.png", "'ProfileRow'"},
		{"Output = o\nProfileRow = 3", "Only one of"},
		{"Output = o\nProfilePlot = p.png", "Only one of"},
	}

	for i, test := range table {
		_, err := ParseFieldConfig("[Field]\n" + test.body + "\n")
		if assert.Error(t, err, "%d) %s", i, test.body) {
			assert.Contains(t, err.Error(), test.msg, "%d)", i)
		}
	}

	_, err := ParseFieldConfig("[Field]\nOutput = o\nUnknownVariable = 3\n")
	assert.Error(t, err)
}

func TestReadFieldConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "field.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(ExampleFieldFile), 0644))

	con, err := ReadFieldConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "path/to/output/dir", con.Output)
	assert.Equal(t, 200, con.Size)

	_, err = ReadFieldConfig(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}

func TestReadCorners(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "corners.txt")
	require.NoError(t, os.WriteFile(
		fname, []byte("0.0 1.0 1.0 0.0\n0.5 0.5 0.5 0.5\n"), 0644,
	))

	c, err := ReadCorners(fname)
	require.NoError(t, err)
	assert.Equal(t, interpolate.Corners{Z00: 0, Z10: 1, Z01: 1, Z11: 0}, c)

	_, err = ReadCorners(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
