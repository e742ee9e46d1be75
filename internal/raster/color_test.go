package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-engine/internal/mathutil"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000", Black},
		{"#ff0000", red},
		{"#0000ff80", Color{0, 0, 255, 128}},
		{" #12345678 ", Color{0x12, 0x34, 0x56, 0x78}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#12345", "#gggggg"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{1, 2, 254, 255}
	assert.Equal(t, "#0102feff", c.Hex())
	back, err := ParseHex(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestRGBVec(t *testing.T) {
	v := Color{255, 0, 51, 7}.RGBVec()
	assert.InDelta(t, 1.0, v[0], 1e-9)
	assert.InDelta(t, 0.0, v[1], 1e-9)
	assert.InDelta(t, 0.2, v[2], 1e-9)

	assert.Equal(t, Color{255, 0, 0, 255}, ColorFromRGBVec(mathutil.Vec3{2, -1, 0}))
	assert.Equal(t, Color{128, 64, 0, 255}, ColorFromRGBVec(mathutil.Vec3{0.5, 0.25, 0}))
}

func TestStdConversion(t *testing.T) {
	c := Color{10, 20, 30, 40}
	assert.Equal(t, c, ColorFromStd(c.NRGBA()))
	assert.Equal(t, Black, ColorFromStd(color.Black))
	assert.Equal(t, "{10 20 30 40}", c.String())
}
