package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBufferPresent(t *testing.T) {
	fb := NewFrameBuffer(Resolution{Width: 2, Height: 2, PixelWidth: 3, PixelHeight: 2})
	fb.PrepareFrame()
	fb.Draw(1, 0, red)

	img := fb.Present()
	require.Equal(t, 6, img.Bounds().Dx())
	require.Equal(t, 4, img.Bounds().Dy())

	assert.Equal(t, red.NRGBA(), img.NRGBAAt(3, 0))
	assert.Equal(t, red.NRGBA(), img.NRGBAAt(5, 1))
	assert.Equal(t, Transparent.NRGBA(), img.NRGBAAt(2, 0))
	assert.Equal(t, Transparent.NRGBA(), img.NRGBAAt(3, 2))
}

func TestFrameBufferDefaults(t *testing.T) {
	fb := NewFrameBuffer(Resolution{Width: 4, Height: 3})
	assert.Equal(t, 1, fb.Res.PixelWidth)
	assert.Equal(t, 1, fb.Res.PixelHeight)
	assert.Len(t, fb.Data(), 12)

	img := fb.Present()
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	ws := NewResolution(4, 3).WindowSize()
	assert.Equal(t, 4, ws.Width)
	assert.Equal(t, 3, ws.Height)
}
