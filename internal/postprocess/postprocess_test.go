package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-engine/internal/mathutil"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

var (
	red     = raster.Color{R: 255, A: 255}
	magenta = raster.Color{R: 255, B: 255, A: 255}
)

func filled(w, h int, col raster.Color) *texture.Texture {
	t := texture.New(w, h)
	t.Context().Clear(col)
	return t
}

func opaqueCount(t *texture.Texture) int {
	n := 0
	for _, p := range t.Data() {
		if p.A > 0 {
			n++
		}
	}
	return n
}

func TestKeyOut(t *testing.T) {
	src := filled(4, 4, magenta)
	src.Context().FillRect(1, 1, 2, 2, red)

	out := KeyOut(src, magenta)
	assert.Equal(t, 4, opaqueCount(out))
	assert.Equal(t, raster.Transparent, out.Context().Get(0, 0))
	assert.Equal(t, red, out.Context().Get(1, 1))
	assert.Equal(t, magenta, src.Context().Get(0, 0), "input untouched")
}

func TestAlphaBoundsAndCrop(t *testing.T) {
	src := texture.New(10, 8)
	src.Context().FillRect(2, 3, 4, 2, red)

	assert.Equal(t, mathutil.Rect{X: 2, Y: 3, Width: 4, Height: 2}, AlphaBounds(src))

	out := CropAlpha(src)
	require.Equal(t, 4, out.Width())
	require.Equal(t, 2, out.Height())
	assert.Equal(t, 8, opaqueCount(out))

	empty := texture.New(3, 3)
	assert.True(t, AlphaBounds(empty).Empty())
	assert.Same(t, empty, CropAlpha(empty))

	full := filled(3, 3, red)
	assert.Same(t, full, CropAlpha(full))
}

func TestDespeckle(t *testing.T) {
	src := texture.New(10, 10)
	ctx := src.Context()
	ctx.FillRect(0, 0, 3, 3, red)
	ctx.Draw(8, 8, red)
	// diagonal neighbours join one cluster
	ctx.Draw(5, 5, red)
	ctx.Draw(6, 6, red)

	out := Despeckle(src, 2)
	assert.Equal(t, 11, opaqueCount(out))
	assert.Equal(t, raster.Transparent, out.Context().Get(8, 8))
	assert.Equal(t, red, out.Context().Get(6, 6))

	out = Despeckle(src, 3)
	assert.Equal(t, 9, opaqueCount(out))
	assert.Equal(t, 12, opaqueCount(src), "input untouched")
}

func TestFlip(t *testing.T) {
	src := texture.New(3, 2)
	src.Context().Draw(0, 0, red)

	assert.Equal(t, red, Flip(src, "h").Context().Get(2, 0))
	assert.Equal(t, red, Flip(src, "v").Context().Get(0, 1))
	assert.Equal(t, red, Flip(src, "HV").Context().Get(2, 1))
	assert.Same(t, src, Flip(src, "diagonal"))
}

func TestFit(t *testing.T) {
	src := filled(40, 20, red)

	tests := []struct {
		name       string
		maxW, maxH int
		w, h       int
	}{
		{"width bound", 10, 0, 10, 5},
		{"height bound", 0, 4, 8, 4},
		{"both bounds", 20, 20, 20, 10},
		{"already fits", 100, 100, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Fit(src, tt.maxW, tt.maxH, false)
			assert.Equal(t, tt.w, out.Width())
			assert.Equal(t, tt.h, out.Height())
			assert.Equal(t, red, out.Context().Get(0, 0))
		})
	}

	assert.Same(t, src, Fit(src, 0, 0, true))
}

func TestDownsample(t *testing.T) {
	src := filled(8, 6, red)
	out := Downsample(src, 2)
	require.Equal(t, 4, out.Width())
	require.Equal(t, 3, out.Height())
	for _, p := range out.Data() {
		assert.Equal(t, red, p)
	}
	assert.Same(t, src, Downsample(src, 1))
}

func TestUpscaleAndCenter(t *testing.T) {
	src := texture.New(2, 1)
	src.Context().Draw(1, 0, red)

	up := Upscale(src, 3)
	require.Equal(t, 6, up.Width())
	require.Equal(t, 3, up.Height())
	assert.Equal(t, 9, opaqueCount(up))
	assert.Equal(t, red, up.Context().Get(3, 2))
	assert.Equal(t, raster.Transparent, up.Context().Get(2, 2))

	c := Center(filled(2, 2, red), 6, 4)
	assert.Equal(t, red, c.Context().Get(2, 1))
	assert.Equal(t, red, c.Context().Get(3, 2))
	assert.Equal(t, 4, opaqueCount(c))
}

func TestStandardize(t *testing.T) {
	src := filled(12, 12, magenta)
	src.Context().FillRect(4, 4, 4, 2, red)
	src.Context().Draw(0, 11, red)

	out := Standardize(src, Options{
		Key:          &magenta,
		Despeckle:    2,
		Crop:         true,
		Scale:        2,
		CanvasWidth:  10,
		CanvasHeight: 10,
	})
	require.Equal(t, 10, out.Width())
	require.Equal(t, 10, out.Height())
	// 4x2 crop upscaled to 8x4, centred at (1,3)
	assert.Equal(t, 32, opaqueCount(out))
	assert.Equal(t, red, out.Context().Get(1, 3))
	assert.Equal(t, raster.Transparent, out.Context().Get(0, 3))

	assert.Same(t, src, Standardize(src, Options{}))
}
