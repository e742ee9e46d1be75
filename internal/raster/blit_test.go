package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixel-engine/internal/mathutil"
)

var sentinel = Color{9, 9, 9, 9}

// gradient returns a w×h source whose pixel (i, j) is {i, j, 100, 255}.
func gradient(w, h int) *Context {
	src := newTestContext(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			src.Draw(i, j, Color{uint8(i), uint8(j), 100, 255})
		}
	}
	return src
}

func TestBlitFullyOutside(t *testing.T) {
	src := gradient(3, 3)
	for _, p := range [][2]int{{4, 0}, {0, 4}, {-3, 0}, {0, -3}, {100, 100}, {-100, -100}} {
		dst := newTestContext(4, 4)
		dst.Clear(sentinel)
		dst.Blit(p[0], p[1], src)
		assert.Equal(t, 16, countColor(dst, sentinel), "blit at %v", p)
	}
}

func TestBlitPartialOverlap(t *testing.T) {
	src := gradient(3, 3)
	dst := newTestContext(4, 4)
	dst.Clear(sentinel)
	dst.Blit(-1, 2, src)

	assert.Equal(t, src.Get(1, 0), dst.Get(0, 2))
	assert.Equal(t, src.Get(2, 0), dst.Get(1, 2))
	assert.Equal(t, src.Get(1, 1), dst.Get(0, 3))
	assert.Equal(t, src.Get(2, 1), dst.Get(1, 3))
	assert.Equal(t, 12, countColor(dst, sentinel))
}

func TestBlitFarEdge(t *testing.T) {
	src := gradient(3, 3)
	dst := newTestContext(4, 4)
	dst.Clear(sentinel)
	dst.Blit(2, 3, src)

	assert.Equal(t, src.Get(0, 0), dst.Get(2, 3))
	assert.Equal(t, src.Get(1, 0), dst.Get(3, 3))
	assert.Equal(t, 14, countColor(dst, sentinel))
}

func TestBlitBlended(t *testing.T) {
	src := newTestContext(2, 1)
	src.Draw(0, 0, Color{255, 0, 0, 0})
	src.Draw(1, 0, red)

	dst := newTestContext(2, 1)
	dst.Clear(blue)
	dst.SetBlending(BlendNormal)
	dst.Blit(0, 0, src)

	assert.Equal(t, blue, dst.Get(0, 0))
	assert.Equal(t, red, dst.Get(1, 0))
}

func TestBlitBlendedOffset(t *testing.T) {
	src := gradient(2, 2)
	dst := newTestContext(5, 5)
	dst.Clear(Black)
	dst.SetBlending(BlendNormal)
	dst.Blit(2, 1, src)

	assert.Equal(t, src.Get(0, 0), dst.Get(2, 1))
	assert.Equal(t, src.Get(1, 1), dst.Get(3, 2))
	assert.Equal(t, Black, dst.Get(0, 0))
	assert.Equal(t, Black, dst.Get(4, 3))
}

func TestBlitRegion(t *testing.T) {
	src := gradient(4, 4)
	dst := newTestContext(4, 4)
	dst.Clear(sentinel)
	dst.BlitRegion(0, 0, src, mathutil.Rect{X: 2, Y: 1, Width: 2, Height: 2})

	assert.Equal(t, src.Get(2, 1), dst.Get(0, 0))
	assert.Equal(t, src.Get(3, 2), dst.Get(1, 1))
	assert.Equal(t, 12, countColor(dst, sentinel))

	// A region reaching past the source is cut to the source bounds.
	dst.Clear(sentinel)
	dst.BlitRegion(0, 0, src, mathutil.Rect{X: 3, Y: 3, Width: 5, Height: 5})
	assert.Equal(t, src.Get(3, 3), dst.Get(0, 0))
	assert.Equal(t, 15, countColor(dst, sentinel))
}

func TestBlitCutout(t *testing.T) {
	src := newTestContext(3, 1)
	src.Data()[0] = Black
	src.Data()[1] = red
	src.Data()[2] = Black

	dst := newTestContext(3, 1)
	dst.Clear(blue)
	dst.BlitCutout(0, 0, src, Black)

	assert.Equal(t, []Color{blue, red, blue}, dst.Data())
}

func TestBlitUpscaled(t *testing.T) {
	src := newTestContext(2, 1)
	src.Data()[0] = red
	src.Data()[1] = blue

	dst := newTestContext(8, 8)
	dst.BlitUpscaled(1, 1, src, 2, 3)

	assert.Equal(t, 6, countColor(dst, red))
	assert.Equal(t, 6, countColor(dst, blue))
	assert.Equal(t, red, dst.Get(1, 1))
	assert.Equal(t, red, dst.Get(2, 3))
	assert.Equal(t, blue, dst.Get(3, 1))
	assert.Equal(t, blue, dst.Get(4, 3))
	assert.Equal(t, Transparent, dst.Get(5, 1))
	assert.Equal(t, Transparent, dst.Get(1, 4))
}

func TestBlitUpscaledClipped(t *testing.T) {
	src := gradient(4, 4)
	dst := newTestContext(5, 5)
	assert.NotPanics(t, func() {
		dst.BlitUpscaled(-3, -3, src, 2, 2)
		dst.BlitUpscaled(3, 3, src, 4, 4)
		dst.BlitUpscaled(0, 0, src, 0, 2)
		dst.BlitUpscaled(5, 0, src, 1, 1)
	})
	// (-3,-3) with 2×2 blocks: source (2,2) covers dst [1,3)×[1,3).
	assert.Equal(t, src.Get(2, 2), dst.Get(1, 1))
}
