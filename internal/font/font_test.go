package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-engine/internal/mathutil"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

var blue = raster.Color{R: 0, G: 0, B: 255, A: 255}

func TestDefaultFont(t *testing.T) {
	f := Default()
	require.Same(t, f, Default())

	assert.Equal(t, mathutil.Size(7, 13), f.CharSize('A'))
	assert.Equal(t, mathutil.Size(7, 13), f.CharSize(' '))
	assert.Equal(t, 13, f.LineHeight())

	lit := 0
	for _, p := range f.Char('A').Data() {
		if p == raster.White {
			lit++
		} else {
			assert.Equal(t, Key, p)
		}
	}
	assert.Greater(t, lit, 5)

	// Control bytes and bytes above 0x7E have no glyph.
	assert.Nil(t, f.Glyph(0x01))
	assert.Same(t, f.Char(0x01), f.Char(0xFF))
	assert.Equal(t, 7, f.Char(0x01).Width())
}

func TestDefaultAtlasRoundTrip(t *testing.T) {
	assert.Equal(t, defaultAtlas, Default().HexAtlas())
}

func TestMeasure(t *testing.T) {
	f := Default()
	tests := []struct {
		in   string
		want mathutil.Rect
	}{
		{"", mathutil.Rect{}},
		{"A", mathutil.Size(7, 13)},
		{"AB", mathutil.Size(14, 13)},
		{"A\nBCD", mathutil.Size(21, 26)},
		{"ABC\nD", mathutil.Size(21, 26)},
		{"AB\rC", mathutil.Size(14, 13)},
		{"\t", mathutil.Size(28, 13)},
		{"A\tB", mathutil.Size(42, 13)},
		{"\n\n", mathutil.Size(0, 39)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Measure(tt.in), "%q", tt.in)
	}
}

func glyphAt(t *testing.T, ctx *raster.Context, x, y int, g *texture.Texture) {
	t.Helper()
	for j := 0; j < g.Height(); j++ {
		for i := 0; i < g.Width(); i++ {
			want := blue
			if p := g.Data()[j*g.Width()+i]; p != Key {
				want = p
			}
			assert.Equal(t, want, ctx.Get(x+i, y+j), "pixel (%d,%d)", x+i, y+j)
		}
	}
}

func TestDrawText(t *testing.T) {
	f := Default()
	tex := texture.New(30, 30)
	ctx := tex.Context()
	ctx.Clear(blue)

	DrawText(ctx, 1, 2, "AB\n\tC", f)

	glyphAt(t, ctx, 1, 2, f.Char('A'))
	glyphAt(t, ctx, 8, 2, f.Char('B'))

	ctx.Clear(blue)
	DrawText(ctx, 1, 2, "A\rB\nC", f)
	glyphAt(t, ctx, 1, 2, mergeGlyphs(f.Char('A'), f.Char('B')))
	glyphAt(t, ctx, 1, 15, f.Char('C'))
}

func TestDrawTextSpaceLeavesBackground(t *testing.T) {
	tex := texture.New(20, 13)
	ctx := tex.Context()
	ctx.Clear(blue)
	DrawText(ctx, 0, 0, "  ", Default())
	for _, p := range tex.Data() {
		assert.Equal(t, blue, p)
	}
}

func TestDrawTextClipped(t *testing.T) {
	tex := texture.New(5, 5)
	assert.NotPanics(t, func() {
		DrawText(tex.Context(), -3, -8, "Hello\nWorld\t!", Default())
		DrawText(tex.Context(), 100, 100, "off", Default())
	})
}

func TestDrawTextColor(t *testing.T) {
	f := Default()
	tex := texture.New(7, 13)
	ctx := tex.Context()
	ctx.Clear(blue)

	red := raster.Color{R: 255, G: 0, B: 0, A: 255}
	DrawTextColor(ctx, 0, 0, "A", f, red)
	for i, p := range f.Char('A').Data() {
		if p == raster.White {
			assert.Equal(t, red, tex.Data()[i])
		} else {
			assert.Equal(t, blue, tex.Data()[i])
		}
	}
}

// mergeGlyphs overlays b onto a the way two cutout blits would.
func mergeGlyphs(a, b *texture.Texture) *texture.Texture {
	out := a.Clone()
	out.Context().BlitCutout(0, 0, b, Key)
	return out
}
