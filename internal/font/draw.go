package font

import (
	"pixel-engine/internal/raster"
)

// DrawText draws s with its top-left corner at (x, y). Glyphs are
// composited with BlitCutout so their black background leaves the
// destination untouched.
func DrawText(ctx *raster.Context, x, y int, s string, f *PixelFont) {
	walk(x, y, s, f, func(cx, cy int, c byte) {
		ctx.BlitCutout(cx, cy, f.Char(c), Key)
	})
}

// DrawTextColor draws s tinted with col. Glyph intensity scales col's
// alpha, so gray glyph pixels come out partially transparent.
func DrawTextColor(ctx *raster.Context, x, y int, s string, f *PixelFont, col raster.Color) {
	walk(x, y, s, f, func(cx, cy int, c byte) {
		g := f.Char(c)
		w := g.Width()
		for i, p := range g.Data() {
			if p == Key || p.R == 0 {
				continue
			}
			tinted := col
			tinted.A = uint8(int(col.A) * int(p.R) / 255)
			ctx.DrawBlended(cx+i%w, cy+i/w, tinted)
		}
	})
}

func walk(x, y int, s string, f *PixelFont, draw func(cx, cy int, c byte)) {
	cx, cy := x, y
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\r':
			cx = x
		case '\n':
			cx = x
			cy += f.LineHeight()
		case '\t':
			cx += tabWidth * f.Char(' ').Width()
		default:
			draw(cx, cy, c)
			cx += f.Char(c).Width()
		}
	}
}
