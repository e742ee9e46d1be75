// Package font renders text with fixed bitmap glyphs. A PixelFont maps
// every byte value to a small grayscale glyph texture; glyph pixels of
// intensity 0 are treated as background and never drawn.
package font

import (
	"pixel-engine/internal/mathutil"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// Key is the glyph background color skipped when drawing.
var Key = raster.Color{R: 0, G: 0, B: 0, A: 255}

const tabWidth = 4

// PixelFont is a 256-entry glyph atlas plus a fallback glyph used for
// empty or missing slots.
type PixelFont struct {
	glyphs   [256]*texture.Texture
	fallback *texture.Texture
}

// New returns a font with no glyphs and a box fallback.
func New() *PixelFont {
	return &PixelFont{fallback: boxGlyph(7, 13)}
}

// SetGlyph stores t for byte b. Nil clears the slot.
func (f *PixelFont) SetGlyph(b byte, t *texture.Texture) {
	f.glyphs[b] = t
}

// Glyph returns the stored glyph for b, which may be nil or empty.
func (f *PixelFont) Glyph(b byte) *texture.Texture {
	return f.glyphs[b]
}

// SetFallback replaces the glyph drawn for empty slots.
func (f *PixelFont) SetFallback(t *texture.Texture) {
	if t != nil {
		f.fallback = t
	}
}

// Char returns the glyph for b, or the fallback when the slot is nil or 0×0.
func (f *PixelFont) Char(b byte) *texture.Texture {
	if g := f.glyphs[b]; g != nil && g.Width() > 0 && g.Height() > 0 {
		return g
	}
	return f.fallback
}

// CharSize returns the glyph size of b.
func (f *PixelFont) CharSize(b byte) mathutil.Rect {
	g := f.Char(b)
	return mathutil.Size(g.Width(), g.Height())
}

// LineHeight is the height of '|', the distance DrawText moves down on '\n'.
func (f *PixelFont) LineHeight() int {
	return f.Char('|').Height()
}

// Measure returns the size of s as DrawText would lay it out: the width
// of the widest line and one LineHeight per line. '\t' counts as four
// spaces and '\r' returns to the start of the line.
func (f *PixelFont) Measure(s string) mathutil.Rect {
	if s == "" {
		return mathutil.Rect{}
	}
	lineH := f.LineHeight()
	width, line, lines := 0, 0, 1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			width = max(width, line)
			line = 0
			lines++
		case '\r':
			width = max(width, line)
			line = 0
		case '\t':
			line += tabWidth * f.Char(' ').Width()
		default:
			line += f.Char(c).Width()
		}
	}
	return mathutil.Size(max(width, line), lines*lineH)
}
