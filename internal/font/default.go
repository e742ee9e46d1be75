package font

import (
	_ "embed"
	"sync"

	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// Regenerate with: go run ./cmd/fontgen -out internal/font/default_font.hex
//
//go:embed default_font.hex
var defaultAtlas string

var (
	defaultOnce sync.Once
	defaultFont *PixelFont
)

// Default returns the built-in 7×13 font, decoding it on first use.
// The returned font is shared and must not be modified.
func Default() *PixelFont {
	defaultOnce.Do(func() {
		f, err := ParseHexAtlas(defaultAtlas)
		if err != nil {
			panic("font: embedded atlas is corrupt: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// boxGlyph is a w×h outlined box on the key background.
func boxGlyph(w, h int) *texture.Texture {
	g := texture.New(w, h)
	ctx := g.Context()
	ctx.Clear(Key)
	ctx.DrawRect(1, 2, w-2, h-4, raster.White)
	return g
}
