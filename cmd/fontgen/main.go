// Command fontgen regenerates the embedded default glyph atlas from the
// 7x13 X11 fixed font in golang.org/x/image/font/basicfont.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/image/font/basicfont"

	"pixel-engine/internal/font"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

func main() {
	out := flag.String("out", "internal/font/default_font.hex", "Hex atlas output path")
	pixfont := flag.String("pixfont", "", "Also write a binary .pixfont file")
	flag.Parse()

	f := build(basicfont.Face7x13)

	if err := os.WriteFile(*out, []byte(f.HexAtlas()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)

	if *pixfont != "" {
		if err := f.SavePixFont(*pixfont); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *pixfont)
	}
}

// build copies every printable ASCII glyph of face into a PixelFont. Glyph
// cells are Advance pixels wide so the spacing column is part of the glyph.
func build(face *basicfont.Face) *font.PixelFont {
	f := font.New()
	h := face.Ascent + face.Descent
	for c := 0x20; c < 0x7f; c++ {
		row, ok := maskRow(face, rune(c))
		if !ok {
			continue
		}
		g := texture.New(face.Advance, h)
		ctx := g.Context()
		ctx.Clear(font.Key)
		for y := 0; y < h; y++ {
			for x := 0; x < face.Width; x++ {
				_, _, _, a := face.Mask.At(x, row*h+y).RGBA()
				v := uint8(a >> 8)
				ctx.Draw(x+face.Left, y, raster.Color{R: v, G: v, B: v, A: 255})
			}
		}
		f.SetGlyph(byte(c), g)
	}
	return f
}

func maskRow(face *basicfont.Face, r rune) (int, bool) {
	for _, rng := range face.Ranges {
		if rng.Low <= r && r < rng.High {
			return int(r-rng.Low) + rng.Offset, true
		}
	}
	return 0, false
}
