// Package preview prints pixel buffers to a terminal using upper half-block
// characters: each cell shows two vertically stacked pixels, the top one as
// the foreground color and the bottom one as the background.
package preview

import (
	"bufio"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"pixel-engine/internal/raster"
)

const halfBlock = "▀"

// Options controls how pixels are mapped to terminal cells.
type Options struct {
	// Profile selects the escape sequences. termenv.Ascii prints the cell
	// layout without any color.
	Profile termenv.Profile
	// Background is composited under translucent pixels.
	Background raster.Color
}

// Render writes src to w, one text line per two pixel rows. Cells whose
// pixels are both fully transparent are printed as a plain space.
func Render(w io.Writer, src raster.Source, o Options) error {
	bw := bufio.NewWriter(w)
	width, height := src.Width(), src.Height()
	px := src.Data()

	at := func(x, y int) raster.Color {
		if y >= height {
			return raster.Transparent
		}
		return px[y*width+x]
	}

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top, bottom := at(x, y), at(x, y+1)
			if top.A == 0 && bottom.A == 0 {
				bw.WriteByte(' ')
				continue
			}
			cell := o.Profile.String(halfBlock).
				Foreground(o.color(top)).
				Background(o.color(bottom))
			bw.WriteString(cell.String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String is Render into a string.
func String(src raster.Source, o Options) string {
	var sb strings.Builder
	Render(&sb, src, o)
	return sb.String()
}

func (o Options) color(c raster.Color) termenv.Color {
	bg := o.Background
	bg.A = 255
	return o.Profile.FromColor(raster.BlendSourceOver(c, bg).NRGBA())
}
