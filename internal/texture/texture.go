package texture

import (
	"image"
	"image/color"

	"pixel-engine/internal/raster"
)

// Texture owns a width×height row-major pixel slice. The zero value is an
// empty 0×0 texture.
type Texture struct {
	width  int
	height int
	pixels []raster.Color
}

// New allocates a transparent w×h texture. Negative sizes are treated as 0.
func New(w, h int) *Texture {
	w, h = max(w, 0), max(h, 0)
	return &Texture{width: w, height: h, pixels: make([]raster.Color, w*h)}
}

// Width returns the width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in pixels.
func (t *Texture) Height() int { return t.height }

// Data returns the pixel slice itself, not a copy.
func (t *Texture) Data() []raster.Color { return t.pixels }

// Context borrows the pixels for drawing. The context is invalid once the
// texture is resized or reloaded.
func (t *Texture) Context() *raster.Context {
	return raster.NewContext(t.width, t.height, t.pixels)
}

// Resize replaces the pixel slice with a new transparent w×h one.
func (t *Texture) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	t.width, t.height = w, h
	t.pixels = make([]raster.Color, w*h)
}

// Clone returns a deep copy.
func (t *Texture) Clone() *Texture {
	c := &Texture{width: t.width, height: t.height, pixels: make([]raster.Color, len(t.pixels))}
	copy(c.pixels, t.pixels)
	return c
}

func (t *Texture) replace(o *Texture) {
	t.width, t.height, t.pixels = o.width, o.height, o.pixels
}

// At implements the image.Image interface.
func (t *Texture) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return color.NRGBA{}
	}
	return t.pixels[y*t.width+x].NRGBA()
}

// Bounds implements the image.Image interface.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// ColorModel implements the image.Image interface.
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage copies the texture into a new NRGBA image.
func (t *Texture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(t.Bounds())
	putPixels(img.Pix, t.pixels)
	return img
}

// FromImage copies any image into a new texture.
func FromImage(img image.Image) *Texture {
	n := toNRGBA(img)
	b := n.Bounds()
	t := New(b.Dx(), b.Dy())
	for y := 0; y < t.height; y++ {
		row := n.Pix[y*n.Stride : y*n.Stride+t.width*4]
		getPixels(t.pixels[y*t.width:(y+1)*t.width], row)
	}
	return t
}

// putPixels writes colors as RGBA bytes; dst must hold 4*len(src) bytes.
func putPixels(dst []byte, src []raster.Color) {
	for i, p := range src {
		dst[i*4] = p.R
		dst[i*4+1] = p.G
		dst[i*4+2] = p.B
		dst[i*4+3] = p.A
	}
}

func getPixels(dst []raster.Color, src []byte) {
	for i := range dst {
		dst[i] = raster.Color{R: src[i*4], G: src[i*4+1], B: src[i*4+2], A: src[i*4+3]}
	}
}
