package raster

import "image"

// Source is anything a Context can blit from: a row-major pixel slice of
// exactly Width()*Height() colors.
type Source interface {
	Width() int
	Height() int
	Data() []Color
}

// Context draws into a borrowed pixel slice. It never owns the memory: the
// owner (a texture or framebuffer) must outlive it, and resizing the owner
// invalidates the context.
//
// Every operation clips against [0,width)×[0,height); coordinates outside
// the buffer are silently ignored.
type Context struct {
	width  int
	height int
	pixels []Color

	mode  BlendMode
	blend Blender
}

// NewContext wraps pixels, which must hold width*height colors.
func NewContext(width, height int, pixels []Color) *Context {
	return &Context{
		width:  width,
		height: height,
		pixels: pixels,
		blend:  BlendSourceOver,
	}
}

func (c *Context) Width() int    { return c.width }
func (c *Context) Height() int   { return c.height }
func (c *Context) Data() []Color { return c.pixels }

// SetBlending switches the mode used by all subsequent draws.
func (c *Context) SetBlending(mode BlendMode) {
	c.mode = mode
}

// Blending returns the current blend mode.
func (c *Context) Blending() BlendMode {
	return c.mode
}

// SetBlender replaces the blend function used in BlendNormal mode and by
// DrawBlended. A nil blender restores source-over.
func (c *Context) SetBlender(b Blender) {
	if b == nil {
		b = BlendSourceOver
	}
	c.blend = b
}

// Blend combines src with dst using the context's blend function.
func (c *Context) Blend(src, dst Color) Color {
	return c.blend(src, dst)
}

// Index returns the slice index of (x, y) and whether it is in bounds.
func (c *Context) Index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return -1, false
	}
	return y*c.width + x, true
}

// Coordinate is the inverse of Index.
func (c *Context) Coordinate(index int) (x, y int) {
	return index % c.width, index / c.width
}

// Clear fills the whole buffer, ignoring the blend mode.
func (c *Context) Clear(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Draw sets a single pixel. In BlendNormal mode it is DrawBlended.
func (c *Context) Draw(x, y int, col Color) {
	if c.mode != BlendNone {
		c.DrawBlended(x, y, col)
		return
	}
	i, ok := c.Index(x, y)
	if !ok {
		return
	}
	c.pixels[i] = col
}

// DrawBlended composites src over the pixel at (x, y).
func (c *Context) DrawBlended(x, y int, src Color) {
	i, ok := c.Index(x, y)
	if !ok {
		return
	}
	c.pixels[i] = c.blend(src, c.pixels[i])
}

// Get returns the pixel at (x, y), or Transparent when out of bounds.
func (c *Context) Get(x, y int) Color {
	i, ok := c.Index(x, y)
	if !ok {
		return Transparent
	}
	return c.pixels[i]
}

// clip trims the rectangle to the buffer. ok is false when nothing remains.
func (c *Context) clip(x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > c.width {
		w = c.width - x
	}
	if y+h > c.height {
		h = c.height - y
	}
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	return x, y, w, h, true
}

// FillRect fills the w×h rectangle with its top-left corner at (x, y).
func (c *Context) FillRect(x, y, w, h int, col Color) {
	x, y, w, h, ok := c.clip(x, y, w, h)
	if !ok {
		return
	}
	if c.mode != BlendNone {
		for j := y; j < y+h; j++ {
			row := j * c.width
			for i := x; i < x+w; i++ {
				c.pixels[row+i] = c.blend(col, c.pixels[row+i])
			}
		}
		return
	}
	first := c.pixels[y*c.width+x : y*c.width+x+w]
	for i := range first {
		first[i] = col
	}
	for j := y + 1; j < y+h; j++ {
		copy(c.pixels[j*c.width+x:j*c.width+x+w], first)
	}
}

// ToImage copies the buffer into a new NRGBA image.
func (c *Context) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for i, p := range c.pixels {
		img.Pix[i*4] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}
