package raster

import "pixel-engine/internal/mathutil"

// Blit copies all of src into the buffer with its top-left corner at (x, y).
// Only the part that intersects the buffer is written. In BlendNormal mode
// each source pixel is composited instead of copied.
func (c *Context) Blit(x, y int, src Source) {
	c.blit(x, y, src, mathutil.Size(src.Width(), src.Height()), nil)
}

// BlitRegion copies the region of src described by r to (x, y).
func (c *Context) BlitRegion(x, y int, src Source, r mathutil.Rect) {
	c.blit(x, y, src, r, nil)
}

// BlitCutout is Blit but skips every source pixel equal to key.
func (c *Context) BlitCutout(x, y int, src Source, key Color) {
	c.blit(x, y, src, mathutil.Size(src.Width(), src.Height()), &key)
}

// BlitUpscaled draws src with every pixel expanded to a scaleX×scaleY
// block (nearest neighbour).
func (c *Context) BlitUpscaled(x, y int, src Source, scaleX, scaleY int) {
	if scaleX <= 0 || scaleY <= 0 || x >= c.width || y >= c.height {
		return
	}
	sw, sh := src.Width(), src.Height()
	data := src.Data()
	for pj := 0; pj < sh; pj++ {
		dy := y + pj*scaleY
		if dy >= c.height {
			break
		}
		if dy+scaleY <= 0 {
			continue
		}
		for pi := 0; pi < sw; pi++ {
			dx := x + pi*scaleX
			if dx >= c.width {
				break
			}
			c.FillRect(dx, dy, scaleX, scaleY, data[pj*sw+pi])
		}
	}
}

func (c *Context) blit(x, y int, src Source, r mathutil.Rect, key *Color) {
	sw := src.Width()
	r = r.Intersect(mathutil.Size(sw, src.Height()))
	if r.Empty() {
		return
	}

	// Trim the source rect where the destination falls off the buffer.
	if x < 0 {
		r.X -= x
		r.Width += x
		x = 0
	}
	if y < 0 {
		r.Y -= y
		r.Height += y
		y = 0
	}
	if x+r.Width > c.width {
		r.Width = c.width - x
	}
	if y+r.Height > c.height {
		r.Height = c.height - y
	}
	if r.Width <= 0 || r.Height <= 0 {
		return
	}

	data := src.Data()
	for j := 0; j < r.Height; j++ {
		srow := data[(r.Y+j)*sw+r.X : (r.Y+j)*sw+r.X+r.Width]
		drow := c.pixels[(y+j)*c.width+x : (y+j)*c.width+x+r.Width]
		if key == nil && c.mode == BlendNone {
			copy(drow, srow)
			continue
		}
		for i, p := range srow {
			if key != nil && p == *key {
				continue
			}
			if c.mode != BlendNone {
				drow[i] = c.blend(p, drow[i])
			} else {
				drow[i] = p
			}
		}
	}
}
