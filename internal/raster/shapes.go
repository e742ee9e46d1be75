package raster

// DrawRect strokes the one-pixel outline of the w×h rectangle at (x, y),
// the same area FillRect would cover. Each edge pixel is written once, so
// corners are not blended twice.
func (c *Context) DrawRect(x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x2, y2 := x+w-1, y+h-1
	c.hspan(x, x2, y, col)
	if y2 != y {
		c.hspan(x, x2, y2, col)
	}
	for j := y + 1; j < y2; j++ {
		c.Draw(x, j, col)
		if x2 != x {
			c.Draw(x2, j, col)
		}
	}
}

// hspan draws the inclusive horizontal run [x1, x2] on row y.
func (c *Context) hspan(x1, x2, y int, col Color) {
	if y < 0 || y >= c.height {
		return
	}
	x1 = max(x1, 0)
	x2 = min(x2, c.width-1)
	if x1 > x2 {
		return
	}
	row := c.pixels[y*c.width+x1 : y*c.width+x2+1]
	if c.mode != BlendNone {
		for i := range row {
			row[i] = c.blend(col, row[i])
		}
		return
	}
	for i := range row {
		row[i] = col
	}
}

// FillCircle fills a disc centered on (x, y). A pixel is inside when
// dx²+dy² < r²-r, which yields a disc slightly smaller than DrawCircle's
// outline; the scan covers [x-r, x+r) × [y-r, y+r).
func (c *Context) FillCircle(x, y, radius int, col Color) {
	rr := radius*radius - radius
	for i := x - radius; i < x+radius; i++ {
		dx := i - x
		for j := y - radius; j < y+radius; j++ {
			dy := j - y
			if dx*dx+dy*dy < rr {
				c.Draw(i, j, col)
			}
		}
	}
}

// DrawCircle strokes a circle with the midpoint (Bresenham) algorithm.
func (c *Context) DrawCircle(x, y, radius int, col Color) {
	xx, yy := 0, radius
	d := 3 - 2*radius
	c.plot8(x, y, xx, yy, col)

	for yy >= xx {
		xx++
		if d > 0 {
			yy--
			d += 4*(xx-yy) + 10
		} else {
			d += 4*xx + 6
		}
		c.plot8(x, y, xx, yy, col)
	}
}

func (c *Context) plot8(xc, yc, x, y int, col Color) {
	c.Draw(xc+x, yc+y, col)
	c.Draw(xc-x, yc+y, col)
	c.Draw(xc+x, yc-y, col)
	c.Draw(xc-x, yc-y, col)
	c.Draw(xc+y, yc+x, col)
	c.Draw(xc-y, yc+x, col)
	c.Draw(xc+y, yc-x, col)
	c.Draw(xc-y, yc-x, col)
}

// DrawLine draws a one-pixel line with Bresenham's algorithm. Both
// endpoints are always plotted. The walk runs along x when |dy| <= |dx|,
// otherwise along y, always in increasing major-axis order.
func (c *Context) DrawLine(x1, y1, x2, y2 int, col Color) {
	dx := x2 - x1
	dy := y2 - y1
	dx1 := abs(dx)
	dy1 := abs(dy)
	px := 2*dy1 - dx1
	py := 2*dx1 - dy1
	sameSign := (dx < 0 && dy < 0) || (dx > 0 && dy > 0)

	if dy1 <= dx1 {
		x, y, xe := x1, y1, x2
		if dx < 0 {
			x, y, xe = x2, y2, x1
		}
		c.Draw(x, y, col)
		for x < xe {
			x++
			if px < 0 {
				px += 2 * dy1
			} else {
				if sameSign {
					y++
				} else {
					y--
				}
				px += 2 * (dy1 - dx1)
			}
			c.Draw(x, y, col)
		}
		return
	}

	x, y, ye := x1, y1, y2
	if dy < 0 {
		x, y, ye = x2, y2, y1
	}
	c.Draw(x, y, col)
	for y < ye {
		y++
		if py <= 0 {
			py += 2 * dx1
		} else {
			if sameSign {
				x++
			} else {
				x--
			}
			py += 2 * (dx1 - dy1)
		}
		c.Draw(x, y, col)
	}
}

// DrawTriangle strokes the three edges of a triangle.
func (c *Context) DrawTriangle(x0, y0, x1, y1, x2, y2 int, col Color) {
	c.DrawLine(x0, y0, x1, y1, col)
	c.DrawLine(x1, y1, x2, y2, col)
	c.DrawLine(x2, y2, x0, y0, col)
}

// FillTriangle fills every pixel whose integer position lies on or inside
// the triangle. The scan is limited to the clipped bounding box.
// Degenerate (zero-area) triangles fall back to their outline.
func (c *Context) FillTriangle(x0, y0, x1, y1, x2, y2 int, col Color) {
	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		c.DrawTriangle(x0, y0, x1, y1, x2, y2, col)
		return
	}
	if area < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	minX := max(min(x0, x1, x2), 0)
	maxX := min(max(x0, x1, x2), c.width-1)
	minY := max(min(y0, y1, y2), 0)
	maxY := min(max(y0, y1, y2), c.height-1)
	if minX > maxX || minY > maxY {
		return
	}

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			if edge(x1, y1, x2, y2, px, py) < 0 ||
				edge(x2, y2, x0, y0, px, py) < 0 ||
				edge(x0, y0, x1, y1, px, py) < 0 {
				continue
			}
			c.Draw(px, py, col)
		}
	}
}

// edge is twice the signed area of (a, b, p); positive when p is to the
// left of a→b in y-down screen space with counter-clockwise winding.
func edge(ax, ay, bx, by, px, py int) int {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
