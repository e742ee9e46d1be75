package mathutil

// Rect is an axis-aligned integer rectangle. Some call sites use only
// Width/Height as a size pair.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Size returns a Rect at the origin with the given dimensions.
func Size(w, h int) Rect {
	return Rect{Width: w, Height: h}
}

func (r Rect) X2() int { return r.X + r.Width }
func (r Rect) Y2() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside r. Bounds are half-open:
// X <= x < X2 and Y <= y < Y2, so a W×H rect contains exactly W×H points.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X2() && r.Y <= y && y < r.Y2()
}

// ContainsVec tests the floored x/y components of v.
func (r Rect) ContainsVec(v Vec3) bool {
	f := v.Floor()
	return r.Contains(int(f[0]), int(f[1]))
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X2() <= r.X2() && o.Y2() <= r.Y2()
}

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X2() && o.X < r.X2() && r.Y < o.Y2() && o.Y < r.Y2()
}

// Intersect returns the overlapping region of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.X2(), o.X2()), min(r.Y2(), o.Y2())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Origin returns the top-left corner as a vector.
func (r Rect) Origin() Vec3 {
	return Vec3{float64(r.X), float64(r.Y), 0}
}

// Extent returns width and height as a vector.
func (r Rect) Extent() Vec3 {
	return Vec3{float64(r.Width), float64(r.Height), 0}
}
