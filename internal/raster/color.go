package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"pixel-engine/internal/mathutil"
)

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
)

// RGBVec returns the color channels scaled to [0, 1]. Alpha is dropped.
func (c Color) RGBVec() mathutil.Vec3 {
	return mathutil.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// ColorFromRGBVec converts normalized rgb back to an opaque Color.
// Components are clamped to [0, 1] first.
func ColorFromRGBVec(v mathutil.Vec3) Color {
	v = v.Clamp(0, 1)
	return Color{
		R: clamp255(v[0] * 255),
		G: clamp255(v[1] * 255),
		B: clamp255(v[2] * 255),
		A: 255,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns c as the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorFromStd converts any color.Color.
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// Hex formats c as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return fmt.Sprintf("{%d %d %d %d}", c.R, c.G, c.B, c.A)
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("raster: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("raster: invalid hex color %q: %w", s, err)
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
