package raster

// BlendMode selects how draw operations combine with existing pixels.
type BlendMode int

const (
	// BlendNone overwrites destination pixels.
	BlendNone BlendMode = iota
	// BlendNormal alpha-composites the source over the destination.
	BlendNormal
)

func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Blender combines a source color with the destination color it lands on.
type Blender func(src, dst Color) Color

// BlendSourceOver computes src.rgb*a + dst.rgb*(1-a) with a = src.A/255.
// The destination is treated as opaque, so the result always has A=255.
func BlendSourceOver(src, dst Color) Color {
	alpha := float64(src.A) / 255
	a := src.RGBVec()
	b := dst.RGBVec()
	return ColorFromRGBVec(a.Scale(alpha).Add(b.Scale(1 - alpha)))
}
