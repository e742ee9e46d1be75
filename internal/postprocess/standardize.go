package postprocess

import (
	"pixel-engine/internal/mathutil"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// Options selects the preparation steps applied on import. Zero values
// disable a step.
type Options struct {
	Key          *raster.Color // pixels of this color become transparent
	Despeckle    int           // drop opaque clusters smaller than this many pixels
	Crop         bool          // trim fully transparent borders
	Flip         string        // "h", "v" or "hv"
	MaxWidth     int
	MaxHeight    int
	Smooth       bool // filtered instead of nearest-neighbour shrinking
	Scale        int  // integer pixel-art upscale
	CanvasWidth  int
	CanvasHeight int
}

// Standardize runs the enabled steps in a fixed order: key, despeckle,
// crop, flip, fit, scale, canvas. t itself is never modified.
func Standardize(t *texture.Texture, o Options) *texture.Texture {
	out := t
	if o.Key != nil {
		out = KeyOut(out, *o.Key)
	}
	if o.Despeckle > 0 {
		out = Despeckle(out, o.Despeckle)
	}
	if o.Crop {
		out = CropAlpha(out)
	}
	if o.Flip != "" {
		out = Flip(out, o.Flip)
	}
	if o.MaxWidth > 0 || o.MaxHeight > 0 {
		out = Fit(out, o.MaxWidth, o.MaxHeight, o.Smooth)
	}
	if o.Scale > 1 {
		out = Upscale(out, o.Scale)
	}
	if o.CanvasWidth > 0 && o.CanvasHeight > 0 {
		out = Center(out, o.CanvasWidth, o.CanvasHeight)
	}
	return out
}

// KeyOut returns a copy of t with every pixel equal to key made transparent.
func KeyOut(t *texture.Texture, key raster.Color) *texture.Texture {
	out := t.Clone()
	for i, p := range out.Data() {
		if p == key {
			out.Data()[i] = raster.Transparent
		}
	}
	return out
}

// AlphaBounds returns the smallest rect holding every pixel with A > 0,
// or an empty rect when the texture is fully transparent.
func AlphaBounds(t *texture.Texture) mathutil.Rect {
	w, h := t.Width(), t.Height()
	minX, minY := w, h
	maxX, maxY := -1, -1
	for i, p := range t.Data() {
		if p.A == 0 {
			continue
		}
		x, y := i%w, i/w
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	if maxX < 0 {
		return mathutil.Rect{}
	}
	return mathutil.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// CropAlpha trims fully transparent borders. A fully transparent texture
// is returned unchanged.
func CropAlpha(t *texture.Texture) *texture.Texture {
	r := AlphaBounds(t)
	if r.Empty() || r == mathutil.Size(t.Width(), t.Height()) {
		return t
	}
	out := texture.New(r.Width, r.Height)
	out.Context().BlitRegion(0, 0, t, r)
	return out
}

// Upscale enlarges t by an integer factor with hard pixel edges.
func Upscale(t *texture.Texture, factor int) *texture.Texture {
	if factor <= 1 {
		return t
	}
	out := texture.New(t.Width()*factor, t.Height()*factor)
	out.Context().BlitUpscaled(0, 0, t, factor, factor)
	return out
}

// Center places t in the middle of a transparent w×h canvas. Parts that
// do not fit are clipped.
func Center(t *texture.Texture, w, h int) *texture.Texture {
	out := texture.New(w, h)
	out.Context().Blit((w-t.Width())/2, (h-t.Height())/2, t)
	return out
}
