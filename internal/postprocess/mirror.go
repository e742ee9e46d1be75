package postprocess

import (
	"strings"

	"github.com/anthonynsimon/bild/transform"

	"pixel-engine/internal/texture"
)

// Fit shrinks t so it fits within maxW×maxH, keeping the aspect ratio.
// A zero bound is unconstrained. Textures already inside the bounds are
// returned unchanged. smooth selects linear filtering; otherwise pixels
// are picked nearest-neighbour, which keeps pixel art crisp.
func Fit(t *texture.Texture, maxW, maxH int, smooth bool) *texture.Texture {
	w, h := t.Width(), t.Height()
	if w == 0 || h == 0 {
		return t
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		scale = min(scale, float64(maxH)/float64(h))
	}
	if scale >= 1 {
		return t
	}
	nw := max(int(float64(w)*scale+0.5), 1)
	nh := max(int(float64(h)*scale+0.5), 1)
	if maxW > 0 {
		nw = min(nw, maxW)
	}
	if maxH > 0 {
		nh = min(nh, maxH)
	}

	filter := transform.NearestNeighbor
	if smooth {
		filter = transform.Linear
	}
	return texture.FromImage(transform.Resize(t.ToImage(), nw, nh, filter))
}

// Flip mirrors t. axis is "h" (left-right), "v" (top-bottom) or "hv".
// Unknown axes return t unchanged.
func Flip(t *texture.Texture, axis string) *texture.Texture {
	axis = strings.ToLower(axis)
	fh := axis == "h" || axis == "hv" || axis == "vh"
	fv := axis == "v" || axis == "hv" || axis == "vh"
	if !fh && !fv {
		return t
	}
	w, h := t.Width(), t.Height()
	out := texture.New(w, h)
	src, dst := t.Data(), out.Data()
	for y := 0; y < h; y++ {
		sy := y
		if fv {
			sy = h - 1 - y
		}
		for x := 0; x < w; x++ {
			sx := x
			if fh {
				sx = w - 1 - x
			}
			dst[y*w+x] = src[sy*w+sx]
		}
	}
	return out
}
