package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"pixel-engine/internal/texture"
)

// Downsample shrinks t by an integer factor with premultiplied-alpha-aware
// CatmullRom filtering, which avoids dark fringes at transparent edges.
// Used to turn a supersampled render into its final size.
func Downsample(t *texture.Texture, factor int) *texture.Texture {
	if factor <= 1 || t.Width() == 0 || t.Height() == 0 {
		return t
	}
	dw, dh := max(t.Width()/factor, 1), max(t.Height()/factor, 1)

	// Premultiply alpha
	premul := image.NewRGBA(image.Rect(0, 0, t.Width(), t.Height()))
	for i, p := range t.Data() {
		a := float64(p.A) / 255.0
		premul.Pix[i*4] = uint8(float64(p.R)*a + 0.5)
		premul.Pix[i*4+1] = uint8(float64(p.G)*a + 0.5)
		premul.Pix[i*4+2] = uint8(float64(p.B)*a + 0.5)
		premul.Pix[i*4+3] = p.A
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	out := texture.New(dw, dh)
	px := out.Data()
	for i := range px {
		a := float64(dst.Pix[i*4+3])
		if a > 1 {
			inv := 255.0 / a
			px[i].R = clamp8(float64(dst.Pix[i*4]) * inv)
			px[i].G = clamp8(float64(dst.Pix[i*4+1]) * inv)
			px[i].B = clamp8(float64(dst.Pix[i*4+2]) * inv)
		}
		px[i].A = dst.Pix[i*4+3]
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
