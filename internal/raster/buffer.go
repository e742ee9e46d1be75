package raster

import (
	"image"

	"golang.org/x/image/draw"

	"pixel-engine/internal/mathutil"
)

// Resolution is a logical framebuffer size plus the on-screen size of one
// logical pixel.
type Resolution struct {
	Width, Height           int
	PixelWidth, PixelHeight int
}

// NewResolution returns a resolution with 1×1 pixels.
func NewResolution(w, h int) Resolution {
	return Resolution{Width: w, Height: h, PixelWidth: 1, PixelHeight: 1}
}

// WindowSize is the presented size: logical size times pixel size.
func (r Resolution) WindowSize() mathutil.Rect {
	return mathutil.Size(r.Width*max(r.PixelWidth, 1), r.Height*max(r.PixelHeight, 1))
}

// FrameBuffer owns a pixel slice and draws into it through an embedded
// Context.
type FrameBuffer struct {
	*Context
	Res Resolution
}

// NewFrameBuffer allocates a transparent framebuffer.
func NewFrameBuffer(res Resolution) *FrameBuffer {
	if res.PixelWidth <= 0 {
		res.PixelWidth = 1
	}
	if res.PixelHeight <= 0 {
		res.PixelHeight = 1
	}
	pixels := make([]Color, res.Width*res.Height)
	return &FrameBuffer{
		Context: NewContext(res.Width, res.Height, pixels),
		Res:     res,
	}
}

// PrepareFrame resets the buffer to transparent black before a frame is drawn.
func (fb *FrameBuffer) PrepareFrame() {
	fb.Clear(Transparent)
}

// Present returns the frame scaled up by the pixel size.
func (fb *FrameBuffer) Present() *image.NRGBA {
	img := fb.ToImage()
	if fb.Res.PixelWidth == 1 && fb.Res.PixelHeight == 1 {
		return img
	}
	ws := fb.Res.WindowSize()
	dst := image.NewNRGBA(image.Rect(0, 0, ws.Width, ws.Height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
