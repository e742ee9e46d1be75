package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pixel-engine/internal/font"
	"pixel-engine/internal/logging"
	"pixel-engine/internal/mathutil"
	"pixel-engine/internal/postprocess"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

var (
	sky    = raster.Color{R: 24, G: 28, B: 48, A: 255}
	grass  = raster.Color{R: 46, G: 140, B: 60, A: 255}
	sun    = raster.Color{R: 250, G: 210, B: 70, A: 255}
	roof   = raster.Color{R: 170, G: 50, B: 40, A: 255}
	wall   = raster.Color{R: 210, G: 190, B: 150, A: 255}
	glass  = raster.Color{R: 120, G: 200, B: 255, A: 140}
	shadow = raster.Color{A: 90}
)

func main() {
	out := flag.String("out", "demo.png", "Comma-separated output files (.png, .webp or .pxim)")
	width := flag.Int("width", 160, "Logical width")
	height := flag.Int("height", 120, "Logical height")
	pixel := flag.Int("pixel", 4, "Size of one logical pixel in the output")
	ss := flag.Int("ss", 4, "Supersampling factor for the smooth badge")
	fontPath := flag.String("font", "", "Optional .pixfont or hex atlas file")
	sprite := flag.String("sprite", "", "Optional image drawn into the scene")
	verbose := flag.Bool("v", false, "Log debug output to stderr")
	flag.Parse()

	if *verbose {
		logger, _, err := logging.New(logging.Options{Level: slog.LevelDebug})
		if err == nil {
			logging.SetLogger(logger)
		}
	}

	f, err := loadFont(*fontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading font: %v\n", err)
		os.Exit(1)
	}

	var spr *texture.Texture
	if *sprite != "" {
		spr = texture.MustLoadImage(*sprite)
	} else {
		spr = checker(16, 16)
	}

	fb := raster.NewFrameBuffer(raster.Resolution{
		Width: *width, Height: *height, PixelWidth: *pixel, PixelHeight: *pixel,
	})
	drawScene(fb, f, spr, *ss)

	frame := texture.FromImage(fb.Present())
	for _, path := range strings.Split(*out, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if dir := filepath.Dir(path); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		if err := frame.Export(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%dx%d)\n", path, frame.Width(), frame.Height())
	}
}

func loadFont(path string) (*font.PixelFont, error) {
	if path == "" {
		return font.Default(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".pixfont") {
		return font.LoadPixFont(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return font.ParseHexAtlas(string(data))
}

func drawScene(fb *raster.FrameBuffer, f *font.PixelFont, spr *texture.Texture, ss int) {
	w, h := fb.Width(), fb.Height()
	horizon := h * 2 / 3

	fb.PrepareFrame()
	fb.SetBlending(raster.BlendNone)
	fb.Clear(sky)
	fb.FillRect(0, horizon, w, h-horizon, grass)

	// Stars
	for i := 0; i < 24; i++ {
		fb.Draw((i*37+11)%w, (i*23+5)%max(horizon-10, 1), raster.White)
	}

	fb.FillCircle(w-28, 22, 12, sun)
	fb.DrawCircle(w-28, 22, 15, sun)

	// House
	hx, hy := 20, horizon-30
	fb.FillRect(hx, hy, 40, 30, wall)
	fb.DrawRect(hx, hy, 40, 30, raster.Black)
	fb.FillTriangle(hx-4, hy, hx+44, hy, hx+20, hy-20, roof)
	fb.DrawTriangle(hx-4, hy, hx+44, hy, hx+20, hy-20, raster.Black)
	fb.FillRect(hx+16, hy+14, 9, 16, raster.Black)

	// Fence
	for x := 70; x < w-6; x += 6 {
		fb.DrawLine(x, horizon-8, x, horizon, wall)
	}
	fb.DrawLine(68, horizon-5, w-6, horizon-5, wall)

	fb.SetBlending(raster.BlendNormal)
	fb.FillRect(hx+4, hy+6, 10, 8, glass)
	fb.FillRect(hx+28, hy+6, 8, 8, glass)
	fb.FillRect(hx+40, horizon, 14, 6, shadow)

	// Sprites: plain, keyed, one quadrant, doubled
	sy := horizon + 6
	fb.Blit(74, sy, spr)
	fb.BlitCutout(94, sy, spr, raster.White)
	q := spr.Width() / 2
	fb.BlitRegion(114, sy, spr, mathutil.Rect{X: q, Y: q, Width: q, Height: q})
	fb.BlitUpscaled(w-34, sy-8, spr, 2, 2)

	fb.Blit(w-60, horizon+8, badge(ss))

	title := "pixel-engine"
	m := f.Measure(title)
	font.DrawText(fb.Context, (w-m.Width)/2+1, 5, title, f)
	font.DrawTextColor(fb.Context, (w-m.Width)/2, 4, title, f, sun)
	font.DrawTextColor(fb.Context, 4, h-f.LineHeight()-2, fmt.Sprintf("%dx%d\tblend:%s", w, h, fb.Blending()), f, raster.White)
}

// badge renders a circle at ss× size and shrinks it so its edge is smooth.
func badge(ss int) *texture.Texture {
	ss = max(ss, 1)
	size := 20 * ss
	big := texture.New(size, size)
	ctx := big.Context()
	ctx.FillCircle(size/2, size/2, size/2-1, roof)
	ctx.FillCircle(size/2, size/2, size/3, sun)
	return postprocess.Downsample(big, ss)
}

func checker(w, h int) *texture.Texture {
	t := texture.New(w, h)
	ctx := t.Context()
	ctx.Clear(raster.White)
	for y := 0; y < h; y += 4 {
		for x := (y / 4 % 2) * 4; x < w; x += 8 {
			ctx.FillRect(x, y, 4, 4, roof)
		}
	}
	return t
}
