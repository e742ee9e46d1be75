package preview

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

func TestRenderLayout(t *testing.T) {
	tex := texture.New(3, 3)
	ctx := tex.Context()
	ctx.Draw(0, 0, raster.White)
	ctx.Draw(1, 1, raster.White)
	ctx.Draw(2, 2, raster.White)

	got := String(tex, Options{Profile: termenv.Ascii})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, []string{"▀▀ ", "  ▀"}, lines)
}

func TestRenderTrueColor(t *testing.T) {
	tex := texture.New(1, 2)
	tex.Context().Draw(0, 0, raster.Color{R: 255, A: 255})
	tex.Context().Draw(0, 1, raster.Color{B: 255, A: 255})

	got := String(tex, Options{Profile: termenv.TrueColor})
	assert.Contains(t, got, "38;2;255;0;0")
	assert.Contains(t, got, "48;2;0;0;255")
	assert.Contains(t, got, halfBlock)
}

func TestRenderBackground(t *testing.T) {
	tex := texture.New(1, 1)
	tex.Context().Draw(0, 0, raster.Color{R: 255, A: 255})

	got := String(tex, Options{Profile: termenv.TrueColor, Background: raster.Color{G: 255}})
	assert.Contains(t, got, "48;2;0;255;0", "missing row shows the background")
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", String(texture.New(0, 0), Options{}))
}
