package font

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixel-engine/internal/raster"
)

func TestParseHexAtlas(t *testing.T) {
	f, err := ParseHexAtlas("41 02 01\n 7f ff\r\n420000")
	require.NoError(t, err)

	g := f.Glyph('A')
	require.NotNil(t, g)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 1, g.Height())
	assert.Equal(t, []raster.Color{{R: 127, G: 127, B: 127, A: 255}, {R: 255, G: 255, B: 255, A: 255}}, g.Data())

	assert.Nil(t, f.Glyph('B'))
	assert.Equal(t, 7, f.Char('B').Width(), "empty slot falls back")
}

func TestParseHexAtlasErrors(t *testing.T) {
	for _, in := range []string{"4", "ZZ", "41", "410202FF", "41020"} {
		_, err := ParseHexAtlas(in)
		assert.ErrorIs(t, err, ErrBadAtlas, in)
	}
	f, err := ParseHexAtlas("  \n")
	require.NoError(t, err)
	assert.Nil(t, f.Glyph('A'))
}

func TestHexAtlasLaterRecordWins(t *testing.T) {
	f, err := ParseHexAtlas("410101FF 41010110")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x10), f.Glyph('A').Data()[0].R)
}

func TestPixFontRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WritePixFont(&buf))

	got, err := ReadPixFont(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().HexAtlas(), got.HexAtlas())

	path := filepath.Join(t.TempDir(), "out.pixfont")
	require.NoError(t, got.SavePixFont(path))
	loaded, err := LoadPixFont(path)
	require.NoError(t, err)
	assert.Equal(t, got.Char('Q').Data(), loaded.Char('Q').Data())
}

func TestPixFontErrors(t *testing.T) {
	_, err := ReadPixFont(bytes.NewReader([]byte{'A', 2, 2, 1, 2, 3}))
	assert.ErrorIs(t, err, ErrBadAtlas)

	_, err = LoadPixFont(filepath.Join(t.TempDir(), "missing.pixfont"))
	assert.Error(t, err)
}

func TestSetGlyphAndFallback(t *testing.T) {
	f := New()
	box := f.Char('x')
	assert.Equal(t, 7, box.Width())
	assert.Equal(t, 13, box.Height())
	assert.Equal(t, Key, box.Data()[0])
	assert.Equal(t, raster.White, box.Data()[2*7+1])

	f.SetFallback(nil)
	assert.Same(t, box, f.Char('x'))

	g, err := ParseHexAtlas("780101FF")
	require.NoError(t, err)
	f.SetGlyph('x', g.Glyph('x'))
	assert.Equal(t, 1, f.CharSize('x').Width)
	f.SetGlyph('x', nil)
	assert.Same(t, box, f.Char('x'))
}
