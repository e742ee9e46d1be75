package font

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"pixel-engine/internal/logging"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// ErrBadAtlas reports a malformed hex atlas or .pixfont stream.
var ErrBadAtlas = errors.New("font: malformed glyph atlas")

// Both encodings are a sequence of records
//
//	[char][width][height][width*height intensity bytes]
//
// with intensities row-major. The hex form spells every byte as two
// uppercase hex digits and ignores whitespace; .pixfont stores raw bytes.

// ParseHexAtlas decodes a hex atlas.
func ParseHexAtlas(s string) (*PixelFont, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAtlas, err)
	}
	return parseRecords(raw)
}

// HexAtlas encodes all 256 slots, one record per line. Empty slots are
// written as 0×0 records.
func (f *PixelFont) HexAtlas() string {
	var sb strings.Builder
	for c := 0; c < 256; c++ {
		sb.WriteString(strings.ToUpper(hex.EncodeToString(f.record(byte(c)))))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ReadPixFont decodes a binary .pixfont stream.
func ReadPixFont(r io.Reader) (*PixelFont, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseRecords(raw)
}

// WritePixFont writes all 256 slots in binary form.
func (f *PixelFont) WritePixFont(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for c := 0; c < 256; c++ {
		if _, err := bw.Write(f.record(byte(c))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadPixFont reads a .pixfont file.
func LoadPixFont(path string) (*PixelFont, error) {
	file, err := os.Open(path)
	if err != nil {
		logging.Source("PixelFont.Load").Error("open failed", "path", path, "err", err)
		return nil, fmt.Errorf("font: open %s: %w", path, err)
	}
	defer file.Close()

	f, err := ReadPixFont(bufio.NewReader(file))
	if err != nil {
		logging.Source("PixelFont.Load").Error("decode failed", "path", path, "err", err)
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return f, nil
}

// SavePixFont writes the font to path as .pixfont.
func (f *PixelFont) SavePixFont(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("font: create %s: %w", path, err)
	}
	if err := f.WritePixFont(file); err != nil {
		file.Close()
		return fmt.Errorf("font: write %s: %w", path, err)
	}
	return file.Close()
}

func parseRecords(raw []byte) (*PixelFont, error) {
	f := New()
	for off := 0; off < len(raw); {
		if len(raw)-off < 3 {
			return nil, fmt.Errorf("%w: truncated record header at byte %d", ErrBadAtlas, off)
		}
		c, w, h := raw[off], int(raw[off+1]), int(raw[off+2])
		off += 3
		if len(raw)-off < w*h {
			return nil, fmt.Errorf("%w: glyph %#02x needs %d bytes, %d left", ErrBadAtlas, c, w*h, len(raw)-off)
		}
		if w == 0 || h == 0 {
			f.glyphs[c] = nil
			off += w * h
			continue
		}
		g := texture.New(w, h)
		for i, v := range raw[off : off+w*h] {
			g.Data()[i] = raster.Color{R: v, G: v, B: v, A: 255}
		}
		f.glyphs[c] = g
		off += w * h
	}
	return f, nil
}

// record encodes slot c; intensity is taken from the red channel.
func (f *PixelFont) record(c byte) []byte {
	g := f.glyphs[c]
	if g == nil || g.Width() == 0 || g.Height() == 0 || g.Width() > 255 || g.Height() > 255 {
		return []byte{c, 0, 0}
	}
	out := make([]byte, 0, 3+len(g.Data()))
	out = append(out, c, byte(g.Width()), byte(g.Height()))
	for _, p := range g.Data() {
		out = append(out, p.R)
	}
	return out
}
