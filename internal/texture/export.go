package texture

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// SavePNG writes the texture as a PNG file.
func (t *Texture) SavePNG(path string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, t.ToImage()); err != nil {
		return fmt.Errorf("texture: encode png %s: %w", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("texture: write %s: %w", path, err)
	}
	return nil
}

// SaveWebP writes the texture as a lossless WebP file.
func (t *Texture) SaveWebP(path string) error {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, t.ToImage(), nil); err != nil {
		return fmt.Errorf("texture: encode webp %s: %w", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("texture: write %s: %w", path, err)
	}
	return nil
}

// Export saves in the format named by the file extension: .pxim, .png
// or .webp.
func (t *Texture) Export(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pxim":
		return t.Save(path)
	case ".png":
		return t.SavePNG(path)
	case ".webp":
		return t.SaveWebP(path)
	default:
		return fmt.Errorf("texture: export %s: %w", path, ErrUnsupported)
	}
}

// FormatExt maps an output format name to its file extension.
func FormatExt(format string) (string, error) {
	switch strings.ToLower(format) {
	case "pxim":
		return ".pxim", nil
	case "png":
		return ".png", nil
	case "webp":
		return ".webp", nil
	}
	return "", fmt.Errorf("texture: unknown output format %q", format)
}
