package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupported is returned for files that are not a known image format.
var ErrUnsupported = errors.New("texture: unsupported image format")

// TypePXIM lets filetype recognise PXIM files by their magic.
var TypePXIM = filetype.NewType("pxim", "image/x-pxim")

func init() {
	filetype.AddMatcher(TypePXIM, func(buf []byte) bool {
		return len(buf) >= len(magic) && bytes.Equal(buf[:len(magic)], magic[:])
	})
}

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by filetype extension. TGA has no magic and is picked
// by file extension instead.
var decoders = map[string]decodeFunc{
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": nativewebp.Decode,
	"tga":  tga.Decode,
}

// Kind sniffs the format of an encoded image: "pxim", "png", "jpg", "gif",
// "bmp", "tif", "webp" or "tga". Unknown content yields "".
func Kind(head []byte, name string) string {
	kind, _ := filetype.Match(head)
	switch {
	case kind == TypePXIM:
		return "pxim"
	case kind != filetype.Unknown:
		if _, ok := decoders[kind.Extension]; ok {
			return kind.Extension
		}
		return ""
	case strings.EqualFold(filepath.Ext(name), ".tga"):
		return "tga"
	}
	return ""
}

// IsImage reports whether name has the extension of an importable format.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pxim", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga":
		return true
	}
	return false
}

// LoadImage decodes any supported image file into a new texture. The
// decoded pixels are always copied into memory owned by the texture.
func LoadImage(path string) (*Texture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("texture: read %s: %w", path, ErrEmptyFile)
	}
	return DecodeImage(raw, path)
}

// DecodeImage decodes encoded image bytes. name is only consulted for
// formats without a signature and for error messages.
func DecodeImage(raw []byte, name string) (*Texture, error) {
	kind := Kind(raw, name)
	if kind == "pxim" {
		t, err := Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("texture: decode %s: %w", name, err)
		}
		return t, nil
	}

	dec, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("texture: decode %s: %w", name, ErrUnsupported)
	}
	img, err := dec(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s (%s): %w", name, kind, err)
	}
	return FromImage(img), nil
}

// MustLoadImage is LoadImage for setup code that cannot continue without
// the image. It panics on failure.
func MustLoadImage(path string) *Texture {
	t, err := LoadImage(path)
	if err != nil {
		panic(err)
	}
	return t
}

// toNRGBA converts any image to NRGBA with bounds starting at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.RGBA:
		// draw converts premultiplied sources correctly.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
