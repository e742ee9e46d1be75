package texture

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"pixel-engine/internal/logging"
)

// PXIM layout: 'P','X','I','M', u32 BE width, u32 BE height, then a zlib
// stream of width*height*4 RGBA bytes.
const (
	headerSize = 12
	maxPixels  = 1 << 30
)

var magic = [4]byte{'P', 'X', 'I', 'M'}

var (
	ErrNotFound     = errors.New("texture: file not found")
	ErrEmptyFile    = errors.New("texture: file is empty")
	ErrBadMagic     = errors.New("texture: not a PXIM file")
	ErrTruncated    = errors.New("texture: truncated header")
	ErrDecompress   = errors.New("texture: decompression failed")
	ErrSizeMismatch = errors.New("texture: payload does not match dimensions")
	ErrTooLarge     = errors.New("texture: dimensions too large")
)

// Header is the fixed part of a PXIM file.
type Header struct {
	Width  uint32
	Height uint32
}

// ReadHeader reads and validates magic and dimensions only.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == io.EOF:
		return Header{}, ErrEmptyFile
	case err == io.ErrUnexpectedEOF:
		if n >= len(magic) && !bytes.Equal(buf[:4], magic[:]) {
			return Header{}, ErrBadMagic
		}
		return Header{}, ErrTruncated
	case err != nil:
		return Header{}, err
	}
	if !bytes.Equal(buf[:4], magic[:]) {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Width:  binary.BigEndian.Uint32(buf[4:8]),
		Height: binary.BigEndian.Uint32(buf[8:12]),
	}
	if uint64(h.Width)*uint64(h.Height) > maxPixels {
		return h, fmt.Errorf("%w: %dx%d", ErrTooLarge, h.Width, h.Height)
	}
	return h, nil
}

// Decode reads a complete PXIM stream.
func Decode(r io.Reader) (*Texture, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer zr.Close()

	// Read one byte past the expected size so trailing data is detected
	// without trusting the header for the allocation.
	want := int64(h.Width) * int64(h.Height) * 4
	raw, err := io.ReadAll(io.LimitReader(zr, want+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if int64(len(raw)) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(raw), want)
	}

	t := New(int(h.Width), int(h.Height))
	getPixels(t.pixels, raw)
	return t, nil
}

// Encode writes the texture as a PXIM stream.
func (t *Texture) Encode(w io.Writer) error {
	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	binary.BigEndian.PutUint32(hdr[4:8], uint32(t.width))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(t.height))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	raw := make([]byte, len(t.pixels)*4)
	putPixels(raw, t.pixels)

	zw := zlib.NewWriter(w)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Save encodes the texture and writes it to path. The data goes to a
// temporary file in the same directory first, so a failed save never
// leaves a partial file at path.
func (t *Texture) Save(path string) error {
	log := logging.Source("Texture.Save")

	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		log.Error("encode failed", "path", path, "err", err)
		return fmt.Errorf("texture: encode %s: %w", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		log.Error("write failed", "path", path, "err", err)
		return fmt.Errorf("texture: save %s: %w", path, err)
	}
	log.Debug("saved", "path", path, "width", t.width, "height", t.height, "bytes", buf.Len())
	return nil
}

// Load replaces the texture with the contents of a PXIM file. On any
// error the texture is left untouched.
func (t *Texture) Load(path string) error {
	log := logging.Source("Texture.Load")

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		log.Error("read failed", "path", path, "err", err)
		return fmt.Errorf("texture: load %s: %w", path, err)
	}
	if len(raw) == 0 {
		log.Error("empty file", "path", path)
		return fmt.Errorf("texture: load %s: %w", path, ErrEmptyFile)
	}

	loaded, err := Decode(bytes.NewReader(raw))
	if err != nil {
		log.Error("decode failed", "path", path, "err", err)
		return fmt.Errorf("texture: load %s: %w", path, err)
	}
	t.replace(loaded)
	log.Debug("loaded", "path", path, "width", t.width, "height", t.height)
	return nil
}

// Open reads a PXIM file into a new texture.
func Open(path string) (*Texture, error) {
	t := &Texture{}
	if err := t.Load(path); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadFileHeader reads only the header of the PXIM file at path.
func ReadFileHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return Header{}, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	h, err := ReadHeader(bufio.NewReader(f))
	if err != nil {
		return h, fmt.Errorf("texture: read header %s: %w", path, err)
	}
	return h, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
