package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"pixel-engine/internal/postprocess"
	"pixel-engine/internal/texture"
)

func main() {
	headerOnly := flag.Bool("header", false, "Only read the PXIM header, do not decode pixels")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pxim-info [-header] <file>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	errors := 0
	for _, path := range flag.Args() {
		if err := inspect(path, *headerOnly); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		os.Exit(1)
	}
}

func inspect(path string, headerOnly bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	f.Close()
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read %s: %w", path, err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	kind := texture.Kind(head[:n], path)
	if kind == "" {
		return fmt.Errorf("%s: %w", path, texture.ErrUnsupported)
	}

	fmt.Printf("=== %s ===\n", path)
	fmt.Printf("  Format: %s\n", kind)
	fmt.Printf("  File size: %s\n", humanize.Bytes(uint64(fi.Size())))

	if kind == "pxim" {
		h, err := texture.ReadFileHeader(path)
		if err != nil {
			return err
		}
		raw := int64(h.Width) * int64(h.Height) * 4
		fmt.Printf("  Header: %dx%d\n", h.Width, h.Height)
		if raw > 0 {
			fmt.Printf("  Raw pixels: %s (stored at %.1f%%)\n", humanize.Bytes(uint64(raw)), 100*float64(fi.Size())/float64(raw))
		}
		if headerOnly {
			return nil
		}
	}

	tex, err := texture.LoadImage(path)
	if err != nil {
		return err
	}
	opaque, translucent := 0, 0
	for _, p := range tex.Data() {
		switch {
		case p.A == 255:
			opaque++
		case p.A > 0:
			translucent++
		}
	}
	b := postprocess.AlphaBounds(tex)
	fmt.Printf("  Size: %dx%d\n", tex.Width(), tex.Height())
	fmt.Printf("  Opaque: %s, translucent: %s, transparent: %s\n",
		humanize.Comma(int64(opaque)), humanize.Comma(int64(translucent)),
		humanize.Comma(int64(len(tex.Data())-opaque-translucent)))
	if b.Empty() {
		fmt.Printf("  Content bounds: none\n")
	} else {
		fmt.Printf("  Content bounds: (%d,%d) %dx%d\n", b.X, b.Y, b.Width, b.Height)
	}
	return nil
}
