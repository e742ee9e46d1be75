package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"pixel-engine/internal/postprocess"
	"pixel-engine/internal/preview"
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

func main() {
	dir := flag.String("dir", "", "Resolve arguments as image names within this directory")
	width := flag.Int("width", -1, "Maximum width in terminal columns (-1: terminal width, 0: no limit)")
	smooth := flag.Bool("smooth", false, "Filter when shrinking instead of picking nearest pixels")
	bg := flag.String("bg", "#000000", "Background color under translucent pixels")
	ascii := flag.Bool("ascii", false, "Print the layout without colors")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pxim-show [flags] <file or name>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	background, err := raster.ParseHex(*bg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -bg: %v\n", err)
		os.Exit(2)
	}

	opts := preview.Options{Profile: termenv.EnvColorProfile(), Background: background}
	if *ascii {
		opts.Profile = termenv.Ascii
	}

	if *width < 0 {
		*width = 80
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
				*width = cols
			}
		}
	}

	var cache *texture.Cache
	if *dir != "" {
		idx := texture.BuildIndex(*dir)
		cache = texture.NewCache(idx)
		fmt.Printf("Images: %d indexed in %s\n", idx.Len(), *dir)
	}

	errors := 0
	for _, arg := range flag.Args() {
		var tex *texture.Texture
		var err error
		if cache != nil {
			tex = cache.Resolve(arg)
			if tex == nil {
				err = cache.Err(arg)
			}
		} else {
			tex, err = texture.LoadImage(arg)
		}
		if tex == nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", arg, err)
			errors++
			continue
		}

		shown := postprocess.Fit(tex, *width, 0, *smooth)
		fmt.Printf("%s (%dx%d)\n", arg, tex.Width(), tex.Height())
		if err := preview.Render(os.Stdout, shown, opts); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		os.Exit(1)
	}
}
