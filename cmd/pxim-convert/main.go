package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"pixel-engine/internal/batch"
	"pixel-engine/internal/config"
	"pixel-engine/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .toml config file")
	inputDir := flag.String("input", "", "Input directory (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/out)")
	format := flag.String("format", "", "Output format: pxim, png or webp (default: pxim)")
	scale := flag.Int("scale", 0, "Integer upscale factor (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "", "debug, info, warn, error or failure")
	logFile := flag.String("log-file", "", "Also append log records to this file")
	watch := flag.Bool("watch", false, "Keep running and convert files again when they change")
	testN := flag.Int("test", 0, "Convert only the first N inputs")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		Scale:     *scale,
		Workers:   *workers,
		LogLevel:  *logLevel,
		LogFile:   *logFile,
	})

	logOpts, err := cfg.LogOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	logging.SetLogger(logger)

	conv, err := batch.NewConverter(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs, err := conv.Collect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *testN > 0 && *testN < len(inputs) {
		inputs = inputs[:*testN]
	}

	fmt.Printf("PXIM converter → %s\n", cfg.Format)
	fmt.Printf("Inputs: %d, Workers: %d\n", len(inputs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(ctx, conv, inputs, cfg.Workers)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Converted: %d/%d\n", len(results)-failed, len(results))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			if shown == 20 {
				fmt.Printf("  ... and %d more\n", failed-shown)
				break
			}
			fmt.Printf("  %s: %s\n", r.Input, r.Error)
			shown++
		}
	}

	// Write manifest
	if len(results) > 0 {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		os.MkdirAll(cfg.OutputDir, 0755)
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if *watch {
		fmt.Printf("\nWatching %s (Ctrl+C to stop)\n", cfg.InputDir)
		err := batch.Watch(ctx, conv, func(r batch.Result) {
			if r.Success {
				fmt.Printf("  %s → %s (%dx%d)\n", r.Input, r.Output, r.Width, r.Height)
			} else {
				fmt.Printf("  %s: %s\n", r.Input, r.Error)
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if failed > 0 {
		return 1
	}
	return 0
}
