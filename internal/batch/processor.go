package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobwas/glob"

	"pixel-engine/internal/config"
	"pixel-engine/internal/logging"
	"pixel-engine/internal/postprocess"
	"pixel-engine/internal/texture"
)

// progressInterval is how often Run logs progress.
var progressInterval = 2 * time.Second

// Result holds the outcome of converting one input file.
type Result struct {
	Input   string // relative to the input dir
	Output  string // relative to the output dir
	Width   int
	Height  int
	Success bool
	Error   string
}

// Converter turns input images into prepared output files. It is safe for
// concurrent use.
type Converter struct {
	inputDir  string
	outputDir string
	ext       string
	exclude   []glob.Glob
	prep      postprocess.Options
}

// NewConverter validates cfg and derives the preparation steps from it.
// cfg must already be resolved.
func NewConverter(cfg *config.Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ext, _ := texture.FormatExt(cfg.Format)
	key, _ := cfg.Key()
	var exclude []glob.Glob
	for _, pattern := range cfg.Exclude {
		exclude = append(exclude, glob.MustCompile(pattern, '/'))
	}
	in, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &Converter{
		inputDir:  in,
		outputDir: out,
		ext:       ext,
		exclude:   exclude,
		prep: postprocess.Options{
			Key:          key,
			Despeckle:    cfg.Despeckle,
			Crop:         cfg.Crop,
			Flip:         cfg.Flip,
			MaxWidth:     cfg.MaxWidth,
			MaxHeight:    cfg.MaxHeight,
			Smooth:       cfg.Smooth,
			Scale:        cfg.Scale,
			CanvasWidth:  cfg.CanvasWidth,
			CanvasHeight: cfg.CanvasHeight,
		},
	}, nil
}

// Collect lists the importable, not excluded images under the input dir,
// relative to it and sorted. The output dir is skipped when it lies inside the input dir.
// Files that would produce the same output keep only the best-ranked
// source format.
func (c *Converter) Collect() ([]string, error) {
	best := make(map[string]string)
	err := filepath.WalkDir(c.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.inputDir && c.inOutput(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !texture.IsImage(path) {
			return nil
		}
		rel, err := filepath.Rel(c.inputDir, path)
		if err != nil {
			return err
		}
		if c.Excluded(rel) {
			return nil
		}
		out := c.outputName(rel)
		if prev, ok := best[out]; ok && texture.Rank(prev) <= texture.Rank(rel) {
			return nil
		}
		best[out] = rel
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", c.inputDir, err)
	}

	inputs := make([]string, 0, len(best))
	for _, rel := range best {
		inputs = append(inputs, rel)
	}
	sort.Strings(inputs)
	return inputs, nil
}

// Convert loads one input (relative to the input dir), prepares it and
// writes it to the output dir in the configured format.
func (c *Converter) Convert(rel string) Result {
	res := Result{Input: rel, Output: c.outputName(rel)}
	fail := func(err error) Result {
		logging.Source("Batch.Convert").Error("conversion failed", "input", rel, "err", err)
		res.Error = err.Error()
		return res
	}

	tex, err := texture.LoadImage(filepath.Join(c.inputDir, rel))
	if err != nil {
		return fail(err)
	}
	tex = postprocess.Standardize(tex, c.prep)

	dst := filepath.Join(c.outputDir, res.Output)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fail(err)
	}
	if err := tex.Export(dst); err != nil {
		return fail(err)
	}

	res.Width, res.Height = tex.Width(), tex.Height()
	res.Success = true
	return res
}

// Excluded reports whether rel matches one of the exclude patterns.
func (c *Converter) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range c.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (c *Converter) outputName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + c.ext
}

// inOutput reports whether path is the output dir or below it.
func (c *Converter) inOutput(path string) bool {
	rel, err := filepath.Rel(c.outputDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Run converts all inputs using a pool of workers. Inputs not started
// before ctx is cancelled are reported as failed with the context error.
func Run(ctx context.Context, conv *Converter, inputs []string, workers int) []Result {
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Source("Batch")

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total,
						"rate", fmt.Sprintf("%.1f/s", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	workers = max(workers, 1)
	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = conv.Convert(inputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	next := 0
send:
	for ; next < total; next++ {
		select {
		case itemChan <- next:
		case <-ctx.Done():
			break send
		}
	}
	close(itemChan)

	wg.Wait()
	close(done)

	for i := next; i < total; i++ {
		results[i] = Result{Input: inputs[i], Output: conv.outputName(inputs[i]), Error: ctx.Err().Error()}
	}

	log.Info("batch finished", "total", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
