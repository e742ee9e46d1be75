package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// formatRank orders formats for the same stem; lower wins. PXIM is the
// native format, then formats that carry alpha.
var formatRank = map[string]int{
	".pxim": 0,
	".png":  1,
	".webp": 2,
	".tga":  3,
	".gif":  4,
	".tif":  5,
	".tiff": 5,
	".bmp":  6,
	".jpg":  7,
	".jpeg": 7,
}

// Index maps lowercase image stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for importable images. When
// several files share a stem the best-ranked format wins.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !IsImage(path) {
			return nil
		}
		stem := stemOf(path)
		if existing, ok := idx.entries[stem]; ok && Rank(existing) <= Rank(path) {
			return nil
		}
		idx.entries[stem] = path
		return nil
	})

	return idx
}

// ResolvePath returns the path for an image name, or ("", false). Any
// directory part and extension of name are ignored.
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[stemOf(strings.ReplaceAll(name, "\\", "/"))]
	return path, ok
}

// Paths returns every indexed path in sorted order.
func (idx *Index) Paths() []string {
	out := make([]string, 0, len(idx.entries))
	for _, p := range idx.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Rank orders importable files that share a stem; lower is preferred.
// Unknown extensions rank with PXIM.
func Rank(path string) int {
	return formatRank[strings.ToLower(filepath.Ext(path))]
}
