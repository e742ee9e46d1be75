package postprocess

import (
	"pixel-engine/internal/raster"
	"pixel-engine/internal/texture"
)

// Despeckle clears 8-connected groups of non-transparent pixels smaller
// than minPixels. Stray specks left by keying or scanning disappear
// while real shapes survive. t itself is never modified.
func Despeckle(t *texture.Texture, minPixels int) *texture.Texture {
	w, h := t.Width(), t.Height()
	src := t.Data()
	ctx := t.Context()

	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var compSizes []int

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)

	for start, p := range src {
		if p.A == 0 || labels[start] >= 0 {
			continue
		}

		// BFS from this pixel
		id := len(compSizes)
		queue = append(queue[:0], start)
		labels[start] = id
		size := 0
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cx, cy := ctx.Coordinate(curr)
			for d := 0; d < 8; d++ {
				ni, ok := ctx.Index(cx+dx[d], cy+dy[d])
				if ok && src[ni].A > 0 && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		compSizes = append(compSizes, size)
	}

	out := t.Clone()
	if len(compSizes) == 0 {
		return out
	}
	for i, l := range labels {
		if l >= 0 && compSizes[l] < minPixels {
			out.Data()[i] = raster.Transparent
		}
	}
	return out
}
