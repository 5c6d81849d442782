// Package scale builds the fixed resolution ladder that the Feature Bank
// evaluates features over. The decimation strategy — one representative
// point retained per grid cell — is adapted from GridNode's cell-keyed
// decimation (internal/octree/grid_tree/grid_node.go's
// cells map[gridIndex]*gridCell), generalized from an octree's per-level
// cell size to a flat ladder of r_k = startResolution * 2^k resolutions.
package scale

import (
	"math"

	"github.com/geolas/pointclassify/internal/data"
)

// Scale is a downsampled view of a PointSet's Base working set at one
// resolution: Indices holds the Base indices retained at this level.
type Scale struct {
	Resolution float64
	Indices    []int
}

type gridIndex struct {
	x, y, z int64
}

func dimIndex(v, cellSize float64) int64 {
	return int64(math.Floor(v / cellSize))
}

// decimate keeps one representative Base index per grid cell of the given
// size, in input order (the first point to land in a cell wins), mirroring
// GridNode.getPointGridCell's "first writer wins" cell occupancy rule.
func decimate(points []data.Point, indices []int, cellSize float64) []int {
	if cellSize <= 0 {
		out := make([]int, len(indices))
		copy(out, indices)
		return out
	}
	cells := make(map[gridIndex]int, len(indices))
	order := make([]gridIndex, 0, len(indices))
	for _, i := range indices {
		p := points[i]
		key := gridIndex{dimIndex(p.X, cellSize), dimIndex(p.Y, cellSize), dimIndex(p.Z, cellSize)}
		if _, ok := cells[key]; !ok {
			cells[key] = i
			order = append(order, key)
		}
	}
	out := make([]int, len(order))
	for k, key := range order {
		out[k] = cells[key]
	}
	return out
}

// BuildLadder produces an ordered ladder of numScales Scales, each a
// successively coarser decimation of base, with resolution
// r_k = startResolution * 2^k.
func BuildLadder(base []data.Point, startResolution float64, numScales int) []*Scale {
	if numScales <= 0 {
		return nil
	}
	allIdx := make([]int, len(base))
	for i := range base {
		allIdx[i] = i
	}

	ladder := make([]*Scale, numScales)
	prevIdx := allIdx
	for k := 0; k < numScales; k++ {
		resolution := startResolution * math.Pow(2, float64(k))
		idx := decimate(base, prevIdx, resolution)
		ladder[k] = &Scale{Resolution: resolution, Indices: idx}
		prevIdx = idx
	}
	return ladder
}
