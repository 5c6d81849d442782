package regularize

import (
	"math"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/spatial"
)

// neighbors and strength are the fixed Graph-Cut constants this pipeline
// was tuned against.
const (
	neighbors = 12
	strength  = 0.2

	// probEpsilon substitutes for an exactly-zero class probability before
	// taking -ln; the argmax stage is unaffected because a 0-probability
	// class can never win.
	probEpsilon = 1e-30
)

// GraphCut regularizes labels tile by tile over the given tiling: a per-tile k-NN
// neighbour graph in tile-local coordinates, and α-expansion over a Potts
// smoothness energy, writing the result into base.Labels.
func GraphCut(eval classify.Evaluator, bank *feature.Bank, base *data.Base, numClasses int, idx *spatial.Tree, tiling *Tiling) {
	membership := tiling.membership()

	for _, tile := range tiling.Tiles {
		n := len(tile.Indices)
		if n == 0 {
			continue
		}

		unary := make([][]float64, numClasses)
		for c := range unary {
			unary[c] = make([]float64, n)
		}
		labels := make([]int, n)

		features := make([]float32, bank.NumFeatures())
		probs := make([]float32, numClasses)
		for j, baseIdx := range tile.Indices {
			bank.Gather(baseIdx, features)
			eval(features, probs)
			best, bestP := 0, float32(-1)
			for c := 0; c < numClasses; c++ {
				p := probs[c]
				if p <= 0 {
					p = probEpsilon
				}
				unary[c][j] = -math.Log(float64(p))
				if probs[c] > bestP {
					bestP, best = probs[c], c
				}
			}
			labels[j] = best
		}

		edges := buildTileEdges(tile, base, membership, idx)

		AlphaExpansion(unary, edges, strength, numClasses, labels)

		for j, baseIdx := range tile.Indices {
			base.Labels[baseIdx] = uint8(labels[j])
		}
	}
}

// tileEdge is one neighbour relation within a single tile, expressed in
// tile-local indices.
type tileEdge struct {
	a, b int
}

// buildTileEdges queries each tile point's neighbors(=12) nearest
// neighbours in the global kd-tree, and emits an edge strictly in
// tile-local coordinates iff the candidate neighbour belongs to the SAME
// tile and its local index differs from the query point's. Cross-tile
// neighbours are excluded entirely rather than mapped onto an unrelated
// local index. Duplicate or one-directional pairs are tolerated:
// α-expansion's min-cut graph treats every tileEdge independently.
func buildTileEdges(tile *Tile, base *data.Base, membership map[int]tilePos, idx *spatial.Tree) []tileEdge {
	var edges []tileEdge
	for j, baseIdx := range tile.Indices {
		p := base.Points[baseIdx]
		nn := idx.KNN(p.X, p.Y, p.Z, neighbors+1) // +1: the query point is its own nearest neighbour
		for _, cand := range nn {
			if cand.Index == baseIdx {
				continue
			}
			pos, ok := membership[cand.Index]
			if !ok || pos.tile != membership[baseIdx].tile {
				continue
			}
			if pos.local == j {
				continue
			}
			edges = append(edges, tileEdge{a: j, b: pos.local})
		}
	}
	return edges
}
