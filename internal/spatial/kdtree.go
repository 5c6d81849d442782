// Package spatial provides the 3D spatial index consumed by the Local-Smooth
// and Graph-Cut regularizers (radius and k-nearest-neighbour search), built
// on top of gonum.org/v1/gonum/spatial/kdtree.
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is one hit of a radius or k-NN search: the original index of the
// neighbouring point (as supplied to NewTree) and its distance to the query.
type Neighbor struct {
	Index int
	Dist  float64
}

// coordKey makes a point position usable as a map key so that a
// kdtree.Point returned by a search can be resolved back to the caller's
// original point index even though kdtree.New reorders its input slice in
// place. Points sharing an exact position are geometrically interchangeable
// for this purpose, so any one of their original indices is a valid answer.
type coordKey [3]float64

// Tree is a read-only, concurrent-read-safe 3D spatial index over a fixed
// set of points. It must be built once, before any parallel readers start.
type Tree struct {
	tree   *kdtree.Tree
	lookup map[coordKey][]int
}

// NewTree builds a spatial index over the given point coordinates. index i
// of coords is the "original index" returned by Radius/KNN searches.
func NewTree(coords [][3]float64) *Tree {
	pts := make(kdtree.Points, len(coords))
	lookup := make(map[coordKey][]int, len(coords))
	for i, c := range coords {
		pts[i] = kdtree.Point{c[0], c[1], c[2]}
		key := coordKey(c)
		lookup[key] = append(lookup[key], i)
	}
	t := kdtree.New(pts, true)
	return &Tree{tree: t, lookup: lookup}
}

func (t *Tree) resolve(p kdtree.Point) int {
	key := coordKey{p[0], p[1], p[2]}
	ids := t.lookup[key]
	if len(ids) == 0 {
		return -1
	}
	return ids[0]
}

// kNearestKeeper implements kdtree.Keeper, retaining the k closest
// candidates seen so far.
type kNearestKeeper struct {
	k     int
	items []kdtree.ComparableDist
}

func (ks *kNearestKeeper) Keep(c kdtree.ComparableDist) {
	ks.items = append(ks.items, c)
	sort.Slice(ks.items, func(i, j int) bool { return ks.items[i].Dist < ks.items[j].Dist })
	if len(ks.items) > ks.k {
		ks.items = ks.items[:ks.k]
	}
}

// Max reports the current pruning bound. While fewer than k candidates have
// been kept, the bound stays at maxFloat so the search keeps exploring; the
// Comparable of the last kept item (when any) is carried along purely so
// NearestSet's sentinel-removal check (which fires on a nil Comparable)
// never mistakes an under-full result set for a sentinel to be dropped.
func (ks *kNearestKeeper) Max() kdtree.ComparableDist {
	if len(ks.items) < ks.k {
		if len(ks.items) == 0 {
			return kdtree.ComparableDist{Dist: maxFloat}
		}
		return kdtree.ComparableDist{Comparable: ks.items[len(ks.items)-1].Comparable, Dist: maxFloat}
	}
	return ks.items[len(ks.items)-1]
}

func (ks *kNearestKeeper) Len() int { return len(ks.items) }

func (ks *kNearestKeeper) Less(i, j int) bool { return ks.items[i].Dist < ks.items[j].Dist }

func (ks *kNearestKeeper) Swap(i, j int) { ks.items[i], ks.items[j] = ks.items[j], ks.items[i] }

func (ks *kNearestKeeper) Push(x interface{}) {
	ks.items = append(ks.items, x.(kdtree.ComparableDist))
}

func (ks *kNearestKeeper) Pop() interface{} {
	old := ks.items
	n := len(old)
	item := old[n-1]
	ks.items = old[:n-1]
	return item
}

// radiusKeeper implements kdtree.Keeper, retaining every candidate within a
// fixed radius. radiusSq is the squared radius: kdtree.Point.Distance (and
// hence every ComparableDist.Dist seen here and used for pruning during the
// search) is a squared Euclidean distance, so the bound must be squared too
// to compare like with like.
type radiusKeeper struct {
	radiusSq float64
	items    []kdtree.ComparableDist
}

func (rk *radiusKeeper) Keep(c kdtree.ComparableDist) {
	if c.Dist <= rk.radiusSq {
		rk.items = append(rk.items, c)
	}
}

// Max reports the fixed radius bound. The Comparable of the last kept item
// (when any) is carried along purely so NearestSet's sentinel-removal check
// (which fires on a nil Comparable) never mistakes a real result for a
// sentinel to be dropped.
func (rk *radiusKeeper) Max() kdtree.ComparableDist {
	if len(rk.items) == 0 {
		return kdtree.ComparableDist{Dist: rk.radiusSq}
	}
	return kdtree.ComparableDist{Comparable: rk.items[len(rk.items)-1].Comparable, Dist: rk.radiusSq}
}

func (rk *radiusKeeper) Len() int { return len(rk.items) }

func (rk *radiusKeeper) Less(i, j int) bool { return rk.items[i].Dist < rk.items[j].Dist }

func (rk *radiusKeeper) Swap(i, j int) { rk.items[i], rk.items[j] = rk.items[j], rk.items[i] }

func (rk *radiusKeeper) Push(x interface{}) {
	rk.items = append(rk.items, x.(kdtree.ComparableDist))
}

func (rk *radiusKeeper) Pop() interface{} {
	old := rk.items
	n := len(old)
	item := old[n-1]
	rk.items = old[:n-1]
	return item
}

const maxFloat = 1.7976931348623157e+308

// KNN returns the k nearest neighbours of (x,y,z), sorted by ascending
// distance. If the query point is itself part of the index it is included,
// at distance 0.
func (t *Tree) KNN(x, y, z float64, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	keeper := &kNearestKeeper{k: k}
	t.tree.NearestSet(keeper, kdtree.Point{x, y, z})

	out := make([]Neighbor, 0, len(keeper.items))
	for _, cd := range keeper.items {
		p := cd.Comparable.(kdtree.Point)
		idx := t.resolve(p)
		if idx < 0 {
			continue
		}
		out = append(out, Neighbor{Index: idx, Dist: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}

// Radius returns every neighbour of (x,y,z) within r, sorted by ascending
// distance.
func (t *Tree) Radius(x, y, z float64, r float64) []Neighbor {
	if r <= 0 {
		return nil
	}
	keeper := &radiusKeeper{radiusSq: r * r}
	t.tree.NearestSet(keeper, kdtree.Point{x, y, z})

	out := make([]Neighbor, 0, len(keeper.items))
	for _, cd := range keeper.items {
		p := cd.Comparable.(kdtree.Point)
		idx := t.resolve(p)
		if idx < 0 {
			continue
		}
		out = append(out, Neighbor{Index: idx, Dist: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}
