// Package regularize implements the two spatial label-regularization
// strategies: Local-Smooth probabilistic averaging, and tiled Graph-Cut
// α-expansion energy minimization.
package regularize

import (
	"math"

	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/geometry"
	"github.com/paulmach/orb"
)

// minSubdivisions is the fixed constant the Graph-Cut tiling formula was
// tuned against: a footprint with non-zero extent on both X and Y always
// gets at least this many tiles; a footprint that is flat on either axis
// gets a single tile.
const minSubdivisions = 4

// Tile is one rectangular footprint cell of the Graph-Cut spatial tiling,
// with the Base indices of the points it owns, in tile-local order.
type Tile struct {
	Bound   orb.Bound
	Indices []int // Base indices, position j in this slice is "local index j"
}

// Tiling assigns every point in box to the first tile (row-major, x then y)
// whose bound contains it.
type Tiling struct {
	Tiles    []*Tile
	nbX, nbY int
	box      geometry.BoundingBox
}

// BuildTiling computes nbX/nbY from the bounding box footprint, then
// buckets every point of points into its owning tile.
func BuildTiling(box geometry.BoundingBox, points []data.Point) *Tiling {
	dx, dy := box.Dx(), box.Dy()
	nbX, nbY := tileCounts(dx, dy)

	t := &Tiling{nbX: nbX, nbY: nbY, box: box}
	t.Tiles = make([]*Tile, nbX*nbY)
	cellW, cellH := dx/float64(nbX), dy/float64(nbY)
	for ty := 0; ty < nbY; ty++ {
		for tx := 0; tx < nbX; tx++ {
			xmin := box.Xmin + float64(tx)*cellW
			xmax := box.Xmin + float64(tx+1)*cellW
			ymin := box.Ymin + float64(ty)*cellH
			ymax := box.Ymin + float64(ty+1)*cellH
			if tx == nbX-1 {
				xmax = box.Xmax
			}
			if ty == nbY-1 {
				ymax = box.Ymax
			}
			t.Tiles[ty*nbX+tx] = &Tile{
				Bound: orb.Bound{Min: orb.Point{xmin, ymin}, Max: orb.Point{xmax, ymax}},
			}
		}
	}

	for i, p := range points {
		tx, ty := t.locate(p.X, p.Y)
		tile := t.Tiles[ty*nbX+tx]
		tile.Indices = append(tile.Indices, i)
	}
	return t
}

// tileCounts derives the tile grid dimensions from the footprint area:
//
//	nbX = floor(Dx / sqrt(Dx*Dy/minSub)) + 1
//	nbY = floor((Dx*Dy) / (nbX * (Dx*Dy/minSub))) + 1
func tileCounts(dx, dy float64) (int, int) {
	if dx <= 0 || dy <= 0 {
		return 1, 1
	}
	area := dx * dy
	targetCellArea := area / float64(minSubdivisions)
	cellSide := math.Sqrt(targetCellArea)

	nbX := int(math.Floor(dx/cellSide)) + 1
	nbY := int(math.Floor(area/(float64(nbX)*targetCellArea))) + 1
	if nbX < 1 {
		nbX = 1
	}
	if nbY < 1 {
		nbY = 1
	}
	return nbX, nbY
}

// locate returns the tile column/row owning (x,y), half-open on the min
// side and closed on the max side: a point on the boundary between two
// tiles belongs to the lower one, and points on the global min edge are
// clamped into the first tile on that axis.
func (t *Tiling) locate(x, y float64) (int, int) {
	dx, dy := t.box.Dx(), t.box.Dy()
	cellW, cellH := dx/float64(t.nbX), dy/float64(t.nbY)

	tx := t.nbX - 1
	if cellW > 0 {
		tx = int(math.Ceil((x-t.box.Xmin)/cellW)) - 1
	}
	if tx < 0 {
		tx = 0
	}
	if tx > t.nbX-1 {
		tx = t.nbX - 1
	}

	ty := t.nbY - 1
	if cellH > 0 {
		ty = int(math.Ceil((y-t.box.Ymin)/cellH)) - 1
	}
	if ty < 0 {
		ty = 0
	}
	if ty > t.nbY-1 {
		ty = t.nbY - 1
	}
	return tx, ty
}

type tilePos struct {
	tile  int
	local int
}

// membership builds the Base-index -> (tile, local index) lookup consulted
// during edge construction.
func (t *Tiling) membership() map[int]tilePos {
	m := make(map[int]tilePos)
	for ti, tile := range t.Tiles {
		for local, baseIdx := range tile.Indices {
			m[baseIdx] = tilePos{tile: ti, local: local}
		}
	}
	return m
}
