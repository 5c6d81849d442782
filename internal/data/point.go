package data

import (
	"math"
	"math/rand"

	"github.com/geolas/pointclassify/internal/geometry"
	"github.com/geolas/pointclassify/internal/spatial"
)

// Point is a bare 3D position: (x, y, z: f64).
type Point struct {
	X, Y, Z float64
}

// Base is the working set: a possibly-decimated point collection that
// inference writes labels into.
type Base struct {
	Points []Point
	Colors []RGB
	Labels []uint8 // training-code space while inference/regularization run
}

// Count is the number of points in the working set.
func (b *Base) Count() int { return len(b.Points) }

// PointSet is the ordered sequence of surface points plus the decimated
// Base working set they map onto.
type PointSet struct {
	Base *Base

	// PointMap[i] is the Base index that surface point i's classification
	// is read from/written through. 0 <= PointMap[i] < Base.Count().
	PointMap []int

	// GroundTruth[i] is the ASPRS code a surface point was loaded with,
	// or LabelUnassigned if the point carries no ground truth.
	GroundTruth []uint8

	// SurfaceLabels[i] is the mutable ASPRS label written back by the
	// Label Writer.
	SurfaceLabels []uint8

	// SurfaceColors[i] is the mutable RGB written back in color mode.
	SurfaceColors []RGB

	bbox       *geometry.BoundingBox
	spacingVal float64
	spacingSet bool
	index      *spatial.Tree
}

// SurfaceCount is the number of surface points (len(PointMap)).
func (ps *PointSet) SurfaceCount() int { return len(ps.PointMap) }

// GetBbox returns the (lazily computed, cached) axis-aligned bounding box
// of the Base working set.
func (ps *PointSet) GetBbox() geometry.BoundingBox {
	if ps.bbox != nil {
		return *ps.bbox
	}
	if len(ps.Base.Points) == 0 {
		box := geometry.NewBoundingBox(0, 0, 0, 0, 0, 0)
		ps.bbox = &box
		return box
	}
	p0 := ps.Base.Points[0]
	xmin, xmax := p0.X, p0.X
	ymin, ymax := p0.Y, p0.Y
	zmin, zmax := p0.Z, p0.Z
	for _, p := range ps.Base.Points[1:] {
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		zmin, zmax = math.Min(zmin, p.Z), math.Max(zmax, p.Z)
	}
	box := geometry.NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax)
	ps.bbox = &box
	return box
}

// GetIndex returns the lazily-built, shared read-only 3D spatial index over
// the Base working set.
func (ps *PointSet) GetIndex() *spatial.Tree {
	if ps.index != nil {
		return ps.index
	}
	coords := make([][3]float64, len(ps.Base.Points))
	for i, p := range ps.Base.Points {
		coords[i] = [3]float64{p.X, p.Y, p.Z}
	}
	ps.index = spatial.NewTree(coords)
	return ps.index
}

const spacingSampleSize = 2000

// Spacing returns the estimated mean nearest-neighbour distance of the Base
// working set, used to seed the scale ladder's resolution when the caller
// did not pin one. The estimate samples up to spacingSampleSize points to
// stay cheap on large clouds.
func (ps *PointSet) Spacing() float64 {
	if ps.spacingSet {
		return ps.spacingVal
	}
	n := ps.Base.Count()
	if n < 2 {
		ps.spacingVal, ps.spacingSet = 1.0, true
		return ps.spacingVal
	}

	idx := ps.GetIndex()
	sampleN := n
	var sampleIdx []int
	if n > spacingSampleSize {
		sampleN = spacingSampleSize
		r := rand.New(rand.NewSource(1))
		sampleIdx = r.Perm(n)[:sampleN]
	}

	sum := 0.0
	count := 0
	for s := 0; s < sampleN; s++ {
		i := s
		if sampleIdx != nil {
			i = sampleIdx[s]
		}
		p := ps.Base.Points[i]
		nn := idx.KNN(p.X, p.Y, p.Z, 2)
		for _, n := range nn {
			if n.Index == i {
				continue
			}
			sum += n.Dist
			count++
			break
		}
	}
	if count == 0 {
		ps.spacingVal = 1.0
	} else {
		ps.spacingVal = sum / float64(count)
	}
	ps.spacingSet = true
	return ps.spacingVal
}
