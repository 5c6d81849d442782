// Package geometry holds the small set of spatial primitives shared by the
// scale ladder, the spatial index and the graph-cut tiler. It mirrors the
// internal/geometry.BoundingBox contract (Xmin/Xmax/.../Zmid) it is adapted
// from, without carrying that package's WGS84-region conversion logic,
// which this core has no use for.
package geometry

import "github.com/paulmach/orb"

// BoundingBox is an axis-aligned box over a point set, in whatever working
// CRS the caller's PointSetLoader produced.
type BoundingBox struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	Zmin, Zmax float64
}

// NewBoundingBox builds a BoundingBox, normalizing min/max per axis.
func NewBoundingBox(x0, x1, y0, y1, z0, z1 float64) BoundingBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	return BoundingBox{Xmin: x0, Xmax: x1, Ymin: y0, Ymax: y1, Zmin: z0, Zmax: z1}
}

// Dx is the bounding box extent along X.
func (b BoundingBox) Dx() float64 { return b.Xmax - b.Xmin }

// Dy is the bounding box extent along Y.
func (b BoundingBox) Dy() float64 { return b.Ymax - b.Ymin }

// Dz is the bounding box extent along Z.
func (b BoundingBox) Dz() float64 { return b.Zmax - b.Zmin }

// Contains reports whether (x,y,z) falls inside the box, closed on every
// side: points on the min and the max faces are both inside.
func (b BoundingBox) Contains(x, y, z float64) bool {
	return x >= b.Xmin && x <= b.Xmax &&
		y >= b.Ymin && y <= b.Ymax &&
		z >= b.Zmin && z <= b.Zmax
}

// Planar returns the 2D footprint of the box as an orb.Bound, used by the
// graph-cut tiler to compute the tile grid over the X/Y footprint.
func (b BoundingBox) Planar() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Xmin, b.Ymin},
		Max: orb.Point{b.Xmax, b.Ymax},
	}
}
