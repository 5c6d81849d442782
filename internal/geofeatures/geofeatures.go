// Package geofeatures is a default FeatureProvider: simple per-scale
// geometric descriptors (height above the local neighbourhood minimum, and
// local point density) evaluated over a scale ladder. Sophisticated
// descriptors (covariance eigenvalues, full verticality/planarity) are out
// of scope — FeatureProvider is treated purely as a consumed collaborator
// interface elsewhere in this module — this is a lightweight, real default
// so the CLI front-end has something to classify with out of the box, in
// the same spirit as vendoring a concrete LAS reader (lidario) behind an
// out-of-core octree interface.
package geofeatures

import (
	"math"

	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/scale"
	"github.com/geolas/pointclassify/internal/spatial"
)

// Provider builds height-above-neighbourhood and local-density features at
// every rung of the scale ladder, against the full Base point cloud.
type Provider struct {
	Base *data.Base
}

func NewProvider(base *data.Base) *Provider {
	return &Provider{Base: base}
}

func (p *Provider) Build(scales []*scale.Scale, radius float64) []feature.Feature {
	if radius <= 0 {
		radius = 1.0
	}
	coords := make([][3]float64, len(p.Base.Points))
	for i, pt := range p.Base.Points {
		coords[i] = [3]float64{pt.X, pt.Y, pt.Z}
	}
	idx := spatial.NewTree(coords)

	var features []feature.Feature
	for _, sc := range scales {
		r := radius * (sc.Resolution / scaleOrOne(scales[0].Resolution))
		features = append(features,
			&heightAboveNeighborhood{base: p.Base, idx: idx, radius: r},
			&localDensity{base: p.Base, idx: idx, radius: r},
		)
	}
	return features
}

func scaleOrOne(r float64) float64 {
	if r <= 0 {
		return 1
	}
	return r
}

// heightAboveNeighborhood is z minus the minimum z among points within
// radius, a cheap proxy for "height above ground" absent a real ground
// classification.
type heightAboveNeighborhood struct {
	base   *data.Base
	idx    *spatial.Tree
	radius float64
}

func (h *heightAboveNeighborhood) GetValue(i int) float32 {
	p := h.base.Points[i]
	nbrs := h.idx.Radius(p.X, p.Y, p.Z, h.radius)
	minZ := p.Z
	for _, nb := range nbrs {
		if z := h.base.Points[nb.Index].Z; z < minZ {
			minZ = z
		}
	}
	return float32(p.Z - minZ)
}

// localDensity is the neighbour count within radius, a cheap proxy for
// local point density (distinguishes sparse vegetation returns from dense
// building facades).
type localDensity struct {
	base   *data.Base
	idx    *spatial.Tree
	radius float64
}

func (d *localDensity) GetValue(i int) float32 {
	p := d.base.Points[i]
	nbrs := d.idx.Radius(p.X, p.Y, p.Z, d.radius)
	return float32(math.Log1p(float64(len(nbrs))))
}
