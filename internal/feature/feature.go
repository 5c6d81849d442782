// Package feature defines the Feature Bank: the sequence of per-point
// scalar feature accessors the core evaluates on demand, and the
// FeatureProvider collaborator interface that actually computes them.
// Feature extraction itself (covariance eigenvalues, height statistics,
// color channels, ...) is out of scope for this package — it only consumes
// whatever a caller-supplied FeatureProvider produces.
package feature

import "github.com/geolas/pointclassify/internal/scale"

// Feature exposes a scalar value per Base index.
type Feature interface {
	GetValue(i int) float32
}

// FeatureProvider is the external collaborator that builds a Feature Bank
// from a scale ladder. Implementations typically evaluate geometric
// descriptors (verticality, planarity, height above ground, ...) at each
// rung of the ladder.
type FeatureProvider interface {
	// Build evaluates one Feature Bank over the given scale ladder. radius
	// is the neighbourhood radius features may use at their finest scale
	// (e.g. for a local covariance descriptor); it is threaded through
	// unmodified from the Training Sampler / Per-point Inference caller.
	Build(scales []*scale.Scale, radius float64) []Feature
}

// Bank is the ordered set of Features evaluated over one scale ladder, for
// the lifetime of one input file.
type Bank struct {
	Features []Feature
}

// NewBank wraps a FeatureProvider's output for one file's scale ladder.
func NewBank(provider FeatureProvider, scales []*scale.Scale, radius float64) *Bank {
	return &Bank{Features: provider.Build(scales, radius)}
}

// NumFeatures is the feature vector width.
func (b *Bank) NumFeatures() int { return len(b.Features) }

// Gather fills out (len(out) must equal NumFeatures()) with every feature's
// value at Base index i, avoiding an allocation on the hot inference path.
func (b *Bank) Gather(i int, out []float32) {
	for k, f := range b.Features {
		out[k] = f.GetValue(i)
	}
}
