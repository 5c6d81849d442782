// Package writer implements the Label Writer: translating the
// training-code labels inference wrote into base.Labels back onto every
// surface point's ASPRS code or RGB color, subject to the
// skip/unclassifiedOnly writeback rules.
package writer

import (
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/stats"
)

// Options configures one Label Writer pass.
type Options struct {
	UseColors        bool
	UnclassifiedOnly bool
	EvaluateStats    bool
	Skip             map[uint8]bool
}

// Write translates inference's training-code labels back onto every
// surface point of ps. If opts.EvaluateStats is set, matrix accumulates
// (predicted, actual) pairs for every surface point that carried ground
// truth.
func Write(ps *data.PointSet, labels *data.LabelSet, opts Options, matrix *stats.ConfusionMatrix) {
	hasLabels := hasAnyGroundTruth(ps)

	for i := range ps.PointMap {
		baseIdx := ps.PointMap[i]
		bestClass := ps.Base.Labels[baseIdx]
		asprsCode := labels.Train2Asprs(bestClass)

		if opts.EvaluateStats && matrix != nil && ps.GroundTruth[i] != data.LabelUnassigned {
			if gtTrain, ok := labels.Asprs2Train(ps.GroundTruth[i]); ok {
				matrix.Record(bestClass, gtTrain)
			}
		}

		if !shouldUpdate(ps.SurfaceLabels[i], asprsCode, hasLabels, opts) {
			continue
		}

		if opts.UseColors {
			ps.SurfaceColors[i] = labels.Label(bestClass).Color
		} else {
			ps.SurfaceLabels[i] = asprsCode
		}
	}
}

// hasAnyGroundTruth reports whether ps carries ground truth for at least one
// point. A cloud with none is treated as never having been classified, the
// same "hasLabels" distinction classifier.hpp draws before gating on
// unclassifiedOnly.
func hasAnyGroundTruth(ps *data.PointSet) bool {
	for _, gt := range ps.GroundTruth {
		if gt != data.LabelUnassigned {
			return true
		}
	}
	return false
}

// shouldUpdate applies the skip/unclassifiedOnly writeback rules.
// unclassifiedOnly only gates points on a cloud that actually carries
// ground truth somewhere; a fully-unlabeled cloud is written in full, since
// there is no prior classification for "unclassified only" to preserve.
func shouldUpdate(currentAsprs, targetAsprs uint8, hasLabels bool, opts Options) bool {
	if opts.UnclassifiedOnly && hasLabels && currentAsprs != data.LabelUnclassified {
		return false
	}
	if opts.Skip[targetAsprs] {
		return false
	}
	return true
}
