// Package training implements balanced training-set assembly: per-class
// subsampling with a shuffle walk across every input file. It is grounded
// on wlattner-rf's Classifier, which seeds its own
// rand.New(rand.NewSource(time.Now().UnixNano())) rather than using the
// shared global PRNG — the same pattern this sampler uses to reseed per run
// while staying deterministic given a caller-supplied seed in tests.
package training

import (
	"math/rand"
	"time"

	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/scale"
)

// Loader is the named external collaborator standing in for raw
// point-file I/O, which this package does not itself implement.
type Loader interface {
	Load(path string) (*data.PointSet, error)
}

// InitFunc is called once, before the first sample is emitted, with the
// feature vector width and the number of training classes.
type InitFunc func(numFeatures, numLabels int)

// StoreFunc is called once per emitted training sample.
type StoreFunc func(features []float32, baseIndex int, trainingClassCode uint8)

// Options configures one GetTrainingData run.
type Options struct {
	NumScales  int
	Radius     float64
	MaxSamples int

	// AsprsSubset, if non-nil, restricts sampling to these ASPRS classes.
	AsprsSubset map[uint8]bool

	// Seed seeds the per-run shuffle PRNG. Zero means "derive from the
	// wall clock", matching the source's un-pinned behaviour; tests should
	// set a non-zero seed for determinism.
	Seed int64
}

// candidate is one labelled, deduplicated working-set point awaiting the
// balanced sampling walk.
type candidate struct {
	baseIndex  int
	trainClass uint8
}

// GetTrainingData runs the sampling algorithm across every input file,
// maintaining a shared, possibly-derived startResolution; the per-class
// sample quota is computed and enforced per file. startResolution is mutated
// in place: if it is <= 0 on entry, the first non-skipped file's
// PointSet.Spacing() seeds it for every subsequent file.
func GetTrainingData(
	loader Loader,
	providerFactory func(base *data.Base) feature.FeatureProvider,
	labels *data.LabelSet,
	files []string,
	startResolution *float64,
	opts Options,
	initFn InitFunc,
	storeFn StoreFunc,
) error {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	initCalled := false
	numLabels := labels.NumLabels()

	for _, path := range files {
		ps, err := loader.Load(path)
		if err != nil {
			return err
		}
		if !hasAnyLabel(ps) {
			continue
		}

		if *startResolution <= 0 {
			*startResolution = ps.Spacing()
		}

		scales := scale.BuildLadder(ps.Base.Points, *startResolution, opts.NumScales)
		bank := feature.NewBank(providerFactory(ps.Base), scales, opts.Radius)

		if !initCalled {
			initFn(bank.NumFeatures(), numLabels)
			initCalled = true
		}

		candidates, counts := collectCandidates(ps, labels, opts.AsprsSubset)
		samplesPerLabel := samplesPerLabelQuota(counts, opts.MaxSamples)

		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		emitted := make([]int, numLabels)
		scratch := make([]float32, bank.NumFeatures())
		for _, c := range candidates {
			if emitted[c.trainClass] >= samplesPerLabel {
				continue
			}
			bank.Gather(c.baseIndex, scratch)
			storeFn(scratch, c.baseIndex, c.trainClass)
			emitted[c.trainClass]++
		}
	}

	return nil
}

func hasAnyLabel(ps *data.PointSet) bool {
	for _, gt := range ps.GroundTruth {
		if gt != data.LabelUnassigned {
			return true
		}
	}
	return false
}

// collectCandidates enumerates every surface point with ground truth,
// rejecting classes outside the requested subset, and dedups by PointMap so
// each working-set point contributes at most once, taking its class from
// the first surface occurrence.
func collectCandidates(ps *data.PointSet, labels *data.LabelSet, subset map[uint8]bool) ([]candidate, []int) {
	seen := make(map[int]bool, len(ps.PointMap))
	var candidates []candidate
	counts := make([]int, labels.NumLabels())

	for i, gt := range ps.GroundTruth {
		if gt == data.LabelUnassigned {
			continue
		}
		trainClass, ok := labels.Asprs2Train(gt)
		if !ok {
			continue
		}
		if subset != nil && !subset[gt] {
			continue
		}
		baseIdx := ps.PointMap[i]
		if seen[baseIdx] {
			continue
		}
		seen[baseIdx] = true

		candidates = append(candidates, candidate{baseIndex: baseIdx, trainClass: trainClass})
		counts[trainClass]++
	}
	return candidates, counts
}

// samplesPerLabelQuota is min(maxSamples, min over non-empty classes of
// counts[c]); maxSamples <= 0 means no cap.
func samplesPerLabelQuota(counts []int, maxSamples int) int {
	quota := maxSamples
	found := false
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if !found || c < quota {
			quota = c
			found = true
		}
	}
	if !found {
		return 0
	}
	if maxSamples > 0 && quota > maxSamples {
		return maxSamples
	}
	return quota
}
