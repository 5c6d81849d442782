package regularize

import (
	"testing"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/scale"
	"github.com/geolas/pointclassify/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constFeature struct{}

func (constFeature) GetValue(i int) float32 { return 0 }

type constProvider struct{}

func (constProvider) Build(scales []*scale.Scale, radius float64) []feature.Feature {
	return []feature.Feature{constFeature{}}
}

func gridBase(n int) *data.Base {
	base := &data.Base{}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			base.Points = append(base.Points, data.Point{X: float64(x), Y: float64(y), Z: 0})
		}
	}
	base.Labels = make([]uint8, len(base.Points))
	return base
}

// constantEvaluator always returns (1,0,...,0): class 0 with certainty.
func constantEvaluator(numClasses int) classify.Evaluator {
	return func(features []float32, outProbs []float32) {
		for c := range outProbs {
			outProbs[c] = 0
		}
		outProbs[0] = 1
	}
}

// Scenario 4: under constant per-point probabilities, both None and
// Local-Smooth produce all-zeros labels, and neighbour averaging cannot
// move the argmax away from the only nonzero class.
func TestLocalSmooth_IdempotentUnderConstantProbabilities(t *testing.T) {
	base := gridBase(6)
	bank := feature.NewBank(constProvider{}, nil, 1.0)
	idx := spatial.NewTree(coordsOf(base))
	eval := constantEvaluator(3)

	err := LocalSmooth(eval, bank, base, idx, 3, 2.0, 2)
	require.NoError(t, err)
	for _, l := range base.Labels {
		assert.Equal(t, uint8(0), l)
	}
}

func TestNone_ArgmaxWithTieBreaksToSmallestClassIndex(t *testing.T) {
	base := gridBase(2)
	bank := feature.NewBank(constProvider{}, nil, 1.0)
	eval := func(features []float32, outProbs []float32) {
		outProbs[0], outProbs[1] = 0.5, 0.5
	}

	err := None(eval, bank, base, 2, 1)
	require.NoError(t, err)
	for _, l := range base.Labels {
		assert.Equal(t, uint8(0), l)
	}
}

func coordsOf(base *data.Base) [][3]float64 {
	coords := make([][3]float64, len(base.Points))
	for i, p := range base.Points {
		coords[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return coords
}
