package pkg

import (
	"testing"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/config"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planeLabels() *data.LabelSet {
	return data.NewLabelSet([]data.Label{
		{Name: "ground", AsprsCode: 2, Color: data.RGB{R: 0, G: 255, B: 0}},
		{Name: "building", AsprsCode: 6, Color: data.RGB{R: 255, G: 0, B: 0}},
	})
}

type zFeature struct{ base *data.Base }

func (f zFeature) GetValue(i int) float32 { return float32(f.base.Points[i].Z) }

type zProvider struct{ base *data.Base }

func (p zProvider) Build(scales []*scale.Scale, radius float64) []feature.Feature {
	return []feature.Feature{zFeature{base: p.base}}
}

func twoClassPlanePointSet() *data.PointSet {
	n := 2000
	base := &data.Base{Points: make([]data.Point, n)}
	ps := &data.PointSet{
		Base:          base,
		PointMap:      make([]int, n),
		GroundTruth:   make([]uint8, n),
		SurfaceLabels: make([]uint8, n),
		SurfaceColors: make([]data.RGB, n),
	}
	for i := 0; i < 1000; i++ {
		base.Points[i] = data.Point{X: float64(i), Y: 0, Z: 0}
		ps.PointMap[i] = i
		ps.GroundTruth[i] = 2
	}
	for i := 1000; i < 2000; i++ {
		base.Points[i] = data.Point{X: float64(i), Y: 0, Z: 10}
		ps.PointMap[i] = i
		ps.GroundTruth[i] = 6
	}
	return ps
}

func stubPlaneEvaluator(features []float32, outProbs []float32) {
	if features[0] < 5 {
		outProbs[0], outProbs[1] = 1, 0
	} else {
		outProbs[0], outProbs[1] = 0, 1
	}
}

// Scenario 1: two-class synthetic plane, end to end through ClassifyData.
func TestClassifyData_TwoClassPlane(t *testing.T) {
	ps := twoClassPlanePointSet()
	labels := planeLabels()
	bank := feature.NewBank(zProvider{base: ps.Base}, nil, 1.0)

	err := ClassifyData(classify.Evaluator(stubPlaneEvaluator), bank, ps, labels, ClassifyOptions{
		Regularization: config.RegularizationNone,
		EvaluateStats:  true,
		NumWorkers:     2,
	})
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, uint8(2), ps.SurfaceLabels[i])
	}
	for i := 1000; i < 2000; i++ {
		assert.Equal(t, uint8(6), ps.SurfaceLabels[i])
	}
}

func TestClassifyData_UnknownRegularizationErrors(t *testing.T) {
	ps := twoClassPlanePointSet()
	labels := planeLabels()
	bank := feature.NewBank(zProvider{base: ps.Base}, nil, 1.0)

	err := ClassifyData(classify.Evaluator(stubPlaneEvaluator), bank, ps, labels, ClassifyOptions{
		Regularization: config.Regularization("bogus"),
	})
	require.Error(t, err)
	var unknown *config.UnknownRegularizationError
	assert.ErrorAs(t, err, &unknown)
}

func TestClassifyData_SkipEveryCodeLeavesSurfaceLabelsUnchanged(t *testing.T) {
	ps := twoClassPlanePointSet()
	labels := planeLabels()
	bank := feature.NewBank(zProvider{base: ps.Base}, nil, 1.0)
	before := append([]uint8{}, ps.SurfaceLabels...)

	err := ClassifyData(classify.Evaluator(stubPlaneEvaluator), bank, ps, labels, ClassifyOptions{
		Regularization: config.RegularizationNone,
		Skip:           map[uint8]bool{2: true, 6: true},
	})
	require.NoError(t, err)
	assert.Equal(t, before, ps.SurfaceLabels)
}
