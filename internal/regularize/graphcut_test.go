package regularize

import (
	"testing"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/geometry"
	"github.com/geolas/pointclassify/internal/scale"
	"github.com/geolas/pointclassify/internal/spatial"
	"github.com/stretchr/testify/assert"
)

type graphcutFeature struct{ base *data.Base }

func (f graphcutFeature) GetValue(i int) float32 { return float32(i) }

type graphcutProvider struct{ base *data.Base }

func (p graphcutProvider) Build(scales []*scale.Scale, radius float64) []feature.Feature {
	return []feature.Feature{graphcutFeature{base: p.base}}
}

// TestGraphCut_SmoothsAConfidentOutlierIntoItsCluster builds a dense
// cluster of 99 points whose evaluator strongly favours class A, plus one
// spatially-embedded outlier the evaluator weakly favours as class B;
// Graph-Cut's Potts smoothing should flip the outlier to match its
// confident neighbours.
func TestGraphCut_SmoothsAConfidentOutlierIntoItsCluster(t *testing.T) {
	base := &data.Base{}
	outlierIdx := 0
	base.Points = append(base.Points, data.Point{X: 5, Y: 5, Z: 0})
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if x == 5 && y == 5 {
				continue
			}
			base.Points = append(base.Points, data.Point{X: float64(x), Y: float64(y), Z: 0})
		}
	}
	base.Labels = make([]uint8, len(base.Points))

	eval := classify.Evaluator(func(features []float32, outProbs []float32) {
		i := int(features[0])
		if i == outlierIdx {
			outProbs[0], outProbs[1] = 0.49, 0.51 // barely favours B
		} else {
			outProbs[0], outProbs[1] = 0.999, 0.001 // strongly favours A
		}
	})
	bank := feature.NewBank(graphcutProvider{base: base}, nil, 1.0)
	idx := spatial.NewTree(coordsOf(base))
	box := geometry.NewBoundingBox(0, 9, 0, 9, 0, 0)
	tiling := BuildTiling(box, base.Points)

	GraphCut(eval, bank, base, 2, idx, tiling)

	assert.Equal(t, uint8(0), base.Labels[outlierIdx], "confident neighbours should pull the weak outlier to class A")
}

func TestGraphCut_EmptyTilesAreSkipped(t *testing.T) {
	base := &data.Base{Points: []data.Point{{X: 0, Y: 0, Z: 0}}, Labels: make([]uint8, 1)}
	eval := classify.Evaluator(func(features []float32, outProbs []float32) {
		outProbs[0], outProbs[1] = 1, 0
	})
	bank := feature.NewBank(graphcutProvider{base: base}, nil, 1.0)
	idx := spatial.NewTree(coordsOf(base))
	box := geometry.NewBoundingBox(0, 0, 0, 0, 0, 0)
	tiling := BuildTiling(box, base.Points)

	assert.NotPanics(t, func() {
		GraphCut(eval, bank, base, 2, idx, tiling)
	})
}
