package data

import (
	"testing"

	"github.com/geolas/pointclassify/internal/geometry"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPointSet_GetBbox(t *testing.T) {
	ps := &PointSet{
		Base: &Base{Points: []Point{
			{X: 0, Y: 0, Z: 0},
			{X: 10, Y: -5, Z: 3},
			{X: -2, Y: 8, Z: 1},
		}},
	}
	box := ps.GetBbox()
	assert.Equal(t, -2.0, box.Xmin)
	assert.Equal(t, 10.0, box.Xmax)
	assert.Equal(t, -5.0, box.Ymin)
	assert.Equal(t, 8.0, box.Ymax)
	assert.Equal(t, 0.0, box.Zmin)
	assert.Equal(t, 3.0, box.Zmax)

	// cached: mutating Base afterwards must not change the cached bbox.
	ps.Base.Points = append(ps.Base.Points, Point{X: 1000, Y: 1000, Z: 1000})
	box2 := ps.GetBbox()
	if diff := cmp.Diff(box, box2); diff != "" {
		t.Errorf("cached bbox changed after mutating Base (-want +got):\n%s", diff)
	}

	want := geometry.NewBoundingBox(-2, 10, -5, 8, 0, 3)
	if diff := cmp.Diff(want, box); diff != "" {
		t.Errorf("bbox mismatch (-want +got):\n%s", diff)
	}
}

func TestPointSet_GetIndex_FindsNearestNeighbour(t *testing.T) {
	ps := &PointSet{
		Base: &Base{Points: []Point{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 100, Y: 0, Z: 0},
		}},
	}
	idx := ps.GetIndex()
	nn := idx.KNN(0, 0, 0, 2)
	assert.Len(t, nn, 2)
	assert.Equal(t, 0, nn[0].Index)
	assert.Equal(t, 1, nn[1].Index)

	// GetIndex is built once and cached.
	assert.Same(t, idx, ps.GetIndex())
}

func TestPointSet_Spacing_SmallCloud(t *testing.T) {
	ps := &PointSet{
		Base: &Base{Points: []Point{{X: 0, Y: 0, Z: 0}}},
	}
	assert.Equal(t, 1.0, ps.Spacing())
}

func TestPointSet_Spacing_UniformGrid(t *testing.T) {
	var pts []Point
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			pts = append(pts, Point{X: float64(x), Y: float64(y), Z: 0})
		}
	}
	ps := &PointSet{Base: &Base{Points: pts}}
	spacing := ps.Spacing()
	assert.InDelta(t, 1.0, spacing, 1e-9)
	// cached thereafter.
	assert.Equal(t, spacing, ps.Spacing())
}
