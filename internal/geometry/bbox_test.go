package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundingBox_NormalizesMinMax(t *testing.T) {
	b := NewBoundingBox(10, 0, 5, -5, 1, -1)
	assert.Equal(t, BoundingBox{Xmin: 0, Xmax: 10, Ymin: -5, Ymax: 5, Zmin: -1, Zmax: 1}, b)
	assert.Equal(t, 10.0, b.Dx())
	assert.Equal(t, 10.0, b.Dy())
	assert.Equal(t, 2.0, b.Dz())
}

func TestBoundingBox_Contains_ClosedOnEverySide(t *testing.T) {
	b := NewBoundingBox(0, 10, 0, 10, 0, 10)
	assert.True(t, b.Contains(0, 0, 0))
	assert.True(t, b.Contains(10, 10, 10))
	assert.True(t, b.Contains(5, 5, 5))
	assert.False(t, b.Contains(-0.1, 5, 5))
	assert.False(t, b.Contains(10.1, 5, 5))
}

func TestBoundingBox_Planar(t *testing.T) {
	b := NewBoundingBox(0, 10, -2, 8, 100, 200)
	planar := b.Planar()
	assert.Equal(t, 0.0, planar.Min[0])
	assert.Equal(t, -2.0, planar.Min[1])
	assert.Equal(t, 10.0, planar.Max[0])
	assert.Equal(t, 8.0, planar.Max[1])
}
