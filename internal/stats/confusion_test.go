package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario 1's confusion-matrix expectation: a perfect classifier has a
// diagonal-only matrix and accuracy 1.0.
func TestConfusionMatrix_PerfectClassifierHasUnitAccuracy(t *testing.T) {
	m := NewConfusionMatrix(2)
	for i := 0; i < 1000; i++ {
		m.Record(0, 0)
	}
	for i := 0; i < 1000; i++ {
		m.Record(1, 1)
	}
	assert.Equal(t, int64(2000), m.Total())
	assert.Equal(t, 1.0, m.Accuracy())
}

func TestConfusionMatrix_MixedPredictions(t *testing.T) {
	m := NewConfusionMatrix(2)
	m.Record(0, 0)
	m.Record(0, 1) // false positive for class 0
	m.Record(1, 1)
	m.Record(1, 1)

	assert.Equal(t, int64(4), m.Total())
	assert.Equal(t, int64(1), m.Count(0, 0))
	assert.Equal(t, int64(1), m.Count(0, 1))
	assert.Equal(t, int64(2), m.Count(1, 1))
	assert.InDelta(t, 0.75, m.Accuracy(), 1e-9)
}

func TestConfusionMatrix_EmptyHasZeroAccuracy(t *testing.T) {
	m := NewConfusionMatrix(3)
	assert.Equal(t, 0.0, m.Accuracy())
}

func TestConfusionMatrix_RecordIgnoresOutOfRangeCodes(t *testing.T) {
	m := NewConfusionMatrix(2)
	m.Record(5, 0)
	assert.Equal(t, int64(0), m.Total())
}
