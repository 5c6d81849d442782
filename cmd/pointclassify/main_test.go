package main

import (
	"encoding/gob"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsprsSubsetFromInts_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, asprsSubsetFromInts(nil))
	assert.Nil(t, asprsSubsetFromInts([]int{}))
}

func TestAsprsSubsetFromInts_BuildsLookupSet(t *testing.T) {
	set := asprsSubsetFromInts([]int{2, 6})
	assert.True(t, set[2])
	assert.True(t, set[6])
	assert.False(t, set[5])
}

func TestDefaultLabelSet_HasGroundVegetationBuilding(t *testing.T) {
	labels := defaultLabelSet()
	assert.Equal(t, 3, labels.NumLabels())

	ground, ok := labels.Asprs2Train(2)
	assert.True(t, ok)
	assert.Equal(t, "ground", labels.Label(ground).Name)

	vegetation, ok := labels.Asprs2Train(5)
	assert.True(t, ok)
	assert.Equal(t, "vegetation", labels.Label(vegetation).Name)

	building, ok := labels.Asprs2Train(6)
	assert.True(t, ok)
	assert.Equal(t, "building", labels.Label(building).Name)
}

func TestWriteTrainingSet_RoundTrips(t *testing.T) {
	path := t.TempDir() + "/training.gob"
	features := [][]float32{{1, 2}, {3, 4}}
	classes := []uint8{0, 1}

	require.NoError(t, writeTrainingSet(path, features, classes))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got trainingSet
	require.NoError(t, gob.NewDecoder(f).Decode(&got))
	assert.Equal(t, features, got.Features)
	assert.Equal(t, classes, got.Classes)
}
