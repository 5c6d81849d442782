package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geolas/pointclassify/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLabelledCloud_WritesHeaderAndOneLinePerPoint(t *testing.T) {
	labels := data.NewLabelSet([]data.Label{
		{Name: "ground", AsprsCode: 2, Color: data.RGB{R: 10, G: 20, B: 30}},
		{Name: "building", AsprsCode: 6, Color: data.RGB{R: 40, G: 50, B: 60}},
	})
	base := &data.Base{
		Points: []data.Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		Labels: []uint8{0, 1},
	}

	path := filepath.Join(t.TempDir(), "preview.ply")
	require.NoError(t, WriteLabelledCloud(path, base, labels))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")

	assert.Equal(t, "ply", lines[0])
	assert.Contains(t, lines, "element vertex 2")
	assert.Contains(t, lines, "end_header")

	last := lines[len(lines)-1]
	assert.Contains(t, last, "40 50 60 1")
}

func TestWriteLabelledCloud_MissingLabelDefaultsToClassZero(t *testing.T) {
	labels := data.NewLabelSet([]data.Label{
		{Name: "ground", AsprsCode: 2, Color: data.RGB{R: 10, G: 20, B: 30}},
	})
	base := &data.Base{
		Points: []data.Point{{X: 0, Y: 0, Z: 0}},
		Labels: nil, // shorter than Points: every index falls back to class 0
	}

	path := filepath.Join(t.TempDir(), "preview.ply")
	require.NoError(t, WriteLabelledCloud(path, base, labels))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "10 20 30 0")
}
