// Package preview writes a minimal ASCII PLY dump of a labelled point
// cloud, for visual debugging of the Training Sampler's working set and
// the Per-point Inference Engine's output. github.com/cobaltgray/go-plyfile
// is the natural library for PLY I/O, but its API surface was not
// available to ground an implementation against; rather than guess at an
// unseen third-party interface, this package writes the (small, stable)
// ASCII PLY subset directly.
package preview

import (
	"bufio"
	"fmt"
	"os"

	"github.com/geolas/pointclassify/internal/data"
)

// WriteLabelledCloud dumps points, colours (derived per-point from each
// label's Color), and training-code labels as an ASCII PLY file.
func WriteLabelledCloud(path string, base *data.Base, labels *data.LabelSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := base.Count()

	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", n)
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintln(w, "property uchar red")
	fmt.Fprintln(w, "property uchar green")
	fmt.Fprintln(w, "property uchar blue")
	fmt.Fprintln(w, "property uchar training_class")
	fmt.Fprintln(w, "end_header")

	for i := 0; i < n; i++ {
		p := base.Points[i]
		trainClass := uint8(0)
		if i < len(base.Labels) {
			trainClass = base.Labels[i]
		}
		color := labels.Label(trainClass).Color
		fmt.Fprintf(w, "%f %f %f %d %d %d %d\n", p.X, p.Y, p.Z, color.R, color.G, color.B, trainClass)
	}

	return w.Flush()
}
