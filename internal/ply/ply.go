// Package ply is a minimal ASCII PLY reader/writer standing in for the
// core's PointSetLoader collaborator (raw point-file I/O is out of scope
// for the core itself, but a CLI front-end still needs a concrete loader
// to drive it). Written directly rather than through
// github.com/cobaltgray/go-plyfile for the same reason as internal/preview:
// that library's API surface was not available to ground an implementation
// against.
package ply

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/geolas/pointclassify/internal/data"
)

// Load reads an ASCII PLY file into a PointSet whose Base IS the surface
// (pointMap is the identity — no decimation is applied at load time; the
// Scale Builder decimates separately for the scale ladder). A "class"
// vertex property, if present, becomes GroundTruth; otherwise every point
// is LABEL_UNASSIGNED.
func Load(path string) (*data.PointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return nil, fmt.Errorf("ply: %s: missing ply magic", path)
	}

	n := 0
	properties := []string{}
	classPropIndex := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "end_header" {
			break
		}
		switch {
		case strings.HasPrefix(line, "element vertex"):
			n, _ = strconv.Atoi(strings.Fields(line)[2])
		case strings.HasPrefix(line, "property"):
			fields := strings.Fields(line)
			name := fields[len(fields)-1]
			if name == "class" || name == "training_class" {
				classPropIndex = len(properties)
			}
			properties = append(properties, name)
		}
	}

	ps := &data.PointSet{
		Base:          &data.Base{Points: make([]data.Point, n), Colors: make([]data.RGB, n)},
		PointMap:      make([]int, n),
		GroundTruth:   make([]uint8, n),
		SurfaceLabels: make([]uint8, n),
		SurfaceColors: make([]data.RGB, n),
	}
	xi, yi, zi := indexOf(properties, "x"), indexOf(properties, "y"), indexOf(properties, "z")
	ri, gi, bi := indexOf(properties, "red"), indexOf(properties, "green"), indexOf(properties, "blue")

	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ply: %s: truncated vertex data at row %d", path, i)
		}
		fields := strings.Fields(sc.Text())
		x, _ := strconv.ParseFloat(fields[xi], 64)
		y, _ := strconv.ParseFloat(fields[yi], 64)
		z, _ := strconv.ParseFloat(fields[zi], 64)
		ps.Base.Points[i] = data.Point{X: x, Y: y, Z: z}
		ps.PointMap[i] = i
		ps.GroundTruth[i] = data.LabelUnassigned
		ps.SurfaceLabels[i] = data.LabelUnassigned

		if ri >= 0 && gi >= 0 && bi >= 0 {
			r, _ := strconv.Atoi(fields[ri])
			g, _ := strconv.Atoi(fields[gi])
			b, _ := strconv.Atoi(fields[bi])
			ps.Base.Colors[i] = data.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
			ps.SurfaceColors[i] = ps.Base.Colors[i]
		}
		if classPropIndex >= 0 {
			code, _ := strconv.Atoi(fields[classPropIndex])
			ps.GroundTruth[i] = uint8(code)
			ps.SurfaceLabels[i] = uint8(code)
		}
	}

	return ps, nil
}

func indexOf(props []string, name string) int {
	for i, p := range props {
		if p == name {
			return i
		}
	}
	return -1
}

// Loader adapts Load to the training.Loader / PointSetLoader interface.
type Loader struct{}

func (Loader) Load(path string) (*data.PointSet, error) { return Load(path) }

// WriteSurface writes ps's surface points and labels back out as ASCII
// PLY, the counterpart to Load.
func WriteSurface(path string, ps *data.PointSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := len(ps.PointMap)

	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", n)
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintln(w, "property uchar red")
	fmt.Fprintln(w, "property uchar green")
	fmt.Fprintln(w, "property uchar blue")
	fmt.Fprintln(w, "property uchar class")
	fmt.Fprintln(w, "end_header")

	for i := 0; i < n; i++ {
		p := ps.Base.Points[ps.PointMap[i]]
		c := ps.SurfaceColors[i]
		fmt.Fprintf(w, "%f %f %f %d %d %d %d\n", p.X, p.Y, p.Z, c.R, c.G, c.B, ps.SurfaceLabels[i])
	}

	return w.Flush()
}
