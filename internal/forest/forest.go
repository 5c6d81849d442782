// Package forest is the default RandomForest Evaluator builder: a small
// decision-tree-ensemble classifier deserialized with encoding/gob, in the
// same shape as a fitted wlattner-rf tree.Classifier (Node.Left/Right,
// SplitVar, SplitVal, ClassCounts, Leaf), generalized from one tree to a
// forest of them and wired behind internal/classify's Builder registry.
// Actually fitting a forest remains out of scope for this core (spec §1);
// this package only deserializes one that was fitted and saved elsewhere.
package forest

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/geolas/pointclassify/internal/classify"
)

// Node is one split or leaf of a fitted tree, the same fields a wlattner-rf
// tree.Node carries (minus bookkeeping only training needs, like Impurity
// and Samples).
type Node struct {
	Left, Right *Node
	SplitVar    int
	SplitVal    float64
	ClassCounts []int
	Leaf        bool
}

// Forest is a fitted random forest: an unweighted ensemble of trees voting
// by averaging each tree's leaf class-frequency distribution.
type Forest struct {
	Trees      []*Node
	NumClasses int
}

func init() {
	classify.RegisterBuilder(classify.RandomForest, Build)
}

// Evaluate walks features through every tree to a leaf, averages each
// tree's normalized ClassCounts row, and writes the result into outProbs
// (len(outProbs) must equal f.NumClasses).
func (f *Forest) Evaluate(features []float32, outProbs []float32) {
	for c := range outProbs {
		outProbs[c] = 0
	}
	if len(f.Trees) == 0 {
		return
	}
	for _, root := range f.Trees {
		n := root
		for !n.Leaf {
			if float64(features[n.SplitVar]) > n.SplitVal {
				n = n.Right
			} else {
				n = n.Left
			}
		}
		total := 0
		for _, ct := range n.ClassCounts {
			total += ct
		}
		if total == 0 {
			continue
		}
		for c, ct := range n.ClassCounts {
			if c >= len(outProbs) {
				break
			}
			outProbs[c] += float32(ct) / float32(total)
		}
	}
	inv := 1.0 / float32(len(f.Trees))
	for c := range outProbs {
		outProbs[c] *= inv
	}
}

// Load reads a Forest from r, which must begin with
// classify.RandomForestMagic followed by a gob-encoded Forest.
func Load(r io.Reader) (*Forest, error) {
	br := bufio.NewReader(r)
	header := make([]byte, len(classify.RandomForestMagic))
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("forest: reading magic header: %w", err)
	}
	if !bytes.Equal(header, classify.RandomForestMagic) {
		return nil, fmt.Errorf("forest: not a random-forest model file")
	}
	var f Forest
	if err := gob.NewDecoder(br).Decode(&f); err != nil {
		return nil, fmt.Errorf("forest: decoding model: %w", err)
	}
	return &f, nil
}

// Save writes f to w, prefixed with classify.RandomForestMagic.
func Save(w io.Writer, f *Forest) error {
	if _, err := w.Write(classify.RandomForestMagic); err != nil {
		return fmt.Errorf("forest: writing magic header: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("forest: encoding model: %w", err)
	}
	return nil
}

// Build opens path, deserializes a Forest, and returns it wrapped as a
// classify.Evaluator closure. It is registered against
// classify.RandomForest at package init so a caller importing this package
// (for side effect) can classify.Build a "RFORESTv1"-tagged model file.
func Build(path string) (classify.Evaluator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	model, err := Load(f)
	if err != nil {
		return nil, err
	}
	return model.Evaluate, nil
}
