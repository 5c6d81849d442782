// Package gbt is the default GradientBoostedTrees Evaluator builder. It
// reuses the wlattner-rf-style binary-split tree node shape internal/forest
// deserializes, but combines trees additively — each tree contributes a
// per-class margin at its leaf, margins are summed across the whole
// ensemble (staged boosting rounds, the standard multi-class GBT
// formulation), and the final probability vector is a softmax over the
// summed margins rather than an average of per-tree class frequencies.
package gbt

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/geolas/pointclassify/internal/classify"
)

// Node is one split or leaf of a boosted tree. A leaf carries Margin, the
// per-class score this tree contributes when a feature vector reaches it.
type Node struct {
	Left, Right *Node
	SplitVar    int
	SplitVal    float64
	Margin      []float64
	Leaf        bool
}

// Ensemble is a fitted gradient-boosted-trees model: a sequence of trees
// whose leaf margins sum into the raw per-class score before softmax.
type Ensemble struct {
	Trees      []*Node
	NumClasses int
}

func init() {
	classify.RegisterBuilder(classify.GradientBoostedTrees, Build)
}

// Evaluate sums every tree's leaf margin for features into a raw score
// vector, then writes its softmax into outProbs (len(outProbs) must equal
// e.NumClasses).
func (e *Ensemble) Evaluate(features []float32, outProbs []float32) {
	scores := make([]float64, len(outProbs))
	for _, root := range e.Trees {
		n := root
		for !n.Leaf {
			if float64(features[n.SplitVar]) > n.SplitVal {
				n = n.Right
			} else {
				n = n.Left
			}
		}
		for c, m := range n.Margin {
			if c >= len(scores) {
				break
			}
			scores[c] += m
		}
	}
	softmax(scores, outProbs)
}

func softmax(scores []float64, out []float32) {
	if len(scores) == 0 {
		return
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	exp := make([]float64, len(scores))
	for i, s := range scores {
		exp[i] = math.Exp(s - max)
		sum += exp[i]
	}
	if sum == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}
	for i := range out {
		out[i] = float32(exp[i] / sum)
	}
}

// Load reads an Ensemble from r, which must begin with classify.GBTMagic
// followed by a gob-encoded Ensemble.
func Load(r io.Reader) (*Ensemble, error) {
	br := bufio.NewReader(r)
	header := make([]byte, len(classify.GBTMagic))
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("gbt: reading magic header: %w", err)
	}
	if !bytes.Equal(header, classify.GBTMagic) {
		return nil, fmt.Errorf("gbt: not a gradient-boosted-trees model file")
	}
	var e Ensemble
	if err := gob.NewDecoder(br).Decode(&e); err != nil {
		return nil, fmt.Errorf("gbt: decoding model: %w", err)
	}
	return &e, nil
}

// Save writes e to w, prefixed with classify.GBTMagic.
func Save(w io.Writer, e *Ensemble) error {
	if _, err := w.Write(classify.GBTMagic); err != nil {
		return fmt.Errorf("gbt: writing magic header: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(e); err != nil {
		return fmt.Errorf("gbt: encoding model: %w", err)
	}
	return nil
}

// Build opens path, deserializes an Ensemble, and returns it wrapped as a
// classify.Evaluator closure. It is registered against
// classify.GradientBoostedTrees at package init so a caller importing this
// package (for side effect) can classify.Build a "GBTREESv1"-tagged model
// file.
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
