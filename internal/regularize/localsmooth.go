package regularize

import (
	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/infer"
	"github.com/geolas/pointclassify/internal/spatial"
	"gonum.org/v1/gonum/mat"
)

// None is the no-regularization path: each point's label is the
// evaluator's own argmax, ties broken by smallest class index.
func None(eval classify.Evaluator, bank *feature.Bank, base *data.Base, numClasses, numWorkers int) error {
	result, err := infer.Sweep(eval, bank, base, numClasses, numWorkers)
	if err != nil {
		return err
	}
	n := base.Count()
	for j := 0; j < n; j++ {
		base.Labels[j] = uint8(argmaxColumn(result, j))
	}
	return nil
}

func argmaxColumn(r *infer.Result, j int) int {
	best, bestP := 0, r.At(0, j)
	for c := 1; c < r.NumClasses; c++ {
		if p := r.At(c, j); p > bestP {
			best, bestP = c, p
		}
	}
	return best
}

// LocalSmooth runs the two-pass Local-Smooth path: a dense L×N probability
// matrix built by the inference sweep (pass 1), then a radius-search
// neighbour average and argmax (pass 2). The dense matrix is a
// gonum/mat.Dense, row-major by class, mirroring the reference corpus's own
// use of gonum/mat for dense per-point matrices.
func LocalSmooth(eval classify.Evaluator, bank *feature.Bank, base *data.Base, idx *spatial.Tree, numClasses int, regRadius float64, numWorkers int) error {
	result, err := infer.Sweep(eval, bank, base, numClasses, numWorkers)
	if err != nil {
		return err
	}

	n := base.Count()
	probMatrix := mat.NewDense(numClasses, n, nil)
	for c := 0; c < numClasses; c++ {
		for j := 0; j < n; j++ {
			probMatrix.Set(c, j, float64(result.At(c, j)))
		}
	}

	sums := make([]float64, numClasses)
	for j := 0; j < n; j++ {
		p := base.Points[j]
		nbrs := idx.Radius(p.X, p.Y, p.Z, regRadius)
		if len(nbrs) == 0 {
			base.Labels[j] = uint8(argmaxColumn(result, j))
			continue
		}
		for c := range sums {
			sums[c] = 0
		}
		for _, nb := range nbrs {
			for c := 0; c < numClasses; c++ {
				sums[c] += probMatrix.At(c, nb.Index)
			}
		}
		// Dividing by len(nbrs) is omitted: it scales every class's sum
		// identically and so cannot change the argmax.
		best, bestP := 0, sums[0]
		for c := 1; c < numClasses; c++ {
			avg := sums[c]
			if avg > bestP {
				best, bestP = c, avg
			}
		}
		base.Labels[j] = uint8(best)
	}
	return nil
}
