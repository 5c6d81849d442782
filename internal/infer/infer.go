// Package infer implements the Per-point Inference Engine's first pass:
// evaluating the Classifier Evaluator over every working-set point and
// writing raw per-class probabilities, ahead of whichever regularization
// mode (None, LocalSmooth, GraphCut) the caller selected.
//
// The concurrency shape is grounded on
// pkg/tiler.go:exportTreeAsTileset: one buffered work channel sized to a
// multiple of the consumer count, a fixed pool of consumer goroutines sized
// to runtime.NumCPU(), a shared sync.WaitGroup, and an unbuffered error
// channel drained by a collector goroutine while the consumers run.
package infer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
)

// workUnit is one chunk of contiguous Base indices handed to a consumer.
type workUnit struct {
	start, end int // [start, end)
}

// Result holds the raw per-class probability matrix produced by the sweep,
// row-major: Probs[c*n+j] is P(class c | point j).
type Result struct {
	NumClasses int
	N          int
	Probs      []float32
}

func (r *Result) At(class, point int) float32 { return r.Probs[class*r.N+point] }

// chunkSize bounds how many points one workUnit covers, balancing
// scheduling overhead against load-imbalance between consumers.
const chunkSize = 4096

// Sweep evaluates eval over every point in bank/base and returns the dense
// probability matrix, using numWorkers consumer goroutines (0 means
// runtime.NumCPU()).
func Sweep(eval classify.Evaluator, bank *feature.Bank, base *data.Base, numClasses int, numWorkers int) (*Result, error) {
	n := base.Count()
	result := &Result{NumClasses: numClasses, N: n, Probs: make([]float32, numClasses*n)}
	if n == 0 {
		return result, nil
	}

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	workChannel := make(chan workUnit, numWorkers*5)
	errorChannel := make(chan error)

	// Errors are collected while the consumers run, so a consumer reporting
	// a bad point never blocks on an unread channel.
	var firstErr error
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for err := range errorChannel {
			if firstErr == nil {
				firstErr = err
			}
		}
	}()

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	go produce(n, workChannel, &waitGroup)

	for i := 0; i < numWorkers; i++ {
		waitGroup.Add(1)
		go consume(eval, bank, result, workChannel, errorChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(errorChannel)
	<-collected

	if firstErr != nil {
		return nil, fmt.Errorf("infer: errors raised during the inference sweep: %w", firstErr)
	}

	return result, nil
}

func produce(n int, out chan<- workUnit, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(out)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		out <- workUnit{start: start, end: end}
	}
}

func consume(eval classify.Evaluator, bank *feature.Bank, result *Result, in <-chan workUnit, errs chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	features := make([]float32, bank.NumFeatures())
	probs := make([]float32, result.NumClasses)

	for wu := range in {
		for j := wu.start; j < wu.end; j++ {
			bank.Gather(j, features)
			eval(features, probs)
			if err := validateProbs(probs); err != nil {
				errs <- fmt.Errorf("infer: point %d: %w", j, err)
				continue
			}
			for c := 0; c < result.NumClasses; c++ {
				result.Probs[c*result.N+j] = probs[c]
			}
		}
	}
}

var errProbLength = errors.New("evaluator wrote a probability vector of unexpected length")

func validateProbs(probs []float32) error {
	if len(probs) == 0 {
		return errProbLength
	}
	return nil
}
