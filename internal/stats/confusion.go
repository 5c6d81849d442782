// Package stats accumulates classification accuracy statistics and
// renders them as a stable-precision report, grounded on the run-id
// convention used throughout banshee-data-velocity.report
// (internal/lidar/analysis_run_manager.go's uuid.New().String() run ids)
// and on shopspring/decimal for the percentage figures in the rendered
// report, avoiding float formatting drift between runs.
package stats

import "fmt"

// ConfusionMatrix accumulates (predicted, actual) training-class code
// pairs as the Label Writer evaluates each classified point against its
// ground truth.
type ConfusionMatrix struct {
	numClasses int
	counts     []int64 // counts[predicted*numClasses+actual]
}

// NewConfusionMatrix allocates an empty L×L accumulator.
func NewConfusionMatrix(numClasses int) *ConfusionMatrix {
	return &ConfusionMatrix{numClasses: numClasses, counts: make([]int64, numClasses*numClasses)}
}

// Record tallies one (predicted, actual) training-code pair.
func (m *ConfusionMatrix) Record(predicted, actual uint8) {
	if int(predicted) >= m.numClasses || int(actual) >= m.numClasses {
		return
	}
	m.counts[int(predicted)*m.numClasses+int(actual)]++
}

// Count returns the accumulated count for one (predicted, actual) cell.
func (m *ConfusionMatrix) Count(predicted, actual int) int64 {
	return m.counts[predicted*m.numClasses+actual]
}

// Total is the number of recorded pairs.
func (m *ConfusionMatrix) Total() int64 {
	var t int64
	for _, c := range m.counts {
		t += c
	}
	return t
}

// Accuracy is the fraction of recorded pairs on the diagonal.
func (m *ConfusionMatrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	var correct int64
	for c := 0; c < m.numClasses; c++ {
		correct += m.Count(c, c)
	}
	return float64(correct) / float64(total)
}

func (m *ConfusionMatrix) String() string {
	return fmt.Sprintf("ConfusionMatrix{classes=%d total=%d accuracy=%.4f}", m.numClasses, m.Total(), m.Accuracy())
}
