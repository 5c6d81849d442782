package data

// LabelUnassigned marks a surface point with no ground-truth classification.
// LabelUnclassified marks a point that inference defaulted rather than
// actually recognised. Both are ASPRS codes, not training codes.
const (
	LabelUnassigned   uint8 = 255
	LabelUnclassified uint8 = 1
)

// RGB is a label display color, 8 bit per channel.
type RGB struct {
	R, G, B uint8
}

// Label is one entry of the training-code class table: a human readable
// name, the ASPRS code it round-trips to on writeback, and a display color
// for color-mode output.
type Label struct {
	Name      string
	AsprsCode uint8
	Color     RGB
}

// LabelSet is the full 0..L-1 training-code class table together with its
// ASPRS<->training translation arrays. It is provided as static lookup
// data by the caller; the core only ever indexes it.
type LabelSet struct {
	Labels        []Label
	asprs2train   [256]uint8
	train2asprs   [256]uint8
	hasAsprs2Tr   [256]bool
}

// NewLabelSet builds a LabelSet and its two ASPRS<->training translation
// tables from a caller-supplied list of labels: a label's position in the
// slice is its training index, so training indices are 0..len(labels)-1.
func NewLabelSet(labels []Label) *LabelSet {
	ls := &LabelSet{Labels: labels}
	for trainCode, l := range labels {
		ls.train2asprs[trainCode] = l.AsprsCode
		ls.asprs2train[l.AsprsCode] = uint8(trainCode)
		ls.hasAsprs2Tr[l.AsprsCode] = true
	}
	return ls
}

// NumLabels returns L, the number of training classes.
func (ls *LabelSet) NumLabels() int {
	return len(ls.Labels)
}

// Train2Asprs translates a training-code class index to its ASPRS code.
func (ls *LabelSet) Train2Asprs(trainCode uint8) uint8 {
	return ls.train2asprs[trainCode]
}

// Asprs2Train translates an ASPRS code to a training-code class index.
// ok is false if the code has no mapped training class.
func (ls *LabelSet) Asprs2Train(asprsCode uint8) (trainCode uint8, ok bool) {
	return ls.asprs2train[asprsCode], ls.hasAsprs2Tr[asprsCode]
}

// Label returns the Label for a training-code class index.
func (ls *LabelSet) Label(trainCode uint8) Label {
	return ls.Labels[trainCode]
}
