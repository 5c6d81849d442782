// Package pkg is the public facade of the point-cloud classification core:
// a thin entry point (NewTiler/ITiler in the tiling stack this is adapted
// from, GetTrainingData/ClassifyData here) wiring the internal/ components
// together behind a small, stable exported surface.
package pkg

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/config"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	"github.com/geolas/pointclassify/internal/regularize"
	"github.com/geolas/pointclassify/internal/stats"
	"github.com/geolas/pointclassify/internal/training"
	"github.com/geolas/pointclassify/internal/writer"
)

// ParseRegularization re-exports config.ParseRegularization at the package
// boundary.
func ParseRegularization(name string) (config.Regularization, error) {
	return config.ParseRegularization(name)
}

// fileModelSource opens model files straight off the local filesystem; the
// only ModelSource implementation the core ships, since model
// deserialization itself is out of scope for this core.
type fileModelSource struct{}

func (fileModelSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Fingerprint sniffs a model file's header to select its evaluator kind.
func Fingerprint(path string) (classify.ModelKind, error) {
	return classify.Fingerprint(fileModelSource{}, path)
}

// GetTrainingData re-exports training.GetTrainingData at the package
// boundary.
func GetTrainingData(
	loader training.Loader,
	providerFactory func(base *data.Base) feature.FeatureProvider,
	labels *data.LabelSet,
	files []string,
	startResolution *float64,
	opts training.Options,
	initFn training.InitFunc,
	storeFn training.StoreFunc,
) error {
	return training.GetTrainingData(loader, providerFactory, labels, files, startResolution, opts, initFn, storeFn)
}

// ClassifyOptions bundles the caller-facing parameters of one
// classification run: regularization mode and radius, writeback mode,
// skip set, and stats reporting.
type ClassifyOptions struct {
	Regularization   config.Regularization
	RegRadius        float64
	UseColors        bool
	UnclassifiedOnly bool
	EvaluateStats    bool
	Skip             map[uint8]bool
	StatsPath        string
	NumWorkers       int
}

// ClassifyData resizes base.Labels, runs the requested regularization
// mode's inference path, then runs the Label Writer over the surface,
// optionally persisting a stats report.
func ClassifyData(
	eval classify.Evaluator,
	bank *feature.Bank,
	ps *data.PointSet,
	labels *data.LabelSet,
	opts ClassifyOptions,
) error {
	ps.Base.Labels = make([]uint8, ps.Base.Count())
	numClasses := labels.NumLabels()

	var err error
	switch opts.Regularization {
	case config.RegularizationNone, "":
		err = regularize.None(eval, bank, ps.Base, numClasses, opts.NumWorkers)
	case config.RegularizationLocalSmooth:
		err = regularize.LocalSmooth(eval, bank, ps.Base, ps.GetIndex(), numClasses, opts.RegRadius, opts.NumWorkers)
	case config.RegularizationGraphCut:
		tiling := regularize.BuildTiling(ps.GetBbox(), ps.Base.Points)
		regularize.GraphCut(eval, bank, ps.Base, numClasses, ps.GetIndex(), tiling)
	default:
		return &config.UnknownRegularizationError{Name: string(opts.Regularization)}
	}
	if err != nil {
		return fmt.Errorf("pkg: inference failed: %w", err)
	}

	var matrix *stats.ConfusionMatrix
	if opts.EvaluateStats {
		matrix = stats.NewConfusionMatrix(numClasses)
	}

	writer.Write(ps, labels, writer.Options{
		UseColors:        opts.UseColors,
		UnclassifiedOnly: opts.UnclassifiedOnly,
		EvaluateStats:    opts.EvaluateStats,
		Skip:             opts.Skip,
	}, matrix)

	if opts.EvaluateStats && opts.StatsPath != "" {
		infos := make([]stats.LabelInfo, numClasses)
		for c, l := range labels.Labels {
			infos[c] = stats.LabelInfo{Name: l.Name, AsprsCode: l.AsprsCode}
		}
		report := stats.BuildReport(matrix, infos, time.Now())
		if werr := stats.WriteFile(opts.StatsPath, report); werr != nil {
			return fmt.Errorf("pkg: failed to write stats report: %w", werr)
		}
	}

	return nil
}
