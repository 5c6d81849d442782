package main

import (
	"encoding/gob"
	"io"
	"log"
	"os"

	"github.com/geolas/pointclassify/internal/classify"
	"github.com/geolas/pointclassify/internal/config"
	"github.com/geolas/pointclassify/internal/data"
	"github.com/geolas/pointclassify/internal/feature"
	_ "github.com/geolas/pointclassify/internal/forest" // registers classify.RandomForest
	_ "github.com/geolas/pointclassify/internal/gbt"    // registers classify.GradientBoostedTrees
	"github.com/geolas/pointclassify/internal/geofeatures"
	"github.com/geolas/pointclassify/internal/ply"
	"github.com/geolas/pointclassify/internal/preview"
	"github.com/geolas/pointclassify/internal/scale"
	"github.com/geolas/pointclassify/internal/training"
	"github.com/geolas/pointclassify/pkg"
	"github.com/geolas/pointclassify/tools"
)

const logo = `
  _ __   ___ (_)_ __ | |_ ___| | __ _ ___ ___(_) _ _
 | '_ \ / _ \| | '_ \| __/ __| |/ _  / __/ __| || | | |
 | |_) | (_) | | | | | |_\__ \ | (_| \__ \__ \ || |_| |
 | .__/ \___/|_|_| |_|\__|___/_|\__,_|___/___/_| \__, |
 | |                                             |___/
 |_| point-cloud semantic classification core
`

func main() {
	log.SetPrefix("[pointclassify] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds)

	args := os.Args[1:]
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [sample|classify].")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case tools.CommandSample:
		runSample(rest)
	case tools.CommandClassify:
		runClassify(rest)
	default:
		log.Fatalf("Unrecognized command %q. Command must be one of [sample|classify]", cmd)
	}
}

func runSample(args []string) {
	flags := tools.ParseFlagsForCommandSample(args)
	log.Print(logo)

	var opts *config.SamplerOptions
	if *flags.Config != "" {
		loaded, err := config.Load(*flags.Config)
		if err != nil {
			log.Fatal(err)
		}
		opts = loaded.Sample
	}
	if opts == nil {
		opts = &config.SamplerOptions{
			NumScales:       *flags.NumScales,
			Radius:          *flags.Radius,
			MaxSamples:      *flags.MaxSamples,
			Seed:            *flags.Seed,
			OutputModelPath: *flags.Output,
		}
	}

	labels := defaultLabelSet()
	startResolution := opts.StartResolution
	if startResolution == 0 {
		startResolution = -1.0
	}

	progress, err := tools.ConnectProgressPublisher(opts.ProgressBroker, "pointclassify/sample")
	if err != nil {
		log.Fatal(err)
	}
	defer progress.Close()

	var samples [][]float32
	var sampleClasses []uint8
	fileIndex := 0

	err = pkg.GetTrainingData(
		loggingLoader{inner: ply.Loader{}, progress: progress, total: len(opts.Files), index: &fileIndex},
		func(base *data.Base) feature.FeatureProvider { return geofeatures.NewProvider(base) },
		labels,
		opts.Files,
		&startResolution,
		training.Options{
			NumScales:   opts.NumScales,
			Radius:      opts.Radius,
			MaxSamples:  opts.MaxSamples,
			AsprsSubset: asprsSubsetFromInts(opts.AsprsSubset),
			Seed:        opts.Seed,
		},
		func(numFeatures, numLabels int) {
			tools.LogOutput("training sampler initialized", numFeatures, "features", numLabels, "labels")
		},
		func(features []float32, baseIndex int, trainingClassCode uint8) {
			cp := make([]float32, len(features))
			copy(cp, features)
			samples = append(samples, cp)
			sampleClasses = append(sampleClasses, trainingClassCode)
		},
	)
	if err != nil {
		log.Fatal(err)
	}
	tools.LogOutput("assembled", len(samples), "training samples across", labels.NumLabels(), "classes")
	_ = progress.Publish(tools.Event{Stage: "sample_complete", Total: len(samples)})

	if opts.OutputModelPath != "" {
		if werr := writeTrainingSet(opts.OutputModelPath, samples, sampleClasses); werr != nil {
			log.Fatal(werr)
		}
		tools.LogOutput("wrote assembled training set to", opts.OutputModelPath)
	}
}

// trainingSet is the gob-encoded dataset this CLI hands off to an external
// model fitter; fitting a forest/ensemble from it is out of scope for this
// core (spec.md §1), which only assembles a balanced sample.
type trainingSet struct {
	Features [][]float32
	Classes  []uint8
}

func writeTrainingSet(path string, features [][]float32, classes []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(trainingSet{Features: features, Classes: classes})
}

// loggingLoader wraps a training.Loader, publishing a tools.Event
// before each file loads.
type loggingLoader struct {
	inner    training.Loader
	progress *tools.ProgressPublisher
	total    int
	index    *int
}

func (l loggingLoader) Load(path string) (*data.PointSet, error) {
	*l.index++
	_ = l.progress.Publish(tools.Event{Stage: "sample_file", File: path, Index: *l.index, Total: l.total})
	return l.inner.Load(path)
}

func runClassify(args []string) {
	flags := tools.ParseFlagsForCommandClassify(args)
	log.Print(logo)

	var opts *config.ClassifyOptions
	if *flags.Config != "" {
		loaded, err := config.Load(*flags.Config)
		if err != nil {
			log.Fatal(err)
		}
		opts = loaded.Classify
	}
	if opts == nil {
		reg, err := pkg.ParseRegularization(*flags.Regularization)
		if err != nil {
			log.Fatal(err)
		}
		opts = &config.ClassifyOptions{
			Input:            *flags.Input,
			Output:           *flags.Output,
			ModelPath:        *flags.Model,
			Regularization:   reg,
			RegRadius:        *flags.RegRadius,
			UseColors:        *flags.UseColors,
			UnclassifiedOnly: *flags.UnclassifiedOnly,
			EvaluateStats:    *flags.EvaluateStats,
			StatsPath:        *flags.StatsPath,
			NumWorkers:       *flags.NumWorkers,
		}
	}

	finder := tools.NewStandardFileFinder([]string{".ply"}, false)
	files, err := finder.GetInputFiles(opts)
	if err != nil {
		log.Fatal(err)
	}

	labels := defaultLabelSet()

	eval, err := classify.Build(osModelSource{}, opts.ModelPath)
	if err != nil {
		log.Fatal(err)
	}

	skip := map[uint8]bool{}
	for _, code := range opts.Skip {
		skip[uint8(code)] = true
	}

	progress, err := tools.ConnectProgressPublisher(opts.ProgressBroker, "pointclassify/classify")
	if err != nil {
		log.Fatal(err)
	}
	defer progress.Close()

	for i, file := range files {
		_ = progress.Publish(tools.Event{Stage: "classify_file", File: file, Index: i + 1, Total: len(files)})

		ps, err := ply.Load(file)
		if err != nil {
			log.Fatal(err)
		}

		scales := scale.BuildLadder(ps.Base.Points, ps.Spacing(), 3)
		provider := geofeatures.NewProvider(ps.Base)
		bank := feature.NewBank(provider, scales, 1.0)

		cerr := pkg.ClassifyData(eval, bank, ps, labels, pkg.ClassifyOptions{
			Regularization:   opts.Regularization,
			RegRadius:        opts.RegRadius,
			UseColors:        opts.UseColors,
			UnclassifiedOnly: opts.UnclassifiedOnly,
			EvaluateStats:    opts.EvaluateStats,
			Skip:             skip,
			StatsPath:        opts.StatsPath,
			NumWorkers:       opts.NumWorkers,
		})
		if cerr != nil {
			log.Fatal(cerr)
		}

		if opts.DebugPreviewPath != "" {
			if perr := preview.WriteLabelledCloud(opts.DebugPreviewPath, ps.Base, labels); perr != nil {
				log.Fatal(perr)
			}
		}

		if opts.Output != "" {
			if werr := ply.WriteSurface(opts.Output, ps); werr != nil {
				log.Fatal(werr)
			}
		}
		tools.LogOutput("> done processing", file)
	}
	_ = progress.Publish(tools.Event{Stage: "classify_complete", Total: len(files)})
}

func asprsSubsetFromInts(codes []int) map[uint8]bool {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[uint8]bool, len(codes))
	for _, c := range codes {
		set[uint8(c)] = true
	}
	return set
}

// defaultLabelSet is a minimal ASPRS ground/vegetation/building label
// table, standing in for the project-specific label table a real
// deployment would supply as its own getTrainingLabels() collaborator.
func defaultLabelSet() *data.LabelSet {
	return data.NewLabelSet([]data.Label{
		{Name: "ground", AsprsCode: 2, Color: data.RGB{R: 139, G: 90, B: 43}},
		{Name: "vegetation", AsprsCode: 5, Color: data.RGB{R: 34, G: 139, B: 34}},
		{Name: "building", AsprsCode: 6, Color: data.RGB{R: 178, G: 34, B: 34}},
	})
}

type osModelSource struct{}

func (osModelSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
