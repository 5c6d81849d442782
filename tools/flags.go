package tools

import (
	"flag"
	"log"
)

const (
	CommandSample   = "sample"
	CommandClassify = "classify"
)

// SampleFlags mirrors the FlagsForCommandIndex shape for the Training
// Sampler entry point.
type SampleFlags struct {
	Config     *string
	NumScales  *int
	Radius     *float64
	MaxSamples *int
	Seed       *int64
	Output     *string
}

// ClassifyFlags mirrors the FlagsForCommandVerify shape for the Per-point
// Inference + Label Writer entry point.
type ClassifyFlags struct {
	Config           *string
	Input            *string
	Output           *string
	Model            *string
	Regularization   *string
	RegRadius        *float64
	UseColors        *bool
	UnclassifiedOnly *bool
	EvaluateStats    *bool
	StatsPath        *string
	NumWorkers       *int
}

func ParseFlagsForCommandSample(args []string) SampleFlags {
	flagCommand := flag.NewFlagSet("command-sample", flag.ExitOnError)

	config := flagCommand.String("config", "", "Path to a YAML run configuration file.")
	numScales := flagCommand.Int("num-scales", 3, "Number of scales in the resolution ladder.")
	radius := flagCommand.Float64("radius", 1.0, "Neighbourhood radius used by finest-scale features.")
	maxSamples := flagCommand.Int("max-samples", 5000, "Per-class sample cap.")
	var seed int64
	flagCommand.Int64Var(&seed, "seed", 0, "PRNG seed; 0 derives from the wall clock.")
	output := flagCommand.String("output", "", "Path to write the assembled training set to.")

	if err := flagCommand.Parse(args); err != nil {
		log.Fatal(err)
	}

	return SampleFlags{
		Config:     config,
		NumScales:  numScales,
		Radius:     radius,
		MaxSamples: maxSamples,
		Seed:       &seed,
		Output:     output,
	}
}

func ParseFlagsForCommandClassify(args []string) ClassifyFlags {
	flagCommand := flag.NewFlagSet("command-classify", flag.ExitOnError)

	config := flagCommand.String("config", "", "Path to a YAML run configuration file.")
	input := flagCommand.String("input", "", "Input point file or folder.")
	output := flagCommand.String("output", "", "Output point file or folder.")
	model := flagCommand.String("model", "", "Path to a fitted classifier model file.")
	regularization := flagCommand.String("regularization", "NONE", "Regularization mode: NONE, LOCAL_SMOOTH, or GRAPH_CUT.")
	regRadius := flagCommand.Float64("reg-radius", 1.0, "Local-Smooth neighbour-averaging radius.")
	useColors := flagCommand.Bool("use-colors", false, "Write label colors instead of ASPRS codes.")
	unclassifiedOnly := flagCommand.Bool("unclassified-only", false, "Only update points currently classified as unclassified.")
	evaluateStats := flagCommand.Bool("evaluate-stats", false, "Accumulate a confusion matrix against existing ground truth.")
	statsPath := flagCommand.String("stats-path", "", "Path to write the stats report to.")
	numWorkers := flagCommand.Int("workers", 0, "Number of inference worker goroutines; 0 uses all cores.")

	if err := flagCommand.Parse(args); err != nil {
		log.Fatal(err)
	}

	return ClassifyFlags{
		Config:           config,
		Input:            input,
		Output:           output,
		Model:            model,
		Regularization:   regularization,
		RegRadius:        regRadius,
		UseColors:        useColors,
		UnclassifiedOnly: unclassifiedOnly,
		EvaluateStats:    evaluateStats,
		StatsPath:        statsPath,
		NumWorkers:       numWorkers,
	}
}
