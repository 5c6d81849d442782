// Package config holds the run options for both the Training Sampler and
// the Per-point Inference Engine, loaded from a YAML config file (via
// gopkg.in/yaml.v3, grounded on kwv-tudomesh's config layer) or assembled
// by a CLI front-end. The struct and its Copy() method mirror TilerOptions
// and TilerOptions.Copy() from the tiling stack this package descends from.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Regularization selects the spatial label-regularization strategy applied
// after per-point inference.
type Regularization string

const (
	RegularizationNone        Regularization = "NONE"
	RegularizationLocalSmooth Regularization = "LOCAL_SMOOTH"
	RegularizationGraphCut    Regularization = "GRAPH_CUT"
)

// UnknownRegularizationError is returned by ParseRegularization for any
// name outside the three recognized values. It is a configuration error:
// fatal at entry, before any point data is touched.
type UnknownRegularizationError struct {
	Name string
}

func (e *UnknownRegularizationError) Error() string {
	return "config: unknown regularization mode: " + e.Name
}

// ParseRegularization normalizes a regularization name from a config file
// or CLI flag into one of the three recognized modes.
func ParseRegularization(name string) (Regularization, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE", "":
		return RegularizationNone, nil
	case "LOCAL_SMOOTH", "LOCALSMOOTH":
		return RegularizationLocalSmooth, nil
	case "GRAPH_CUT", "GRAPHCUT":
		return RegularizationGraphCut, nil
	default:
		return "", &UnknownRegularizationError{Name: name}
	}
}

// SamplerOptions configures one Training Sampler run.
type SamplerOptions struct {
	Files           []string `yaml:"files"`
	NumScales       int      `yaml:"numScales"`
	Radius          float64  `yaml:"radius"`
	MaxSamples      int      `yaml:"maxSamples"`
	AsprsSubset     []int    `yaml:"asprsSubset"`
	StartResolution float64  `yaml:"startResolution"`
	Seed            int64    `yaml:"seed"`
	OutputModelPath string   `yaml:"outputModelPath"`
	ProgressBroker  string   `yaml:"progressBroker"`
}

// ClassifyOptions configures one Per-point Inference Engine + Label Writer
// run.
type ClassifyOptions struct {
	Input            string         `yaml:"input"`
	Output           string         `yaml:"output"`
	ModelPath        string         `yaml:"modelPath"`
	Regularization   Regularization `yaml:"regularization"`
	RegRadius        float64        `yaml:"regRadius"`
	UseColors        bool           `yaml:"useColors"`
	UnclassifiedOnly bool           `yaml:"unclassifiedOnly"`
	EvaluateStats    bool           `yaml:"evaluateStats"`
	Skip             []int          `yaml:"skip"`
	StatsPath        string         `yaml:"statsPath"`
	DebugPreviewPath string         `yaml:"debugPreviewPath"`
	NumWorkers       int            `yaml:"numWorkers"`
	ProgressBroker   string         `yaml:"progressBroker"`
}

// Options is the root configuration document, per-command sections
// mirroring TilerOptions's Command/TilerIndexOptions/TilerMergeOptions
// split.
type Options struct {
	Command   string           `yaml:"command"` // "sample" or "classify"
	Sample    *SamplerOptions  `yaml:"sample"`
	Classify  *ClassifyOptions `yaml:"classify"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var opts Options
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Copy returns a deep-enough copy of opts, mirroring TilerOptions.Copy():
// shared slices aren't defensively cloned, but the two command-specific
// sub-structs are copied by value so mutating one run's options never
// leaks into another's.
func (opts *Options) Copy() *Options {
	newOpts := &Options{
		Command: opts.Command,
	}
	if opts.Sample != nil {
		sample := *opts.Sample
		newOpts.Sample = &sample
	}
	if opts.Classify != nil {
		classify := *opts.Classify
		newOpts.Classify = &classify
	}
	return newOpts
}
