// Package project loads a project's TOML configuration (spec.md §6) and
// resolves it, together with CLI flag overrides, into a runnable Project:
// a model, its prior and likelihood, and the file paths its data flows
// through.
package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/fuscadan/gfs/bayes"
	"github.com/fuscadan/gfs/gfserr"
)

// defaultLeafBitDepthRange mirrors gfs.constants.LEAF_BIT_DEPTH_RANGE.
const defaultLeafBitDepthRange = 10

// Preprocessor turns one raw CSV row into a bayes.DataPoint. Implementations
// are model-specific (spec.md §6's "[io.preprocessor]").
type Preprocessor interface {
	ProcessRow(row []string, rowNum int) (bayes.DataPoint, error)
}

// ModelFactory builds a bayes.Model from a config's [model.kwargs] table.
type ModelFactory func(kwargs map[string]any) (bayes.Model, error)

// PreprocessorFactory builds a Preprocessor from a config's
// [io.preprocessor.kwargs] table.
type PreprocessorFactory func(kwargs map[string]any) (Preprocessor, error)

// Registry resolves model and preprocessor names to their factories (the
// source's string-keyed MODELS/PREPROCESSORS lookup tables, spec.md §9).
type Registry struct {
	Models        map[string]ModelFactory
	Preprocessors map[string]PreprocessorFactory
}

// ProjectIO holds the unrendered (template-token) file paths and the
// resolved preprocessor.
type ProjectIO struct {
	TrainingDataFile     string
	InputDataFile        string
	Preprocessor         Preprocessor
	PriorFile            *string
	PosteriorFile        string
	PosteriorSamplesFile string
	PredictionFile       string
}

// Params holds the run-sizing knobs of spec.md §6's "[params]" section.
type Params struct {
	NPosteriorSamples int
	NDataPoints       int
	LeafBitDepthRange uint64
}

// Project is a fully-resolved run: a model plus the IO/Params it reads and
// writes through.
type Project struct {
	Name   string
	Tags   []string
	Model  bayes.Model
	IO     ProjectIO
	Params Params
	// RunID correlates this run's log lines (not in spec.md; ambient
	// tracing concern, see SPEC_FULL.md §3).
	RunID uuid.UUID
}

// rawConfig mirrors the TOML shape of spec.md §6.
type rawConfig struct {
	Name string   `toml:"name"`
	Tags []string `toml:"tags"`
	Model struct {
		Name   string         `toml:"name"`
		Kwargs map[string]any `toml:"kwargs"`
	} `toml:"model"`
	Params struct {
		NPosteriorSamples int  `toml:"n_posterior_samples"`
		NDataPoints       int  `toml:"n_data_points"`
		LeafBitDepthRange *int `toml:"leaf_bit_depth_range"`
	} `toml:"params"`
	IO struct {
		TrainingDataFile     string  `toml:"training_data_file"`
		InputDataFile        string  `toml:"input_data_file"`
		PriorFile            *string `toml:"prior_file"`
		PosteriorFile        string  `toml:"posterior_file"`
		PosteriorSamplesFile string  `toml:"posterior_samples_file"`
		PredictionFile       string  `toml:"prediction_file"`
		Preprocessor         struct {
			Name   string         `toml:"name"`
			Kwargs map[string]any `toml:"kwargs"`
		} `toml:"preprocessor"`
	} `toml:"io"`
}

// Overrides are the per-subcommand CLI flags of spec.md §6 that win over
// the config file when set (mirrors original_source's
// "kwargs.get(...) or config[...]").
type Overrides struct {
	Tags                 []string
	TrainingDataFile     string
	InputDataFile        string
	PriorFile            string
	PosteriorFile        string
	PosteriorSamplesFile string
	NDataPoints          int
	NPosteriorSamples    int
}

func firstNonEmpty(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// Load reads and resolves a project from a TOML config file at path,
// applying CLI overrides and resolving model/preprocessor names through
// reg.
func Load(path string, overrides Overrides, reg Registry) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	var raw rawConfig
	if _, err := toml.NewDecoder(f).Decode(&raw); err != nil {
		return nil, &gfserr.ConfigError{Msg: fmt.Sprintf("parsing %s: %s", path, err)}
	}

	modelFactory, ok := reg.Models[raw.Model.Name]
	if !ok {
		return nil, &gfserr.ConfigError{Field: "model.name", Msg: fmt.Sprintf("unknown model %q", raw.Model.Name)}
	}
	model, err := modelFactory(raw.Model.Kwargs)
	if err != nil {
		return nil, err
	}

	preprocessorFactory, ok := reg.Preprocessors[raw.IO.Preprocessor.Name]
	if !ok {
		return nil, &gfserr.ConfigError{Field: "io.preprocessor.name", Msg: fmt.Sprintf("unknown preprocessor %q", raw.IO.Preprocessor.Name)}
	}
	preprocessor, err := preprocessorFactory(raw.IO.Preprocessor.Kwargs)
	if err != nil {
		return nil, err
	}

	leafBitDepthRange := defaultLeafBitDepthRange
	if raw.Params.LeafBitDepthRange != nil {
		leafBitDepthRange = *raw.Params.LeafBitDepthRange
	}

	trainingDataFile := firstNonEmpty(overrides.TrainingDataFile, raw.IO.TrainingDataFile)
	if trainingDataFile == "" {
		return nil, &gfserr.ConfigError{Field: "io.training_data_file", Msg: "missing required field"}
	}
	inputDataFile := firstNonEmpty(overrides.InputDataFile, raw.IO.InputDataFile)
	posteriorFile := firstNonEmpty(overrides.PosteriorFile, raw.IO.PosteriorFile)
	if posteriorFile == "" {
		return nil, &gfserr.ConfigError{Field: "io.posterior_file", Msg: "missing required field"}
	}
	posteriorSamplesFile := firstNonEmpty(overrides.PosteriorSamplesFile, raw.IO.PosteriorSamplesFile)
	if posteriorSamplesFile == "" {
		return nil, &gfserr.ConfigError{Field: "io.posterior_samples_file", Msg: "missing required field"}
	}

	var priorFile *string
	if overrides.PriorFile != "" {
		priorFile = &overrides.PriorFile
	} else {
		priorFile = raw.IO.PriorFile
	}

	nDataPoints := overrides.NDataPoints
	if nDataPoints == 0 {
		nDataPoints = raw.Params.NDataPoints
	}
	nPosteriorSamples := overrides.NPosteriorSamples
	if nPosteriorSamples == 0 {
		nPosteriorSamples = raw.Params.NPosteriorSamples
	}

	tags := overrides.Tags
	if len(tags) == 0 {
		tags = raw.Tags
	}

	return &Project{
		Name: raw.Name,
		Tags: tags,
		Model: model,
		IO: ProjectIO{
			TrainingDataFile:     trainingDataFile,
			InputDataFile:        inputDataFile,
			Preprocessor:         preprocessor,
			PriorFile:            priorFile,
			PosteriorFile:        posteriorFile,
			PosteriorSamplesFile: posteriorSamplesFile,
			PredictionFile:       raw.IO.PredictionFile,
		},
		Params: Params{
			NPosteriorSamples: nPosteriorSamples,
			NDataPoints:       nDataPoints,
			LeafBitDepthRange: uint64(leafBitDepthRange),
		},
		RunID: uuid.New(),
	}, nil
}

// templateValues is original_source's _template_values.
func (p *Project) templateValues() map[string]string {
	return map[string]string{
		"project_name":        p.Name,
		"tags":                strings.Join(p.Tags, "_"),
		"n_posterior_samples": fmt.Sprint(p.Params.NPosteriorSamples),
		"n_data_points":       fmt.Sprint(p.Params.NDataPoints),
	}
}

// render substitutes "<< token >>" placeholders, a direct port of
// original_source's Project._render.
func (p *Project) render(input string) string {
	output := input
	for k, v := range p.templateValues() {
		output = strings.ReplaceAll(output, fmt.Sprintf("<< %s >>", k), v)
	}
	return output
}

func (p *Project) TrainingDataFile() string { return p.render(p.IO.TrainingDataFile) }
func (p *Project) InputDataFile() string    { return p.render(p.IO.InputDataFile) }

func (p *Project) PriorFile() (string, bool) {
	if p.IO.PriorFile == nil {
		return "", false
	}
	return p.render(*p.IO.PriorFile), true
}

func (p *Project) PosteriorFile() string        { return p.render(p.IO.PosteriorFile) }
func (p *Project) PosteriorSamplesFile() string { return p.render(p.IO.PosteriorSamplesFile) }
func (p *Project) PredictionFile() string       { return p.render(p.IO.PredictionFile) }
