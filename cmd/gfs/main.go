package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fuscadan/gfs/bayes"
	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/gfsio"
	"github.com/fuscadan/gfs/internal/gfslog"
	"github.com/fuscadan/gfs/internal/xrand"
	"github.com/fuscadan/gfs/models/binomial"
	"github.com/fuscadan/gfs/project"
)

const version = "0.1.0"

var (
	dashversion bool
	dashdebug   bool
	dashconfig  string
	dashseed    string
)

var registry = project.Registry{
	Models: map[string]project.ModelFactory{
		"binomial": binomial.NewModel,
	},
	Preprocessors: map[string]project.PreprocessorFactory{
		"binomial": binomial.NewPreprocessor,
	},
}

func init() {
	flag.BoolVar(&dashversion, "version", false, "print the version and exit")
	flag.BoolVar(&dashdebug, "debug", false, "enable debug logging")
	flag.StringVar(&dashconfig, "config", "", "project TOML configuration file")
	flag.StringVar(&dashseed, "seed", "", "seed for the sampler's random source (default: unseeded-but-reproducible)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func fail(err error) {
	switch e := err.(type) {
	case *gfserr.ConfigError:
		exitf("configuration error: %s", e)
	case *gfserr.DataError:
		exitf("bad training data: %s", e)
	case *gfserr.DomainError:
		exitf("domain error: %s", e)
	case *gfserr.SamplingExhausted:
		exitf("sampling error: %s", e)
	case *gfserr.CombineExhausted:
		exitf("combine error: %s", e)
	case *gfserr.IOError:
		exitf("I/O error: %s", e)
	default:
		exitf("error: %s", err)
	}
}

func main() {
	flag.Parse()
	if dashversion {
		fmt.Println(version)
		return
	}
	if dashdebug {
		gfslog.SetLevel(gfslog.Debug)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s -config <project.toml> update_prior [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "    %s -config <project.toml> sample_posterior [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "    %s -config <project.toml> histogram [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "    %s -config <project.toml> predict [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}
	if dashconfig == "" {
		exitf("missing required -config flag")
	}

	switch args[0] {
	case "update_prior":
		updatePrior(args[1:])
	case "sample_posterior":
		samplePosterior(args[1:])
	case "histogram":
		histogram(args[1:])
	case "predict":
		predict(args[1:])
	default:
		exitf("unknown subcommand %q", args[0])
	}
}

// overridesFlagSet builds the common set of CLI overrides shared by every
// subcommand (spec.md §6's per-run overrides).
func overridesFlagSet(name string) (*flag.FlagSet, *project.Overrides) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	ov := &project.Overrides{}
	fs.StringVar(&ov.TrainingDataFile, "training_data_file", "", "override the config's training_data_file")
	fs.StringVar(&ov.InputDataFile, "input_data_file", "", "override the config's input_data_file")
	fs.StringVar(&ov.PriorFile, "prior_file", "", "override the config's prior_file")
	fs.StringVar(&ov.PosteriorFile, "posterior_file", "", "override the config's posterior_file")
	fs.StringVar(&ov.PosteriorSamplesFile, "posterior_samples_file", "", "override the config's posterior_samples_file")
	fs.IntVar(&ov.NDataPoints, "n_data_points", 0, "override the config's n_data_points")
	fs.IntVar(&ov.NPosteriorSamples, "n_posterior_samples", 0, "override the config's n_posterior_samples")
	fs.Func("tags", "comma-separated run tags, overriding the config's tags", func(v string) error {
		ov.Tags = splitNonEmpty(v, ',')
		return nil
	})
	return fs, ov
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func loadProject(fs *flag.FlagSet, ov *project.Overrides, rest []string) *project.Project {
	if err := fs.Parse(rest); err != nil {
		exitf("%s", err)
	}
	proj, err := project.Load(dashconfig, *ov, registry)
	if err != nil {
		fail(err)
	}
	gfslog.Infof("run %s: %s %s", proj.RunID, fs.Name(), proj.Name)
	return proj
}

func rng() *xrand.Source {
	return xrand.NewFromString(dashseed)
}

func updatePrior(rest []string) {
	fs, ov := overridesFlagSet("update_prior")
	proj := loadProject(fs, ov, rest)

	prior := proj.Model.Prior()
	if priorFile, ok := proj.PriorFile(); ok {
		loaded, err := gfsio.LoadLeaves(priorFile)
		if err != nil {
			fail(err)
		}
		prior = loaded
	}

	data, err := gfsio.ReadTrainingData(proj.TrainingDataFile(), proj.IO.Preprocessor.ProcessRow)
	if err != nil {
		fail(err)
	}
	if proj.Params.NDataPoints > 0 && proj.Params.NDataPoints < len(data) {
		data = data[:proj.Params.NDataPoints]
	}

	posterior, err := bayes.UpdatePrior(prior, proj.Model.Likelihood(), data, proj.Params.LeafBitDepthRange)
	if err != nil {
		fail(err)
	}
	posterior = bayes.FinalizePosterior(posterior)

	if err := gfsio.ExportLeavesCompressed(posterior, proj.PosteriorFile()); err != nil {
		fail(err)
	}
}

func samplePosterior(rest []string) {
	fs, ov := overridesFlagSet("sample_posterior")
	proj := loadProject(fs, ov, rest)

	posterior, err := gfsio.LoadLeavesCompressed(proj.PosteriorFile())
	if err != nil {
		fail(err)
	}

	n := proj.Params.NPosteriorSamples
	samples, err := bayes.Sample(posterior, proj.Model.ParamDomain(), n, rng())
	if err != nil {
		fail(err)
	}

	if err := gfsio.WriteSamples(samples, proj.Model.ParamDomain().Names(), proj.PosteriorSamplesFile()); err != nil {
		fail(err)
	}
}

func histogram(rest []string) {
	fs, ov := overridesFlagSet("histogram")
	proj := loadProject(fs, ov, rest)

	samples, err := gfsio.ReadSamples(proj.PosteriorSamplesFile())
	if err != nil {
		fail(err)
	}

	entries := bayes.SortedEntries(samples.Histogram())
	if err := gfsio.WriteHistogram(entries, proj.Model.ParamDomain().Names(), proj.PosteriorSamplesFile()+".histogram.csv"); err != nil {
		fail(err)
	}
}

func predict(rest []string) {
	fs, ov := overridesFlagSet("predict")
	proj := loadProject(fs, ov, rest)

	samples, err := gfsio.ReadSamples(proj.PosteriorSamplesFile())
	if err != nil {
		fail(err)
	}

	rows, err := gfsio.ReadTrainingData(proj.InputDataFile(), proj.IO.Preprocessor.ProcessRow)
	if err != nil {
		fail(err)
	}

	for _, row := range rows {
		dists, err := bayes.Predict(proj.Model, samples, row.X)
		if err != nil {
			fail(err)
		}
		mean, err := dists.Mean()
		if err != nil {
			fail(err)
		}
		if err := gfsio.WritePredictions(dists.Categories, mean, predictionFile(proj.PredictionFile(), row.ID)); err != nil {
			fail(err)
		}
	}
}

// predictionFile inserts a row id before the extension of base, producing
// one distinct filename per input row (spec.md §6: "one prediction CSV per
// input row").
func predictionFile(base string, rowID int) string {
	ext := filepath.Ext(base)
	trimmed := strings.TrimSuffix(base, ext)
	return trimmed + "." + strconv.Itoa(rowID) + ext
}
