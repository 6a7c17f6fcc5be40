package main

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type cmdOptions struct {
	OptCorpus        string `short:"c" long:"corpus" description:"corpus file, one document per line" required:"true"`
	OptQuery         string `short:"q" long:"query" description:"structured query (YAML or JSON)"`
	OptQueryFile     string `short:"f" long:"query-file" description:"file holding the structured query"`
	OptField         string `long:"field" description:"field documents are indexed into"`
	OptCollectLeaves bool   `long:"collect-leaves" description:"highlight every matched term, not only the span"`
	OptStopWords     bool   `long:"stop-words" description:"remove English stop words"`
	OptMax           int    `short:"n" long:"max" description:"stop after that many hits"`
	OptRcfile        string `long:"rcfile" description:"path to the settings file"`
	OptVerbose       bool   `short:"v" long:"verbose" description:"log debug messages"`
}

// Settings read from --rcfile; command line flags win.
type config struct {
	Field         string `yaml:"Field"`
	CollectLeaves bool   `yaml:"CollectLeaves"`
	StopWords     bool   `yaml:"StopWords"`
	MaxHits       int    `yaml:"MaxHits"`
}

const defaultField = "contents"

func (c *config) readFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %v", filename)
	}
	defer f.Close()

	if err = yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(c); err != nil {
		return errors.Wrap(err, "failed to decode YAML")
	}
	return nil
}

func parseOptions(args []string) (*cmdOptions, *config, error) {
	opts := &cmdOptions{}
	p := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := p.ParseArgs(args); err != nil {
		return nil, nil, errors.Wrap(err, "invalid command line options")
	}
	if (opts.OptQuery == "") == (opts.OptQueryFile == "") {
		return nil, nil, errors.New("exactly one of --query and --query-file is required")
	}

	cfg := &config{Field: defaultField}
	if opts.OptRcfile != "" {
		if err := cfg.readFilename(opts.OptRcfile); err != nil {
			return nil, nil, errors.Wrap(err, "invalid settings file")
		}
	}
	if opts.OptField != "" {
		cfg.Field = opts.OptField
	}
	if opts.OptCollectLeaves {
		cfg.CollectLeaves = true
	}
	if opts.OptStopWords {
		cfg.StopWords = true
	}
	if opts.OptMax > 0 {
		cfg.MaxHits = opts.OptMax
	}
	return opts, cfg, nil
}
