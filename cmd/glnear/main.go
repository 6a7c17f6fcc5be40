/*
glnear indexes a corpus holding one document per line and prints the
lines matching a structured proximity query, with the matched terms
marked underneath:

	glnear --corpus news.txt --collect-leaves --query '
	near:
	  slop: 5
	  clauses:
	    - or: [{term: iranian}, {term: north}]
	    - term: akbar'
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/balzaczyy/golucene-intervals/core/analysis"
	"github.com/balzaczyy/golucene-intervals/core/index/memory"
	"github.com/balzaczyy/golucene-intervals/core/queryparser/structured"
	"github.com/balzaczyy/golucene-intervals/core/search/intervals"
	"github.com/jessevdk/go-flags"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("glnear")

func setupLogging(w io.Writer, verbose bool) {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.MustStringFormatter(`%{time:15:04:05.000} %{module} %{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(leveled)
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, cfg, err := parseOptions(args)
	if err != nil {
		return err
	}
	setupLogging(stderr, opts.OptVerbose)

	analyzer := analysis.NewSimpleAnalyzer()
	if cfg.StopWords {
		analyzer = analysis.NewStopAnalyzer()
	}
	idx, corpus, err := memory.LoadFile(opts.OptCorpus, cfg.Field, analyzer)
	if err != nil {
		return err
	}

	parser := structured.NewParser(cfg.Field, analyzer)
	parser.Near.CollectLeaves = cfg.CollectLeaves
	var q intervals.Query
	if opts.OptQueryFile != "" {
		q, err = parser.ParseFile(opts.OptQueryFile)
	} else {
		q, err = parser.ParseString(opts.OptQuery)
	}
	if err != nil {
		return errors.Wrap(err, "invalid query")
	}
	log.Debugf("query: %v", q.ToString(cfg.Field))

	s := intervals.NewSearcher(idx)
	s.CollectIntervals = true
	s.MaxHits = cfg.MaxHits
	hits, err := s.Search(q)
	if err != nil {
		return errors.Wrap(err, "search failed")
	}

	for _, hit := range hits {
		line := corpus[hit.Doc]
		fmt.Fprintf(stdout, "%v\t%.3f\t%v\n", hit.Doc, hit.Freq, line)
		if carets := caretLine(line, highlightSpans(line, hit.Intervals)); carets != "" {
			fmt.Fprintf(stdout, "\t\t%v\n", carets)
		}
	}
	log.Infof("%v hits for %v", len(hits), q.ToString(cfg.Field))
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if ferr, ok := errors.Cause(err).(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, ferr.Message)
			return
		}
		fmt.Fprintf(os.Stderr, "glnear: %v\n", err)
		os.Exit(1)
	}
}
