package structured

import (
	"fmt"
	"os"
	"strings"

	"github.com/balzaczyy/golucene-intervals/core/analysis"
	"github.com/balzaczyy/golucene-intervals/core/search/intervals"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// queryparser/xml/CoreParser.java

/*
Clause is one node of a structured query, decoded from YAML or JSON.
Exactly one of the operator keys must be set:

	near:
	  slop: 5
	  clauses:
	    - or:
	        - term: iranian
	        - term: north
	    - term: akbar

Text of term and phrase clauses goes through the parser's analyzer;
text analyzed to nothing (a stop word) becomes match-all, which
proximity operators drop.
*/
type Clause struct {
	Field     string           `json:"field,omitempty" yaml:"field,omitempty"`
	Term      string           `json:"term,omitempty" yaml:"term,omitempty"`
	Phrase    string           `json:"phrase,omitempty" yaml:"phrase,omitempty"`
	Prefix    string           `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Or        []Clause         `json:"or,omitempty" yaml:"or,omitempty"`
	Near      *NearClause      `json:"near,omitempty" yaml:"near,omitempty"`
	NearFirst *NearFirstClause `json:"nearFirst,omitempty" yaml:"nearFirst,omitempty"`
	MatchAll  bool             `json:"matchAll,omitempty" yaml:"matchAll,omitempty"`
}

type NearClause struct {
	Slop    int  `json:"slop" yaml:"slop"`
	InOrder bool `json:"inOrder" yaml:"inOrder"`
	// Defaults to the parser's setting when absent.
	CollectLeaves *bool    `json:"collectLeaves,omitempty" yaml:"collectLeaves,omitempty"`
	Clauses       []Clause `json:"clauses" yaml:"clauses"`
}

type NearFirstClause struct {
	End    int     `json:"end" yaml:"end"`
	Clause *Clause `json:"clause" yaml:"clause"`
}

// Turns clause trees into queries.
type Parser struct {
	DefaultField string
	Analyzer     *analysis.Analyzer
	// Near default configuration; a clause's slop and order always win.
	Near intervals.NearConfig
}

func NewParser(defaultField string, analyzer *analysis.Analyzer) *Parser {
	return &Parser{
		DefaultField: defaultField,
		Analyzer:     analyzer,
		Near:         intervals.DefaultNearConfig(),
	}
}

// Decodes a YAML (or JSON) document; unknown keys are rejected.
func Decode(data []byte) (*Clause, error) {
	var c Clause
	if err := yaml.UnmarshalWithOptions(data, &c, yaml.DisallowUnknownField()); err != nil {
		return nil, &intervals.InvalidProximityError{Op: "decode", Reason: err.Error()}
	}
	return &c, nil
}

func (p *Parser) Parse(data []byte) (intervals.Query, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return p.Build(c)
}

func (p *Parser) ParseString(s string) (intervals.Query, error) {
	return p.Parse([]byte(s))
}

func (p *Parser) ParseFile(path string) (intervals.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read query file %v", path)
	}
	q, err := p.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse query file %v", path)
	}
	return q, nil
}

func (c *Clause) operators() []string {
	var ops []string
	if c.Term != "" {
		ops = append(ops, "term")
	}
	if c.Phrase != "" {
		ops = append(ops, "phrase")
	}
	if c.Prefix != "" {
		ops = append(ops, "prefix")
	}
	if c.Or != nil {
		ops = append(ops, "or")
	}
	if c.Near != nil {
		ops = append(ops, "near")
	}
	if c.NearFirst != nil {
		ops = append(ops, "nearFirst")
	}
	if c.MatchAll {
		ops = append(ops, "matchAll")
	}
	return ops
}

// Builds the query a decoded clause tree describes.
func (p *Parser) Build(c *Clause) (intervals.Query, error) {
	return p.build(c, p.DefaultField)
}

func (p *Parser) build(c *Clause, field string) (intervals.Query, error) {
	if c.Field != "" {
		field = c.Field
	}
	ops := c.operators()
	if len(ops) != 1 {
		return nil, &intervals.InvalidProximityError{
			Op:     "clause",
			Reason: fmt.Sprintf("exactly one operator expected, got [%v]", strings.Join(ops, ", ")),
		}
	}

	switch ops[0] {
	case "term":
		return p.text(field, c.Term)
	case "phrase":
		return p.text(field, c.Phrase)
	case "prefix":
		return intervals.NewPrefixQuery(field, p.normalize(c.Prefix)), nil
	case "matchAll":
		return intervals.NewMatchAllDocsQuery(), nil
	case "or":
		subs, err := p.buildAll(c.Or, field)
		if err != nil {
			return nil, err
		}
		return intervals.NewOrQuery(subs...)
	case "near":
		subs, err := p.buildAll(c.Near.Clauses, field)
		if err != nil {
			return nil, err
		}
		cfg := p.Near
		cfg.Slop, cfg.InOrder = c.Near.Slop, c.Near.InOrder
		if c.Near.CollectLeaves != nil {
			cfg.CollectLeaves = *c.Near.CollectLeaves
		}
		return intervals.NewNearQuery(cfg, subs...)
	case "nearFirst":
		if c.NearFirst.Clause == nil {
			return nil, &intervals.InvalidProximityError{Op: "nearFirst", Reason: "no clause"}
		}
		if _, err := intervals.NewRangeIntervalFilter(0, c.NearFirst.End); err != nil {
			return nil, err
		}
		sub, err := p.build(c.NearFirst.Clause, field)
		if err != nil {
			return nil, err
		}
		if sub.Kind() == intervals.MATCH_ALL {
			return sub, nil
		}
		return intervals.NewNearFirstQuery(c.NearFirst.End, sub)
	}
	panic("should not be here")
}

func (p *Parser) buildAll(clauses []Clause, field string) ([]intervals.Query, error) {
	subs := make([]intervals.Query, 0, len(clauses))
	for i := range clauses {
		sub, err := p.build(&clauses[i], field)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Analyzes text into a term, a phrase, or match-all when nothing is left.
func (p *Parser) text(field, text string) (intervals.Query, error) {
	tokens := p.Analyzer.Analyze(text)
	switch len(tokens) {
	case 0:
		log.Debugf("%q analyzed to nothing, matching all", text)
		return intervals.NewMatchAllDocsQuery(), nil
	case 1:
		return intervals.NewTermQuery(field, tokens[0].Term), nil
	}
	terms := make([]string, len(tokens))
	positions := make([]int, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
		positions[i] = t.Position - tokens[0].Position
	}
	return intervals.NewPhraseQueryWithPositions(field, terms, positions)
}

func (p *Parser) normalize(prefix string) string {
	if p.Analyzer.KeepCase {
		return prefix
	}
	return strings.ToLower(prefix)
}
