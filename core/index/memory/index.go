package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/balzaczyy/golucene-intervals/core/analysis"
	"github.com/balzaczyy/golucene-intervals/core/index/model"
	"github.com/google/btree"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("memory")

const btreeDegree = 32

// A field of a document to be indexed: its name and analyzed tokens.
type Field struct {
	Name   string
	Tokens []analysis.Token
}

func NewTextField(name, text string, analyzer *analysis.Analyzer) Field {
	return Field{name, analyzer.Analyze(text)}
}

type posting struct {
	doc       int
	positions []int
	starts    []int
	ends      []int
}

type termEntry struct {
	term     string
	postings []*posting // sorted by doc
}

func termLess(a, b *termEntry) bool { return a.term < b.term }

type fieldIndex struct {
	terms *btree.BTreeG[*termEntry]
}

/*
Index is a single in-memory segment holding positions and offsets for
every indexed term. Documents receive consecutive ids starting at 0.

It is written by one goroutine; once loaded it may be read
concurrently, since every position enum it hands out carries its own
cursor.
*/
type Index struct {
	fields map[string]*fieldIndex
	maxDoc int
}

func NewIndex() *Index {
	return &Index{fields: make(map[string]*fieldIndex)}
}

// Adds a document and returns its id.
func (idx *Index) AddDocument(fields ...Field) int {
	doc := idx.maxDoc
	idx.maxDoc++
	for _, f := range fields {
		idx.addField(doc, f)
	}
	return doc
}

func (idx *Index) addField(doc int, f Field) {
	fi, ok := idx.fields[f.Name]
	if !ok {
		fi = &fieldIndex{btree.NewG[*termEntry](btreeDegree, termLess)}
		idx.fields[f.Name] = fi
	}

	byTerm := make(map[string][]analysis.Token)
	for _, t := range f.Tokens {
		byTerm[t.Term] = append(byTerm[t.Term], t)
	}
	for term, tokens := range byTerm {
		sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Position < tokens[j].Position })
		p := &posting{doc: doc}
		for i, t := range tokens {
			if i > 0 && tokens[i-1].Position == t.Position {
				continue // same term twice at one position
			}
			p.positions = append(p.positions, t.Position)
			p.starts = append(p.starts, t.StartOffset)
			p.ends = append(p.ends, t.EndOffset)
		}

		entry, found := fi.terms.Get(&termEntry{term: term})
		if !found {
			entry = &termEntry{term: term}
			fi.terms.ReplaceOrInsert(entry)
		}
		entry.postings = append(entry.postings, p)
	}
}

func (idx *Index) MaxDoc() int {
	return idx.maxDoc
}

func (idx *Index) lookup(field, term string) *termEntry {
	fi, ok := idx.fields[field]
	if !ok {
		return nil
	}
	entry, _ := fi.terms.Get(&termEntry{term: term})
	return entry
}

// Returns the number of documents containing term, 0 if none.
func (idx *Index) DocFreq(field, term string) int {
	if entry := idx.lookup(field, term); entry != nil {
		return len(entry.postings)
	}
	return 0
}

/*
Returns a fresh positions enum for term, or nil if the term does not
occur in field.
*/
func (idx *Index) Positions(field, term string) (model.DocsAndPositionsEnum, error) {
	entry := idx.lookup(field, term)
	if entry == nil {
		return nil, nil
	}
	return newPositionsEnum(entry.postings), nil
}

/*
Returns the terms of field starting with prefix, in term order. At
most max terms are returned; max <= 0 means no limit.
*/
func (idx *Index) ExpandPrefix(field, prefix string, max int) ([]string, error) {
	fi, ok := idx.fields[field]
	if !ok {
		return nil, nil
	}
	var terms []string
	fi.terms.AscendGreaterOrEqual(&termEntry{term: prefix}, func(e *termEntry) bool {
		if !strings.HasPrefix(e.term, prefix) {
			return false
		}
		terms = append(terms, e.term)
		return max <= 0 || len(terms) < max
	})
	return terms, nil
}

// Returns the indexed field names, sorted.
func (idx *Index) Fields() []string {
	names := make([]string, 0, len(idx.fields))
	for name := range idx.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (idx *Index) String() string {
	return fmt.Sprintf("MemoryIndex(maxDoc=%v, fields=%v)", idx.maxDoc, idx.Fields())
}
