package intervals

import (
	"bytes"
	"fmt"

	. "github.com/balzaczyy/golucene-intervals/core/search/model"
)

// Max number of terms a prefix clause expands to.
const maxClauseCount = 1024

type QueryKind int

const (
	TERM QueryKind = iota
	PHRASE
	PREFIX
	OR
	CONJUNCTION
	FILTERED
	NEAR
	MATCH_ALL
)

var queryKindNames = []string{"TERM", "PHRASE", "PREFIX", "OR", "CONJUNCTION", "FILTERED", "NEAR", "MATCH_ALL"}

func (k QueryKind) String() string {
	return queryKindNames[k]
}

// search/Query.java

/*
Query is a node of a positional query tree. The set of node types is
closed; Kind tells them apart without type inspection.

Queries are immutable once built and may be shared between
goroutines. Every call to Intervals builds a fresh iterator tree bound
to one reader.
*/
type Query interface {
	Kind() QueryKind
	// Field of every leaf; "" for MatchAllDocsQuery.
	Field() string
	ToString(field string) string
	Equals(other Query) bool
	HashCode() int
	Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error)
	// Documents where the query may match, ignoring positions.
	Docs(r LeafReader) (DocIdSetIterator, error)
	query()
}

func stringHash(s string) int {
	h := int32(0)
	for _, c := range s {
		h = 31*h + int32(c)
	}
	return int(h)
}

func hashQueries(seed int, subs []Query) int {
	const prime = 31
	result := seed
	for _, sub := range subs {
		result = prime*result + sub.HashCode()
	}
	return result
}

func equalQueries(a, b []Query) bool {
	if len(a) != len(b) {
		return false
	}
	for i, q := range a {
		if !q.Equals(b[i]) {
			return false
		}
	}
	return true
}

func commonField(op string, subs []Query) (string, error) {
	if len(subs) == 0 {
		return "", newInvalidProximityError(op, "no clauses")
	}
	field := subs[0].Field()
	for _, sub := range subs {
		if sub.Kind() == MATCH_ALL {
			return "", newInvalidProximityError(op, "match-all clause %v cannot take part in proximity", sub.ToString(""))
		}
		if sub.Field() != field {
			return "", newInvalidProximityError(op, "clauses on different fields (%v, %v)", field, sub.Field())
		}
	}
	return field, nil
}

func writeField(buf *bytes.Buffer, own, field string) {
	if own != field {
		buf.WriteString(own)
		buf.WriteRune(':')
	}
}

// search/TermQuery.java

type TermQuery struct {
	field, term string
}

func NewTermQuery(field, term string) *TermQuery {
	return &TermQuery{field, term}
}

func (q *TermQuery) Kind() QueryKind { return TERM }
func (q *TermQuery) Field() string   { return q.field }
func (q *TermQuery) query()          {}

func (q *TermQuery) ToString(field string) string {
	var buf bytes.Buffer
	writeField(&buf, q.field, field)
	buf.WriteString(q.term)
	return buf.String()
}

func (q *TermQuery) String() string { return q.ToString("") }

func (q *TermQuery) Equals(other Query) bool {
	o, ok := other.(*TermQuery)
	return ok && *o == *q
}

func (q *TermQuery) HashCode() int {
	const prime = 31
	result := int(TERM) + 1
	result = prime*result + stringHash(q.field)
	result = prime*result + stringHash(q.term)
	return result
}

func (q *TermQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	positions, err := r.Positions(q.field, q.term)
	if err != nil {
		return nil, err
	}
	if positions == nil {
		return newEmptyIntervalIterator(), nil
	}
	return NewTermIntervalIterator(positions), nil
}

func (q *TermQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	positions, err := r.Positions(q.field, q.term)
	if err != nil {
		return nil, err
	}
	if positions == nil {
		return newEmptyDocs(), nil
	}
	return positions, nil
}

// search/PhraseQuery.java

// Exact phrase: the terms at consecutive positions. Matched as a
// single leaf.
type PhraseQuery struct {
	field     string
	terms     []string
	positions []int
}

func NewPhraseQuery(field string, terms ...string) (*PhraseQuery, error) {
	positions := make([]int, len(terms))
	for i := range positions {
		positions[i] = i
	}
	return NewPhraseQueryWithPositions(field, terms, positions)
}

// Phrase whose terms sit at the given relative positions, leaving
// holes where stop words were removed.
func NewPhraseQueryWithPositions(field string, terms []string, positions []int) (*PhraseQuery, error) {
	if len(terms) == 0 {
		return nil, newInvalidProximityError("phrase", "no terms")
	}
	if len(positions) != len(terms) {
		return nil, newInvalidProximityError("phrase", "%v positions for %v terms", len(positions), len(terms))
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			return nil, newInvalidProximityError("phrase", "positions must increase, got %v", positions)
		}
	}
	return &PhraseQuery{field, terms, positions}, nil
}

func (q *PhraseQuery) Kind() QueryKind { return PHRASE }
func (q *PhraseQuery) Field() string   { return q.field }
func (q *PhraseQuery) query()          {}

func (q *PhraseQuery) ToString(field string) string {
	var buf bytes.Buffer
	writeField(&buf, q.field, field)
	buf.WriteRune('"')
	for i, term := range q.terms {
		if i > 0 {
			for hole := q.positions[i-1] + 1; hole < q.positions[i]; hole++ {
				buf.WriteString(" ?")
			}
			buf.WriteRune(' ')
		}
		buf.WriteString(term)
	}
	buf.WriteRune('"')
	return buf.String()
}

func (q *PhraseQuery) String() string { return q.ToString("") }

func (q *PhraseQuery) Equals(other Query) bool {
	o, ok := other.(*PhraseQuery)
	if !ok || o.field != q.field || len(o.terms) != len(q.terms) {
		return false
	}
	for i, term := range q.terms {
		if o.terms[i] != term || o.positions[i] != q.positions[i] {
			return false
		}
	}
	return true
}

func (q *PhraseQuery) HashCode() int {
	const prime = 31
	result := int(PHRASE) + 1
	result = prime*result + stringHash(q.field)
	for i, term := range q.terms {
		result = prime*result + stringHash(term)
		result = prime*result + q.positions[i]
	}
	return result
}

func (q *PhraseQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	subs := make([]IntervalIterator, len(q.terms))
	gaps := make([]int, len(q.terms))
	for i, term := range q.terms {
		positions, err := r.Positions(q.field, term)
		if err != nil {
			return nil, err
		}
		if positions == nil {
			return newEmptyIntervalIterator(), nil
		}
		subs[i] = NewTermIntervalIterator(positions)
		if i > 0 {
			gaps[i] = q.positions[i] - q.positions[i-1] - 1
		}
	}
	return NewBlockIntervalIteratorWithGaps(gaps, subs...), nil
}

func (q *PhraseQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	docs := make([]DocIdSetIterator, len(q.terms))
	for i, term := range q.terms {
		positions, err := r.Positions(q.field, term)
		if err != nil {
			return nil, err
		}
		if positions == nil {
			return newEmptyDocs(), nil
		}
		docs[i] = positions
	}
	return newConjunctionDocs(docs...), nil
}

// search/PrefixQuery.java

// Any term starting with a prefix; expanded against each reader.
type PrefixQuery struct {
	field, prefix string
}

func NewPrefixQuery(field, prefix string) *PrefixQuery {
	return &PrefixQuery{field, prefix}
}

func (q *PrefixQuery) Kind() QueryKind { return PREFIX }
func (q *PrefixQuery) Field() string   { return q.field }
func (q *PrefixQuery) query()          {}

func (q *PrefixQuery) ToString(field string) string {
	var buf bytes.Buffer
	writeField(&buf, q.field, field)
	buf.WriteString(q.prefix)
	buf.WriteRune('*')
	return buf.String()
}

func (q *PrefixQuery) String() string { return q.ToString("") }

func (q *PrefixQuery) Equals(other Query) bool {
	o, ok := other.(*PrefixQuery)
	return ok && *o == *q
}

func (q *PrefixQuery) HashCode() int {
	const prime = 31
	result := int(PREFIX) + 1
	result = prime*result + stringHash(q.field)
	result = prime*result + stringHash(q.prefix)
	return result
}

func (q *PrefixQuery) expand(r LeafReader) ([]string, error) {
	terms, err := r.ExpandPrefix(q.field, q.prefix, maxClauseCount)
	if err == nil {
		log.Debugf("%v expanded to %v terms", q, len(terms))
	}
	return terms, err
}

func (q *PrefixQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	terms, err := q.expand(r)
	if err != nil {
		return nil, err
	}
	var subs []IntervalIterator
	for _, term := range terms {
		positions, err := r.Positions(q.field, term)
		if err != nil {
			return nil, err
		}
		if positions != nil {
			subs = append(subs, NewTermIntervalIterator(positions))
		}
	}
	switch len(subs) {
	case 0:
		return newEmptyIntervalIterator(), nil
	case 1:
		return subs[0], nil
	}
	return NewDisjunctionIntervalIterator(collectIntervals, subs...), nil
}

func (q *PrefixQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	terms, err := q.expand(r)
	if err != nil {
		return nil, err
	}
	var docs []DocIdSetIterator
	for _, term := range terms {
		positions, err := r.Positions(q.field, term)
		if err != nil {
			return nil, err
		}
		if positions != nil {
			docs = append(docs, positions)
		}
	}
	if len(docs) == 0 {
		return newEmptyDocs(), nil
	}
	return newDisjunctionDocs(docs...), nil
}

// Any of its clauses; inside a proximity group the clauses are
// alternatives for one position.
type OrQuery struct {
	field string
	subs  []Query
}

/*
Builds the disjunction of subs. A single clause is returned as is, and
any match-all clause turns the whole disjunction into match-all.
*/
func NewOrQuery(subs ...Query) (Query, error) {
	if len(subs) == 0 {
		return nil, newInvalidProximityError("or", "no clauses")
	}
	for _, sub := range subs {
		if sub.Kind() == MATCH_ALL {
			return sub, nil
		}
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	field, err := commonField("or", subs)
	if err != nil {
		return nil, err
	}
	return &OrQuery{field, subs}, nil
}

func (q *OrQuery) Kind() QueryKind  { return OR }
func (q *OrQuery) Field() string    { return q.field }
func (q *OrQuery) Clauses() []Query { return q.subs }
func (q *OrQuery) query()           {}
func (q *OrQuery) String() string   { return q.ToString("") }
func (q *OrQuery) HashCode() int    { return hashQueries(int(OR)+1, q.subs) }

func (q *OrQuery) ToString(field string) string {
	var buf bytes.Buffer
	buf.WriteRune('(')
	for i, sub := range q.subs {
		if i > 0 {
			buf.WriteString(" OR ")
		}
		buf.WriteString(sub.ToString(field))
	}
	buf.WriteRune(')')
	return buf.String()
}

func (q *OrQuery) Equals(other Query) bool {
	o, ok := other.(*OrQuery)
	return ok && equalQueries(q.subs, o.subs)
}

func (q *OrQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	subs := make([]IntervalIterator, len(q.subs))
	for i, sub := range q.subs {
		var err error
		if subs[i], err = sub.Intervals(r, collectIntervals); err != nil {
			return nil, err
		}
	}
	return NewDisjunctionIntervalIterator(collectIntervals, subs...), nil
}

func (q *OrQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	docs := make([]DocIdSetIterator, len(q.subs))
	for i, sub := range q.subs {
		var err error
		if docs[i], err = sub.Docs(r); err != nil {
			return nil, err
		}
	}
	return newDisjunctionDocs(docs...), nil
}

// search/FieldedConjunctionQuery.java

// All of its clauses, in any order and at any distance. The minimal
// covering intervals are emitted.
type ConjunctionQuery struct {
	field string
	subs  []Query
}

func NewConjunctionQuery(subs ...Query) (*ConjunctionQuery, error) {
	field, err := commonField("conjunction", subs)
	if err != nil {
		return nil, err
	}
	return &ConjunctionQuery{field, subs}, nil
}

func (q *ConjunctionQuery) Kind() QueryKind  { return CONJUNCTION }
func (q *ConjunctionQuery) Field() string    { return q.field }
func (q *ConjunctionQuery) Clauses() []Query { return q.subs }
func (q *ConjunctionQuery) query()           {}
func (q *ConjunctionQuery) String() string   { return q.ToString("") }
func (q *ConjunctionQuery) HashCode() int    { return hashQueries(int(CONJUNCTION)+1, q.subs) }

func (q *ConjunctionQuery) ToString(field string) string {
	var buf bytes.Buffer
	buf.WriteRune('(')
	for i, sub := range q.subs {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		buf.WriteString(sub.ToString(field))
	}
	buf.WriteRune(')')
	return buf.String()
}

func (q *ConjunctionQuery) Equals(other Query) bool {
	o, ok := other.(*ConjunctionQuery)
	return ok && equalQueries(q.subs, o.subs)
}

func (q *ConjunctionQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	subs := make([]IntervalIterator, len(q.subs))
	for i, sub := range q.subs {
		var err error
		if subs[i], err = sub.Intervals(r, collectIntervals); err != nil {
			return nil, err
		}
	}
	return NewConjunctionIntervalIterator(collectIntervals, true, subs...), nil
}

func (q *ConjunctionQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	docs := make([]DocIdSetIterator, len(q.subs))
	for i, sub := range q.subs {
		var err error
		if docs[i], err = sub.Docs(r); err != nil {
			return nil, err
		}
	}
	return newConjunctionDocs(docs...), nil
}

// search/intervals/IntervalFilterQuery.java

// Delegates matching to inner and narrows its intervals with filter.
type IntervalFilterQuery struct {
	inner  Query
	filter IntervalFilter
}

func NewIntervalFilterQuery(inner Query, filter IntervalFilter) (*IntervalFilterQuery, error) {
	if inner.Kind() == MATCH_ALL {
		return nil, newInvalidProximityError("filter", "match-all clause cannot be filtered by position")
	}
	return &IntervalFilterQuery{inner, filter}, nil
}

func (q *IntervalFilterQuery) Kind() QueryKind        { return FILTERED }
func (q *IntervalFilterQuery) Field() string          { return q.inner.Field() }
func (q *IntervalFilterQuery) Inner() Query           { return q.inner }
func (q *IntervalFilterQuery) Filter() IntervalFilter { return q.filter }
func (q *IntervalFilterQuery) query()                 {}
func (q *IntervalFilterQuery) String() string         { return q.ToString("") }

func (q *IntervalFilterQuery) ToString(field string) string {
	return fmt.Sprintf("IntervalFilterQuery(%v, %v)", q.inner.ToString(field), q.filter)
}

func (q *IntervalFilterQuery) Equals(other Query) bool {
	o, ok := other.(*IntervalFilterQuery)
	return ok && q.equalParts(o)
}

func (q *IntervalFilterQuery) equalParts(o *IntervalFilterQuery) bool {
	return q.filter.Equals(o.filter) && q.inner.Equals(o.inner)
}

func (q *IntervalFilterQuery) HashCode() int {
	const prime = 31
	result := int(FILTERED) + 1
	result = prime*result + q.filter.HashCode()
	result = prime*result + q.inner.HashCode()
	return result
}

func (q *IntervalFilterQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	iter, err := q.inner.Intervals(r, collectIntervals)
	if err != nil {
		return nil, err
	}
	return q.filter.Filter(collectIntervals, iter), nil
}

func (q *IntervalFilterQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	return q.inner.Docs(r)
}

// search/intervals/UnorderedNearQuery.java
// search/intervals/OrderedNearQuery.java

/*
NearQuery matches when its clauses occur within slop positions of each
other, in any order or, for an ordered near, in declaration order.
Slop counts the positions allowed between the clauses beyond their
tightest packing; it is handed to the width filter as slop+k-2 for k
clauses.
*/
type NearQuery struct {
	IntervalFilterQuery
	slop          int
	inOrder       bool
	collectLeaves bool
}

func newNearQuery(slop int, inOrder, collectLeaves bool, subs []Query) (*NearQuery, error) {
	op := "near"
	if inOrder {
		op = "ordered near"
	}
	if slop < 0 {
		return nil, newInvalidProximityError(op, "negative slop %v", slop)
	}
	if len(subs) < 2 {
		return nil, newInvalidProximityError(op, "needs at least two clauses, got %v", len(subs))
	}
	conj, err := NewConjunctionQuery(subs...)
	if err != nil {
		return nil, err
	}
	filterSlop := slop + len(subs) - 2
	var filter IntervalFilter
	if inOrder {
		filter = NewWithinOrderedFilter(filterSlop, collectLeaves)
	} else {
		filter = NewWithinUnorderedFilter(filterSlop, collectLeaves)
	}
	return &NearQuery{IntervalFilterQuery{conj, filter}, slop, inOrder, collectLeaves}, nil
}

func NewUnorderedNearQuery(slop int, collectLeaves bool, subs ...Query) (*NearQuery, error) {
	return newNearQuery(slop, false, collectLeaves, subs)
}

func NewOrderedNearQuery(slop int, collectLeaves bool, subs ...Query) (*NearQuery, error) {
	return newNearQuery(slop, true, collectLeaves, subs)
}

func (q *NearQuery) Kind() QueryKind     { return NEAR }
func (q *NearQuery) Slop() int           { return q.slop }
func (q *NearQuery) InOrder() bool       { return q.inOrder }
func (q *NearQuery) CollectLeaves() bool { return q.collectLeaves }
func (q *NearQuery) String() string      { return q.ToString("") }

func (q *NearQuery) ToString(field string) string {
	name := "UnorderedNear"
	if q.inOrder {
		name = "OrderedNear"
	}
	return fmt.Sprintf("%v/%v:%v", name, q.slop, q.inner.ToString(field))
}

func (q *NearQuery) Equals(other Query) bool {
	o, ok := other.(*NearQuery)
	return ok && o.slop == q.slop && o.inOrder == q.inOrder && q.equalParts(&o.IntervalFilterQuery)
}

func (q *NearQuery) HashCode() int {
	const prime = 31
	result := q.IntervalFilterQuery.HashCode()
	result = prime*result + q.slop
	if q.inOrder {
		result = prime*result + 1
	} else {
		result = prime * result
	}
	return result
}

// search/intervals/NearFirstQuery.java

// Matches when sub occurs entirely within the first end+1 positions.
type NearFirstQuery struct {
	IntervalFilterQuery
	end int
}

func NewNearFirstQuery(end int, sub Query) (*NearFirstQuery, error) {
	filter, err := NewRangeIntervalFilter(0, end)
	if err != nil {
		return nil, err
	}
	fq, err := NewIntervalFilterQuery(sub, filter)
	if err != nil {
		return nil, err
	}
	return &NearFirstQuery{*fq, end}, nil
}

func (q *NearFirstQuery) String() string { return q.ToString("") }

func (q *NearFirstQuery) ToString(field string) string {
	return fmt.Sprintf("NearFirst/%v:%v", q.end, q.inner.ToString(field))
}

func (q *NearFirstQuery) Equals(other Query) bool {
	o, ok := other.(*NearFirstQuery)
	return ok && o.end == q.end && q.equalParts(&o.IntervalFilterQuery)
}

func (q *NearFirstQuery) HashCode() int {
	return 31*q.IntervalFilterQuery.HashCode() + q.end
}

// search/MatchAllDocsQuery.java

// Matches every document, with no intervals.
type MatchAllDocsQuery struct{}

func NewMatchAllDocsQuery() *MatchAllDocsQuery { return &MatchAllDocsQuery{} }

func (q *MatchAllDocsQuery) Kind() QueryKind              { return MATCH_ALL }
func (q *MatchAllDocsQuery) Field() string                { return "" }
func (q *MatchAllDocsQuery) ToString(field string) string { return "*:*" }
func (q *MatchAllDocsQuery) String() string               { return "*:*" }
func (q *MatchAllDocsQuery) HashCode() int                { return int(MATCH_ALL) + 1 }
func (q *MatchAllDocsQuery) query()                       {}

func (q *MatchAllDocsQuery) Equals(other Query) bool {
	_, ok := other.(*MatchAllDocsQuery)
	return ok
}

func (q *MatchAllDocsQuery) Intervals(r LeafReader, collectIntervals bool) (IntervalIterator, error) {
	return newEmptyIntervalIterator(), nil
}

func (q *MatchAllDocsQuery) Docs(r LeafReader) (DocIdSetIterator, error) {
	return newAllDocs(r.MaxDoc()), nil
}

// queryparser/xml/builders/NearQueryBuilder.java

type NearConfig struct {
	Slop    int
	InOrder bool
	// Keep the leaf intervals behind each match, not only its span.
	CollectLeaves bool
}

func DefaultNearConfig() NearConfig {
	return NearConfig{CollectLeaves: true}
}

/*
NewNearQuery builds a proximity query the way a query parser does:
match-all clauses are dropped, no clause left yields MatchAllDocsQuery,
a single clause is returned as is, and two or more become an ordered
or unordered NearQuery.
*/
func NewNearQuery(cfg NearConfig, subs ...Query) (Query, error) {
	if cfg.Slop < 0 {
		return nil, newInvalidProximityError("near", "negative slop %v", cfg.Slop)
	}
	kept := make([]Query, 0, len(subs))
	for _, sub := range subs {
		if sub.Kind() != MATCH_ALL {
			kept = append(kept, sub)
		}
	}
	switch len(kept) {
	case 0:
		return NewMatchAllDocsQuery(), nil
	case 1:
		return kept[0], nil
	}
	q, err := newNearQuery(cfg.Slop, cfg.InOrder, cfg.CollectLeaves, kept)
	if err != nil {
		return nil, err
	}
	log.Debugf("built %v", q)
	return q, nil
}
