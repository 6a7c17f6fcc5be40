package intervals

import (
	"sort"
	"testing"

	"github.com/balzaczyy/golucene-intervals/core/analysis"
	"github.com/balzaczyy/golucene-intervals/core/index/memory"
	"github.com/stretchr/testify/require"
)

const field = "field"

// doc maps term -> positions; offsets are derived from positions.
type doc map[string][]int

func newReader(docs ...doc) *memory.Index {
	idx := memory.NewIndex()
	for _, d := range docs {
		var tokens []analysis.Token
		for term, positions := range d {
			for _, pos := range positions {
				tokens = append(tokens, analysis.Token{Term: term, Position: pos, StartOffset: pos * 10, EndOffset: pos*10 + len(term)})
			}
		}
		sort.Slice(tokens, func(i, j int) bool { return tokens[i].Position < tokens[j].Position })
		idx.AddDocument(memory.Field{Name: field, Tokens: tokens})
	}
	return idx
}

func term(t string) Query {
	return NewTermQuery(field, t)
}

func unorderedNear(t *testing.T, slop int, subs ...Query) Query {
	q, err := NewUnorderedNearQuery(slop, true, subs...)
	require.NoError(t, err)
	return q
}

func orderedNear(t *testing.T, slop int, subs ...Query) Query {
	q, err := NewOrderedNearQuery(slop, true, subs...)
	require.NoError(t, err)
	return q
}

func or(t *testing.T, subs ...Query) Query {
	q, err := NewOrQuery(subs...)
	require.NoError(t, err)
	return q
}

type span [2]int

func spans(intervals []Interval) []span {
	res := make([]span, 0, len(intervals))
	for _, i := range intervals {
		res = append(res, span{i.Begin, i.End})
	}
	return res
}

// Begin/end of every interval q produces for doc.
func intervalsOf(t *testing.T, r LeafReader, q Query, d int) []span {
	m, err := NewMatcher(q, r, false)
	require.NoError(t, err)
	intervals, err := m.Intervals(d)
	require.NoError(t, err)
	return spans(intervals)
}

func requireIncreasing(t *testing.T, intervals []span) {
	for i := 1; i < len(intervals); i++ {
		a, b := intervals[i-1], intervals[i]
		require.True(t, a[0] < b[0] && a[1] < b[1], "%v then %v", a, b)
	}
}
