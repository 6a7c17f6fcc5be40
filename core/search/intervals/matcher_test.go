package intervals

import (
	"context"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectAll(t *testing.T, r LeafReader, q Query, d int) []CollectedInterval {
	m, err := NewMatcher(q, r, true)
	require.NoError(t, err)
	var c SpanCollector
	freq, err := m.Collect(d, &c)
	require.NoError(t, err)
	if len(c.Intervals) > 0 {
		tassert.True(t, freq > 0)
	}
	return c.Intervals
}

func TestCollectLeaves(t *testing.T) {
	r := newReader(doc{"a": {1}, "b": {2}, "c": {5}})
	inner := unorderedNear(t, 0, term("a"), term("b"))
	outer := unorderedNear(t, 3, inner, term("c"))

	got := collectAll(t, r, outer, 0)
	require.Len(t, got, 5)
	tassert.Equal(t, CollectedInterval{0, NewInterval(1, 5, 10, 51), false, 3}, got[0])
	tassert.Equal(t, CollectedInterval{0, NewInterval(1, 2, 10, 21), false, 0}, got[1])
	tassert.Equal(t, []Interval{
		NewInterval(1, 1, 10, 11),
		NewInterval(2, 2, 20, 21),
		NewInterval(5, 5, 50, 51),
	}, (&SpanCollector{got}).Leaves())
}

func TestCollectSpanOnly(t *testing.T) {
	r := newReader(doc{"a": {1}, "b": {2}, "c": {5}})
	inner, err := NewUnorderedNearQuery(0, false, term("a"), term("b"))
	require.NoError(t, err)
	outer, err := NewUnorderedNearQuery(3, false, inner, term("c"))
	require.NoError(t, err)

	got := collectAll(t, r, outer, 0)
	tassert.Equal(t, []CollectedInterval{{0, NewInterval(1, 5, 10, 51), false, 3}}, got)
}

func TestCollectOrderedLeaves(t *testing.T) {
	r := newReader(doc{"a": {1, 6}, "b": {3, 7}})
	q := orderedNear(t, 1, term("a"), term("b"))

	got := collectAll(t, r, q, 0)
	tassert.Equal(t, []CollectedInterval{
		{0, NewInterval(1, 3, 10, 31), false, 1},
		{0, NewInterval(1, 1, 10, 11), true, 0},
		{0, NewInterval(3, 3, 30, 31), true, 0},
		{0, NewInterval(6, 7, 60, 71), false, 0},
		{0, NewInterval(6, 6, 60, 61), true, 0},
		{0, NewInterval(7, 7, 70, 71), true, 0},
	}, got)
}

func TestCollectDisjunctionLeaf(t *testing.T) {
	r := newReader(doc{"iranian": {10}, "north": {40}, "akbar": {12}})
	q := unorderedNear(t, 5, or(t, term("iranian"), term("north")), term("akbar"))

	got := collectAll(t, r, q, 0)
	tassert.Equal(t, []Interval{NewInterval(10, 10, 100, 107), NewInterval(12, 12, 120, 125)},
		(&SpanCollector{got}).Leaves())
}

func TestMatchShortCircuits(t *testing.T) {
	r := newReader(doc{"a": {1, 3, 5}})
	m, err := NewMatcher(term("a"), r, false)
	require.NoError(t, err)
	ok, err := m.Match(0)
	require.NoError(t, err)
	tassert.True(t, ok)
}

func TestIteratorPreconditions(t *testing.T) {
	r := newReader(doc{"a": {1}}, doc{"b": {1}})
	iter, err := term("a").Intervals(r, false)
	require.NoError(t, err)

	// Next before Reset
	tassert.Panics(t, func() { iter.Next() })

	ok, err := iter.Reset(1)
	require.NoError(t, err)
	require.False(t, ok)
	// Next on a document Reset reported absent
	tassert.Panics(t, func() { iter.Next() })
	// documents only move forward
	tassert.Panics(t, func() { iter.Reset(0) })

	near, err := unorderedNear(t, 1, term("a"), term("b")).Intervals(r, false)
	require.NoError(t, err)
	tassert.Panics(t, func() { near.Next() })
}

func TestSearch(t *testing.T) {
	r := newReader(
		doc{"a": {1}, "b": {2}},
		doc{"a": {1}},
		doc{"a": {1, 9}, "b": {5, 10}},
		doc{"b": {1}, "a": {2}},
	)
	s := NewSearcher(r)
	hits, err := s.Search(unorderedNear(t, 1, term("a"), term("b")))
	require.NoError(t, err)
	require.Len(t, hits, 3)
	tassert.Equal(t, 0, hits[0].Doc)
	tassert.Equal(t, 1.0, hits[0].Freq)
	tassert.Equal(t, 2, hits[1].Doc)
	tassert.Equal(t, 1.0, hits[1].Freq)
	tassert.Equal(t, 3, hits[2].Doc)
	tassert.Nil(t, hits[0].Intervals)

	s.CollectIntervals = true
	s.MaxHits = 1
	hits, err = s.Search(orderedNear(t, 1, term("a"), term("b")))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	tassert.Len(t, hits[0].Intervals, 3)

	hits, err = NewSearcher(r).Search(NewMatchAllDocsQuery())
	require.NoError(t, err)
	tassert.Len(t, hits, 4)
}

func TestSloppyFreq(t *testing.T) {
	r := newReader(doc{"a": {1, 10}, "b": {3, 11}})
	hits, err := NewSearcher(r).Search(unorderedNear(t, 5, term("a"), term("b")))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	// [1,3] at distance 1, [10,11] at distance 0; [3,10] is too wide
	tassert.InDelta(t, 1.5, hits[0].Freq, 1e-9)
}

func TestSearchSegments(t *testing.T) {
	segments := []LeafReader{
		newReader(doc{"a": {1}, "b": {2}}, doc{"a": {1}}),
		newReader(doc{"b": {4}}),
		newReader(doc{"b": {1}}, doc{"a": {3}, "b": {1}}, doc{"a": {1}, "b": {2}}),
	}
	q := unorderedNear(t, 1, term("a"), term("b"))
	res, err := SearchSegments(context.Background(), q, true, segments...)
	require.NoError(t, err)
	require.Len(t, res, 3)
	tassert.Len(t, res[0], 1)
	tassert.Empty(t, res[1])
	require.Len(t, res[2], 2)
	tassert.Equal(t, 1, res[2][0].Doc)
	tassert.Equal(t, 2, res[2][1].Doc)
	tassert.NotEmpty(t, res[2][1].Intervals)
}

func TestSearchCancelled(t *testing.T) {
	r := newReader(doc{"a": {1}, "b": {2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SearchSegments(ctx, unorderedNear(t, 1, term("a"), term("b")), false, r)
	tassert.Equal(t, context.Canceled, err)
}
