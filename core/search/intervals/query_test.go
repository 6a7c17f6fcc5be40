package intervals

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearQueryEquality(t *testing.T) {
	build := func(slop int, inOrder, collectLeaves bool, terms ...string) Query {
		subs := make([]Query, len(terms))
		for i, s := range terms {
			subs[i] = term(s)
		}
		q, err := NewNearQuery(NearConfig{slop, inOrder, collectLeaves}, subs...)
		require.NoError(t, err)
		return q
	}

	a := build(3, false, true, "x", "y")
	b := build(3, false, true, "x", "y")
	tassert.True(t, a.Equals(b))
	tassert.True(t, b.Equals(a))
	tassert.Equal(t, a.HashCode(), b.HashCode())

	for _, other := range []Query{
		build(4, false, true, "x", "y"),
		build(3, true, true, "x", "y"),
		build(3, false, false, "x", "y"),
		build(3, false, true, "x", "z"),
		build(3, false, true, "y", "x"),
		build(3, false, true, "x", "y", "z"),
	} {
		tassert.False(t, a.Equals(other), "%v", other)
		tassert.False(t, other.Equals(a), "%v", other)
		tassert.NotEqual(t, a.HashCode(), other.HashCode(), "%v", other)
	}
}

func TestFilterEquality(t *testing.T) {
	tassert.True(t, NewWithinUnorderedFilter(2, true).Equals(NewWithinUnorderedFilter(2, true)))
	tassert.False(t, NewWithinUnorderedFilter(2, true).Equals(NewWithinUnorderedFilter(2, false)))
	tassert.False(t, NewWithinUnorderedFilter(2, true).Equals(NewWithinUnorderedFilter(3, true)))
	tassert.False(t, NewWithinUnorderedFilter(2, true).Equals(NewWithinOrderedFilter(2, true)))
	tassert.NotEqual(t, NewWithinUnorderedFilter(2, true).HashCode(), NewWithinUnorderedFilter(2, false).HashCode())

	r1, err := NewRangeIntervalFilter(0, 5)
	require.NoError(t, err)
	r2, _ := NewRangeIntervalFilter(0, 5)
	r3, _ := NewRangeIntervalFilter(1, 5)
	tassert.True(t, r1.Equals(r2))
	tassert.False(t, r1.Equals(r3))
	tassert.False(t, r1.Equals(NewWithinIntervalFilter(5)))
	tassert.True(t, IdentityFilter{}.Equals(IdentityFilter{}))
}

func TestFilterQueryEquality(t *testing.T) {
	inner, err := NewConjunctionQuery(term("a"), term("b"))
	require.NoError(t, err)
	q1, err := NewIntervalFilterQuery(inner, NewWithinIntervalFilter(2))
	require.NoError(t, err)
	q2, _ := NewIntervalFilterQuery(inner, NewWithinIntervalFilter(2))
	q3, _ := NewIntervalFilterQuery(inner, NewWithinIntervalFilter(1))
	tassert.True(t, q1.Equals(q2))
	tassert.Equal(t, q1.HashCode(), q2.HashCode())
	tassert.False(t, q1.Equals(q3))
	tassert.False(t, q1.Equals(inner))

	first1, err := NewNearFirstQuery(4, term("a"))
	require.NoError(t, err)
	first2, _ := NewNearFirstQuery(4, term("a"))
	first3, _ := NewNearFirstQuery(5, term("a"))
	tassert.True(t, first1.Equals(first2))
	tassert.False(t, first1.Equals(first3))
	tassert.Equal(t, FILTERED, first1.Kind())
}

func TestNearBuilder(t *testing.T) {
	cfg := DefaultNearConfig()
	tassert.True(t, cfg.CollectLeaves)

	q, err := NewNearQuery(cfg)
	require.NoError(t, err)
	tassert.Equal(t, MATCH_ALL, q.Kind())

	q, err = NewNearQuery(cfg, NewMatchAllDocsQuery(), NewMatchAllDocsQuery())
	require.NoError(t, err)
	tassert.Equal(t, MATCH_ALL, q.Kind())

	q, err = NewNearQuery(cfg, NewMatchAllDocsQuery(), term("a"))
	require.NoError(t, err)
	tassert.True(t, q.Equals(term("a")))

	q, err = NewNearQuery(cfg, term("a"), NewMatchAllDocsQuery(), term("b"))
	require.NoError(t, err)
	tassert.Equal(t, NEAR, q.Kind())
	tassert.False(t, q.(*NearQuery).InOrder())
	tassert.Len(t, q.(*NearQuery).Inner().(*ConjunctionQuery).Clauses(), 2)

	cfg.InOrder = true
	q, err = NewNearQuery(cfg, term("a"), term("b"))
	require.NoError(t, err)
	tassert.True(t, q.(*NearQuery).InOrder())
}

func TestNearTranslatesSlop(t *testing.T) {
	q, err := NewUnorderedNearQuery(5, true, term("a"), term("b"), term("c"))
	require.NoError(t, err)
	tassert.True(t, q.Filter().Equals(NewWithinUnorderedFilter(6, true)))

	q, err = NewOrderedNearQuery(0, false, term("a"), term("b"))
	require.NoError(t, err)
	tassert.True(t, q.Filter().Equals(NewWithinOrderedFilter(0, false)))
}

func TestInvalidProximity(t *testing.T) {
	requireInvalid := func(err error) {
		require.Error(t, err)
		_, ok := err.(*InvalidProximityError)
		tassert.True(t, ok, "%v", err)
	}

	_, err := NewNearQuery(NearConfig{Slop: -1}, term("a"), term("b"))
	requireInvalid(err)
	_, err = NewUnorderedNearQuery(-1, true, term("a"), term("b"))
	requireInvalid(err)
	_, err = NewOrderedNearQuery(1, true, term("a"))
	requireInvalid(err)
	_, err = NewUnorderedNearQuery(1, true, term("a"), NewTermQuery("other", "b"))
	requireInvalid(err)
	_, err = NewUnorderedNearQuery(1, true, term("a"), NewMatchAllDocsQuery())
	requireInvalid(err)
	_, err = NewConjunctionQuery()
	requireInvalid(err)
	_, err = NewOrQuery()
	requireInvalid(err)
	_, err = NewOrQuery(term("a"), NewTermQuery("other", "b"))
	requireInvalid(err)
	_, err = NewPhraseQuery(field)
	requireInvalid(err)
	_, err = NewNearFirstQuery(-1, term("a"))
	requireInvalid(err)
	_, err = NewNearFirstQuery(3, NewMatchAllDocsQuery())
	requireInvalid(err)
	_, err = NewIntervalFilterQuery(NewMatchAllDocsQuery(), IdentityFilter{})
	requireInvalid(err)
}

func TestOrBuilder(t *testing.T) {
	q, err := NewOrQuery(term("a"))
	require.NoError(t, err)
	tassert.Equal(t, TERM, q.Kind())

	q, err = NewOrQuery(term("a"), NewMatchAllDocsQuery())
	require.NoError(t, err)
	tassert.Equal(t, MATCH_ALL, q.Kind())
}

func TestQueryToString(t *testing.T) {
	phrase, err := NewPhraseQuery(field, "new", "york")
	require.NoError(t, err)
	near := unorderedNear(t, 5, or(t, term("iranian"), term("north")), term("akbar"))
	first, err := NewNearFirstQuery(3, orderedNear(t, 0, phrase, NewPrefixQuery(field, "cit")))
	require.NoError(t, err)

	tassert.Equal(t, "UnorderedNear/5:((iranian OR north) AND akbar)", near.ToString(field))
	tassert.Equal(t, "UnorderedNear/5:((field:iranian OR field:north) AND field:akbar)", near.ToString(""))
	tassert.Equal(t, `NearFirst/3:OrderedNear/0:("new york" AND cit*)`, first.ToString(field))
	tassert.Equal(t, "*:*", NewMatchAllDocsQuery().ToString(field))
}
