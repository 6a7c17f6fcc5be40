package intervals

import (
	"fmt"
	"math/rand"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conjunction(t *testing.T, subs ...Query) Query {
	q, err := NewConjunctionQuery(subs...)
	require.NoError(t, err)
	return q
}

func TestConjunctionMinimalIntervals(t *testing.T) {
	r := newReader(doc{
		"a": {1, 5, 9},
		"b": {3, 6},
		"c": {4, 10},
	})
	got := intervalsOf(t, r, conjunction(t, term("a"), term("b"), term("c")), 0)
	tassert.Equal(t, []span{{1, 4}, {3, 5}, {4, 6}, {6, 10}}, got)
}

func TestConjunctionOverlappingSubIntervals(t *testing.T) {
	phrase, err := NewPhraseQuery(field, "x", "y", "z")
	require.NoError(t, err)
	r := newReader(doc{
		"x": {2},
		"y": {3},
		"z": {4},
	})
	// y lies inside the phrase span
	got := intervalsOf(t, r, conjunction(t, phrase, term("y")), 0)
	tassert.Equal(t, []span{{2, 4}}, got)
}

func TestConjunctionSameTermTwice(t *testing.T) {
	r := newReader(doc{"a": {1, 3}})
	got := intervalsOf(t, r, conjunction(t, term("a"), term("a")), 0)
	tassert.Equal(t, []span{{1, 1}, {3, 3}}, got)
}

func TestConjunctionAbsentClause(t *testing.T) {
	r := newReader(doc{"a": {1}}, doc{"a": {2}, "b": {4}})
	m, err := NewMatcher(conjunction(t, term("a"), term("b")), r, false)
	require.NoError(t, err)
	ok, err := m.Match(0)
	require.NoError(t, err)
	tassert.False(t, ok)
	got, err := m.Intervals(1)
	require.NoError(t, err)
	tassert.Equal(t, []span{{2, 4}}, spans(got))
}

// Every window [b,e] covering one position of each term, none of whose
// proper sub-windows does.
func bruteForceMinimal(positions [][]int, maxPos int, covers func(b, e int) bool) []span {
	var res []span
	for b := 0; b <= maxPos; b++ {
		for e := b; e <= maxPos; e++ {
			if covers(b, e) && !covers(b+1, e) && !covers(b, e-1) {
				res = append(res, span{b, e})
			}
		}
	}
	return res
}

func unorderedCover(positions [][]int) func(b, e int) bool {
	return func(b, e int) bool {
		if b > e {
			return false
		}
		for _, ps := range positions {
			found := false
			for _, p := range ps {
				if p >= b && p <= e {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

func orderedCover(positions [][]int) func(b, e int) bool {
	return func(b, e int) bool {
		last := b - 1
		for _, ps := range positions {
			next := -1
			for _, p := range ps {
				if p > last && p <= e {
					next = p
					break
				}
			}
			if next < 0 {
				return false
			}
			last = next
		}
		return true
	}
}

// Scatters k terms over distinct positions of one document.
func randomDoc(rnd *rand.Rand, k, length int) (doc, [][]int, []Query) {
	d := doc{}
	positions := make([][]int, k)
	for pos := 0; pos < length; pos++ {
		if rnd.Intn(3) == 0 {
			continue
		}
		i := rnd.Intn(k)
		positions[i] = append(positions[i], pos)
	}
	queries := make([]Query, k)
	for i := range positions {
		name := fmt.Sprintf("t%v", i)
		d[name] = positions[i]
		queries[i] = term(name)
	}
	return d, positions, queries
}

func TestConjunctionRandomAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 300; round++ {
		k, length := 1+rnd.Intn(4), 5+rnd.Intn(25)
		d, positions, queries := randomDoc(rnd, k, length)
		r := newReader(d)

		var want []span
		if len(queries) > 0 {
			want = bruteForceMinimal(positions, length, unorderedCover(positions))
		}
		q := conjunction(t, queries...)
		got := intervalsOf(t, r, q, 0)
		requireIncreasing(t, got)
		if len(want) == 0 {
			tassert.Empty(t, got, "round %v: %v", round, d)
		} else {
			tassert.Equal(t, want, got, "round %v: %v", round, d)
		}
	}
}

func TestOrderedConjunctionRandomAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 300; round++ {
		k, length := 2+rnd.Intn(3), 5+rnd.Intn(25)
		d, positions, queries := randomDoc(rnd, k, length)
		r := newReader(d)

		want := bruteForceMinimal(positions, length, orderedCover(positions))
		// the widest slop lets every minimal window through
		got := intervalsOf(t, r, orderedNear(t, length, queries...), 0)
		requireIncreasing(t, got)
		if len(want) == 0 {
			tassert.Empty(t, got, "round %v: %v", round, d)
		} else {
			tassert.Equal(t, want, got, "round %v: %v", round, d)
		}
	}
}

func TestUnorderedWidthFilterRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for round := 0; round < 200; round++ {
		k, length := 2+rnd.Intn(3), 5+rnd.Intn(20)
		d, positions, queries := randomDoc(rnd, k, length)
		r := newReader(d)
		slop := rnd.Intn(4)

		var want []span
		for _, s := range bruteForceMinimal(positions, length, unorderedCover(positions)) {
			if (s[1]-s[0])-(k-1) <= slop+k-2 {
				want = append(want, s)
			}
		}
		got := intervalsOf(t, r, unorderedNear(t, slop, queries...), 0)
		if len(want) == 0 {
			tassert.Empty(t, got, "round %v: %v slop %v", round, d, slop)
		} else {
			tassert.Equal(t, want, got, "round %v: %v slop %v", round, d, slop)
		}
	}
}
