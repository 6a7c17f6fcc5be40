package intervals

import (
	"fmt"
	"math"
)

// search/intervals/Interval.java

/*
Interval is a closed span [Begin, End] of token positions within one
document. OffsetBegin and OffsetEnd are the character offsets of the
first and last token of the span, -1 when offsets are not available.

A leaf interval covers a single position unless the leaf is a phrase.
*/
type Interval struct {
	Begin       int
	End         int
	OffsetBegin int
	OffsetEnd   int
}

func NewInterval(begin, end, offsetBegin, offsetEnd int) Interval {
	return Interval{begin, end, offsetBegin, offsetEnd}
}

// The "not yet positioned" state.
func (i *Interval) setMaximum() {
	i.Begin, i.End = math.MaxInt32, math.MaxInt32
	i.OffsetBegin, i.OffsetEnd = -1, -1
}

func (i *Interval) isMaximum() bool {
	return i.Begin == math.MaxInt32
}

// Strictly after other: begins after other ends.
func (i Interval) GreaterThanExclusive(other Interval) bool {
	return i.Begin > other.End
}

func (i Interval) ContainedBy(other Interval) bool {
	return other.Begin <= i.Begin && i.End <= other.End
}

func (i Interval) Contains(other Interval) bool {
	return other.ContainedBy(i)
}

// Number of positions covered.
func (i Interval) Width() int {
	return i.End - i.Begin + 1
}

// Lexicographic (Begin, End) order.
func (i Interval) Before(other Interval) bool {
	return i.Begin < other.Begin || i.Begin == other.Begin && i.End < other.End
}

func (i Interval) String() string {
	return fmt.Sprintf("Interval [begin=%v(%v), end=%v(%v)]", i.Begin, i.OffsetBegin, i.End, i.OffsetEnd)
}
