package intervals

import (
	"fmt"
)

// search/intervals/IntervalFilter.java

// IntervalFilter turns an interval iterator into a narrower one. A
// filter only holds configuration; per-document state lives in the
// iterator it returns. Filters are values and compare with Equals.
type IntervalFilter interface {
	Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator
	Equals(other IntervalFilter) bool
	HashCode() int
	String() string
}

// Leaves intervals untouched.
type IdentityFilter struct{}

func (f IdentityFilter) Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator {
	return iter
}

func (f IdentityFilter) Equals(other IntervalFilter) bool {
	_, ok := other.(IdentityFilter)
	return ok
}

func (f IdentityFilter) HashCode() int  { return 1 }
func (f IdentityFilter) String() string { return "Identity" }

// search/intervals/WithinIntervalFilter.java

// Keeps the intervals whose match distance is at most Slop.
type WithinIntervalFilter struct {
	slop int
}

func NewWithinIntervalFilter(slop int) WithinIntervalFilter {
	return WithinIntervalFilter{slop}
}

func (f WithinIntervalFilter) Slop() int { return f.slop }

func (f WithinIntervalFilter) Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator {
	return &withinIntervalIterator{
		docCursor: newDocCursor(),
		iter:      iter,
		slop:      f.slop,
	}
}

func (f WithinIntervalFilter) Equals(other IntervalFilter) bool {
	o, ok := other.(WithinIntervalFilter)
	return ok && o.slop == f.slop
}

func (f WithinIntervalFilter) HashCode() int {
	return 31 + f.slop
}

func (f WithinIntervalFilter) String() string {
	return fmt.Sprintf("WithinIntervalFilter[%v]", f.slop)
}

type withinIntervalIterator struct {
	docCursor
	iter IntervalIterator
	slop int
}

func (it *withinIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	ok, err := it.iter.Reset(doc)
	it.positioned = ok && err == nil
	return it.positioned, err
}

func (it *withinIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("within filter")
	for {
		interval, err := it.iter.Next()
		if err != nil || interval == nil {
			return nil, err
		}
		if it.iter.MatchDistance() <= it.slop {
			return interval, nil
		}
	}
}

func (it *withinIntervalIterator) Collect(c IntervalCollector) { it.iter.Collect(c) }

func (it *withinIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator {
	return it.iter.SubIntervals(inOrder)
}

func (it *withinIntervalIterator) MatchDistance() int { return it.iter.MatchDistance() }

func (it *withinIntervalIterator) String() string {
	return fmt.Sprintf("Within[%v](%v)", it.slop, it.iter)
}

// search/intervals/RangeIntervalFilter.java

// Keeps the intervals lying within positions [start, end].
type RangeIntervalFilter struct {
	start, end int
}

func NewRangeIntervalFilter(start, end int) (RangeIntervalFilter, error) {
	if start < 0 || end < start {
		return RangeIntervalFilter{}, newInvalidProximityError("range", "bad position range [%v, %v]", start, end)
	}
	return RangeIntervalFilter{start, end}, nil
}

func (f RangeIntervalFilter) Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator {
	return &rangeIntervalIterator{
		docCursor: newDocCursor(),
		iter:      iter,
		window:    Interval{Begin: f.start, End: f.end},
	}
}

func (f RangeIntervalFilter) Equals(other IntervalFilter) bool {
	o, ok := other.(RangeIntervalFilter)
	return ok && o == f
}

func (f RangeIntervalFilter) HashCode() int {
	const prime = 31
	result := 1
	result = prime*result + f.end
	result = prime*result + f.start
	return result
}

func (f RangeIntervalFilter) String() string {
	return fmt.Sprintf("RangeIntervalFilter[%v,%v]", f.start, f.end)
}

type rangeIntervalIterator struct {
	docCursor
	iter      IntervalIterator
	window    Interval
	exhausted bool
}

func (it *rangeIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	ok, err := it.iter.Reset(doc)
	it.exhausted = false
	it.positioned = ok && err == nil
	return it.positioned, err
}

func (it *rangeIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("range filter")
	for !it.exhausted {
		interval, err := it.iter.Next()
		if err != nil {
			return nil, err
		}
		if interval == nil || interval.GreaterThanExclusive(it.window) {
			// begins only grow
			it.exhausted = true
			break
		}
		if it.window.Contains(*interval) {
			return interval, nil
		}
	}
	return nil, nil
}

func (it *rangeIntervalIterator) Collect(c IntervalCollector) { it.iter.Collect(c) }

func (it *rangeIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator {
	return it.iter.SubIntervals(inOrder)
}

func (it *rangeIntervalIterator) MatchDistance() int { return it.iter.MatchDistance() }

// search/intervals/UnorderedNearQuery.java

// Width filter over a fresh unordered conjunction of the wrapped
// iterator's sub-iterators.
type WithinUnorderedFilter struct {
	inner         WithinIntervalFilter
	collectLeaves bool
}

func NewWithinUnorderedFilter(slop int, collectLeaves bool) WithinUnorderedFilter {
	return WithinUnorderedFilter{NewWithinIntervalFilter(slop), collectLeaves}
}

func (f WithinUnorderedFilter) Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator {
	return f.inner.Filter(collectIntervals,
		NewConjunctionIntervalIterator(collectIntervals, f.collectLeaves, iter.SubIntervals(false)...))
}

func (f WithinUnorderedFilter) Equals(other IntervalFilter) bool {
	o, ok := other.(WithinUnorderedFilter)
	return ok && o.collectLeaves == f.collectLeaves && f.inner.Equals(o.inner)
}

func (f WithinUnorderedFilter) HashCode() int {
	return withinHashCode(f.inner, f.collectLeaves)
}

func (f WithinUnorderedFilter) String() string {
	return fmt.Sprintf("WithinUnorderedFilter[%v, leaves=%v]", f.inner.slop, f.collectLeaves)
}

// search/intervals/OrderedNearQuery.java

// Width filter over a fresh ordered conjunction of the wrapped
// iterator's sub-iterators.
type WithinOrderedFilter struct {
	inner         WithinIntervalFilter
	collectLeaves bool
}

func NewWithinOrderedFilter(slop int, collectLeaves bool) WithinOrderedFilter {
	return WithinOrderedFilter{NewWithinIntervalFilter(slop), collectLeaves}
}

func (f WithinOrderedFilter) Filter(collectIntervals bool, iter IntervalIterator) IntervalIterator {
	return f.inner.Filter(collectIntervals,
		NewOrderedConjunctionIntervalIterator(collectIntervals, f.collectLeaves, iter.SubIntervals(true)...))
}

func (f WithinOrderedFilter) Equals(other IntervalFilter) bool {
	o, ok := other.(WithinOrderedFilter)
	return ok && o.collectLeaves == f.collectLeaves && f.inner.Equals(o.inner)
}

func (f WithinOrderedFilter) HashCode() int {
	return withinHashCode(f.inner, f.collectLeaves)
}

func (f WithinOrderedFilter) String() string {
	return fmt.Sprintf("WithinOrderedFilter[%v, leaves=%v]", f.inner.slop, f.collectLeaves)
}

func withinHashCode(inner WithinIntervalFilter, collectLeaves bool) int {
	const prime = 31
	result := 1
	result = prime*result + inner.HashCode()
	if collectLeaves {
		result = prime*result + 1
	} else {
		result = prime * result
	}
	return result
}
