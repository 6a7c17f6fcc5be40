package intervals

import (
	"fmt"

	"github.com/balzaczyy/golucene-intervals/core/index/model"
)

// search/intervals/TermIntervalIterator.java

// Leaf iterator: one single-position interval per occurrence of a term.
type TermIntervalIterator struct {
	docCursor
	positions model.DocsAndPositionsEnum
	freq      int
	read      int
	current   Interval
}

func NewTermIntervalIterator(positions model.DocsAndPositionsEnum) *TermIntervalIterator {
	assert(positions != nil)
	ans := &TermIntervalIterator{docCursor: newDocCursor(), positions: positions}
	ans.current.setMaximum()
	return ans
}

func (it *TermIntervalIterator) Reset(doc int) (ok bool, err error) {
	it.moveTo(doc)
	it.current.setMaximum()
	cur := it.positions.DocId()
	if cur < doc {
		if cur, err = it.positions.Advance(doc); err != nil {
			return false, err
		}
	}
	if cur != doc {
		return false, nil
	}
	if it.freq, err = it.positions.Freq(); err != nil {
		return false, err
	}
	it.read = 0
	it.positioned = true
	return true, nil
}

func (it *TermIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("term iterator")
	if it.read >= it.freq {
		return nil, nil
	}
	pos, err := it.positions.NextPosition()
	if err != nil {
		return nil, err
	}
	start, err := it.positions.StartOffset()
	if err != nil {
		return nil, err
	}
	end, err := it.positions.EndOffset()
	if err != nil {
		return nil, err
	}
	it.read++
	it.current = Interval{pos, pos, start, end}
	ans := it.current
	return &ans, nil
}

func (it *TermIntervalIterator) Collect(c IntervalCollector) {
	c.CollectLeafPosition(it.doc, it.current)
}

func (it *TermIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator { return nil }
func (it *TermIntervalIterator) MatchDistance() int                           { return 0 }

func (it *TermIntervalIterator) String() string {
	return fmt.Sprintf("TermIntervalIterator(doc=%v, %v/%v)", it.doc, it.read, it.freq)
}

// search/intervals/BlockIntervalIterator.java

/*
Leaf iterator for an exact phrase: emits the spans where the intervals
of the sub-iterators follow each other without gaps, in declaration
order. The whole span is collected as one leaf occurrence.
*/
type BlockIntervalIterator struct {
	docCursor
	iterators []IntervalIterator
	// positions skipped before each sub-interval, gaps[0] unused
	gaps      []int
	intervals []*Interval
	exhausted bool
	current   Interval
}

// Sub-interval i must start gaps[i] positions after the end of
// sub-interval i-1 plus one; all zero gaps make a plain phrase.
func NewBlockIntervalIteratorWithGaps(gaps []int, iterators ...IntervalIterator) *BlockIntervalIterator {
	assert2(len(iterators) > 0, "a block needs at least one sub-iterator")
	assert2(len(gaps) == len(iterators), "%v gaps for %v sub-iterators", len(gaps), len(iterators))
	ans := &BlockIntervalIterator{
		docCursor: newDocCursor(),
		iterators: iterators,
		gaps:      gaps,
		intervals: make([]*Interval, len(iterators)),
	}
	ans.current.setMaximum()
	return ans
}

func (it *BlockIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	it.current.setMaximum()
	for _, sub := range it.iterators {
		if ok, err := sub.Reset(doc); !ok || err != nil {
			return false, err
		}
	}
	for i := range it.intervals {
		it.intervals[i] = nil
	}
	it.exhausted = false
	it.positioned = true
	return true, nil
}

func (it *BlockIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("block iterator")
	for !it.exhausted {
		first, err := it.iterators[0].Next()
		if err != nil {
			return nil, err
		}
		if first == nil {
			it.exhausted = true
			break
		}
		it.intervals[0] = first
		matched := true
		for i := 1; i < len(it.iterators); i++ {
			want := it.intervals[i-1].End + 1 + it.gaps[i]
			// first interval of sub i starting at want or later
			for it.intervals[i] == nil || it.intervals[i].Begin < want {
				if it.intervals[i], err = it.iterators[i].Next(); err != nil {
					return nil, err
				}
				if it.intervals[i] == nil {
					it.exhausted = true
					return nil, nil
				}
			}
			if it.intervals[i].Begin != want {
				matched = false
				break
			}
		}
		if matched {
			last := it.intervals[len(it.intervals)-1]
			it.current = Interval{first.Begin, last.End, first.OffsetBegin, last.OffsetEnd}
			ans := it.current
			return &ans, nil
		}
	}
	return nil, nil
}

func (it *BlockIntervalIterator) Collect(c IntervalCollector) {
	c.CollectLeafPosition(it.doc, it.current)
}

func (it *BlockIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator { return it.iterators }
func (it *BlockIntervalIterator) MatchDistance() int                           { return 0 }
