package intervals

import (
	"fmt"
)

// search/intervals/OrderedConjunctionIntervalIterator.java

type orderedState int

const (
	seekNextConjunction orderedState = iota
	checkOrderAndWidth
	emitPending
	orderedExhausted
)

var orderedStateNames = []string{"SEEK_NEXT_CONJUNCTION", "CHECK_ORDER_AND_WIDTH", "EMIT", "EXHAUSTED"}

func (s orderedState) String() string {
	return orderedStateNames[s]
}

/*
OrderedConjunctionIntervalIterator emits the minimal intervals that
cover one interval of every sub-iterator in declaration order, each
sub-interval starting after the previous one ends (the BLOCK-less
ordered AND of Boldi and Vigna).

For every interval x of the first sub-iterator the later sub-iterators
are advanced greedily to their first interval beyond their predecessor,
which yields the narrowest ordered window starting at x. Such a window
is held back as pending until the next one is known: a window with the
same end replaces it, a window with a larger end proves it minimal.
*/
type OrderedConjunctionIntervalIterator struct {
	docCursor
	iterators        []IntervalIterator
	intervals        []*Interval
	collectIntervals bool
	collectLeaves    bool
	state            orderedState
	hasPending       bool
	pending          Interval
	candidate        Interval
	current          Interval
	distance         int

	// rotate between emitted, pending and candidate windows
	snaps         [3]snapShot
	emittedSnap   *snapShot
	pendingSnap   *snapShot
	candidateSnap *snapShot
}

func NewOrderedConjunctionIntervalIterator(collectIntervals, collectLeaves bool,
	iterators ...IntervalIterator) *OrderedConjunctionIntervalIterator {

	assert2(len(iterators) > 0, "an ordered conjunction needs at least one sub-iterator")
	ans := &OrderedConjunctionIntervalIterator{
		docCursor:        newDocCursor(),
		iterators:        iterators,
		intervals:        make([]*Interval, len(iterators)),
		collectIntervals: collectIntervals,
		collectLeaves:    collectLeaves,
	}
	ans.emittedSnap, ans.pendingSnap, ans.candidateSnap = &ans.snaps[0], &ans.snaps[1], &ans.snaps[2]
	ans.current.setMaximum()
	return ans
}

func (it *OrderedConjunctionIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	for _, sub := range it.iterators {
		if ok, err := sub.Reset(doc); !ok || err != nil {
			return false, err
		}
	}
	for i := range it.intervals {
		it.intervals[i] = nil
	}
	it.state = seekNextConjunction
	it.hasPending = false
	it.current.setMaximum()
	it.positioned = true
	return true, nil
}

func (it *OrderedConjunctionIntervalIterator) recording() bool {
	return it.collectIntervals && it.collectLeaves
}

func (it *OrderedConjunctionIntervalIterator) Next() (_ *Interval, err error) {
	it.checkPositioned("ordered conjunction iterator")
	for {
		switch it.state {
		case seekNextConjunction:
			if it.intervals[0], err = it.iterators[0].Next(); err != nil {
				return nil, err
			}
			if it.intervals[0] == nil {
				it.state = emitPending
				continue
			}
			it.state = checkOrderAndWidth

		case checkOrderAndWidth:
			found, err := it.advanceChain()
			if err != nil {
				return nil, err
			}
			if !found {
				it.state = emitPending
				continue
			}
			first, last := it.intervals[0], it.intervals[len(it.intervals)-1]
			it.candidate = Interval{first.Begin, last.End, first.OffsetBegin, last.OffsetEnd}
			if it.recording() {
				it.candidateSnap.record(it.iterators)
			}
			it.state = seekNextConjunction
			if !it.hasPending || it.candidate.End == it.pending.End {
				it.promoteCandidate()
				continue
			}
			// the pending window ends before every later one
			ans := it.emit()
			it.promoteCandidate()
			return ans, nil

		case emitPending:
			it.state = orderedExhausted
			if it.hasPending {
				it.hasPending = false
				return it.emit(), nil
			}

		case orderedExhausted:
			return nil, nil
		}
	}
}

// Advances sub-iterators 1..k-1 to the first interval beginning after
// the end of their predecessor. Returns false once one of them runs out.
func (it *OrderedConjunctionIntervalIterator) advanceChain() (bool, error) {
	var err error
	for i := 1; i < len(it.iterators); i++ {
		prev := it.intervals[i-1]
		for it.intervals[i] == nil || !it.intervals[i].GreaterThanExclusive(*prev) {
			if it.intervals[i], err = it.iterators[i].Next(); err != nil {
				return false, err
			}
			if it.intervals[i] == nil {
				return false, nil
			}
		}
	}
	return true, nil
}

func (it *OrderedConjunctionIntervalIterator) promoteCandidate() {
	it.pending = it.candidate
	it.hasPending = true
	it.pendingSnap, it.candidateSnap = it.candidateSnap, it.pendingSnap
}

func (it *OrderedConjunctionIntervalIterator) emit() *Interval {
	it.current = it.pending
	it.distance = it.current.Width() - len(it.iterators)
	it.emittedSnap, it.pendingSnap = it.pendingSnap, it.emittedSnap
	ans := it.current
	return &ans
}

func (it *OrderedConjunctionIntervalIterator) Collect(c IntervalCollector) {
	c.CollectComposite(it.doc, it.current, it.distance)
	if it.recording() {
		it.emittedSnap.replay(c)
	}
}

func (it *OrderedConjunctionIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator {
	return it.iterators
}

func (it *OrderedConjunctionIntervalIterator) MatchDistance() int {
	return it.distance
}

func (it *OrderedConjunctionIntervalIterator) String() string {
	return fmt.Sprintf("OrderedConjunctionIntervalIterator(doc=%v, state=%v)", it.doc, it.state)
}
