package intervals

import (
	"container/heap"
	"fmt"
)

// search/intervals/IntervalQueueAnd.java

type intervalRef struct {
	index    int
	interval *Interval
}

// Sub-intervals ordered by begin, ties by end; tracks the largest end.
type intervalQueueAnd struct {
	refs               []*intervalRef
	rightExtreme       int
	rightExtremeOffset int
}

func (q intervalQueueAnd) Len() int { return len(q.refs) }
func (q intervalQueueAnd) Less(i, j int) bool {
	a, b := q.refs[i].interval, q.refs[j].interval
	return a.Before(*b)
}
func (q intervalQueueAnd) Swap(i, j int)       { q.refs[i], q.refs[j] = q.refs[j], q.refs[i] }
func (q *intervalQueueAnd) Push(x interface{}) { q.refs = append(q.refs, x.(*intervalRef)) }
func (q *intervalQueueAnd) Pop() interface{} {
	n := len(q.refs)
	ans := q.refs[n-1]
	q.refs = q.refs[0 : n-1]
	return ans
}

func (q *intervalQueueAnd) top() *intervalRef {
	return q.refs[0]
}

func (q *intervalQueueAnd) reset() {
	q.refs = q.refs[:0]
	q.rightExtreme, q.rightExtremeOffset = -1, -1
}

func (q *intervalQueueAnd) updateRightExtreme(ref *intervalRef) {
	if ref.interval.End > q.rightExtreme {
		q.rightExtreme = ref.interval.End
		q.rightExtremeOffset = ref.interval.OffsetEnd
	}
}

// search/intervals/ConjunctionIntervalIterator.java

/*
ConjunctionIntervalIterator emits the minimal intervals that cover one
interval of every sub-iterator, in any order. This is the AND operator
of "Efficient Optimally Lazy Algorithms for Minimal-Interval Semantics"
(Boldi, Vigna): sub-intervals sit in a queue ordered by begin, the
candidate is [top.Begin, rightExtreme], and only the sub-iterator at the
top is ever advanced. A candidate is emitted once advancing the top
pushes the right extreme beyond it, which proves no narrower window
exists inside it.

Sub-iterators must produce antichains (no interval containing another),
which every iterator in this package does.
*/
type ConjunctionIntervalIterator struct {
	docCursor
	iterators        []IntervalIterator
	queue            intervalQueueAnd
	collectIntervals bool
	collectLeaves    bool
	started          bool
	exhausted        bool
	emitted          bool
	current          Interval
	distance         int
	snap             snapShot
}

func NewConjunctionIntervalIterator(collectIntervals, collectLeaves bool,
	iterators ...IntervalIterator) *ConjunctionIntervalIterator {

	assert2(len(iterators) > 0, "a conjunction needs at least one sub-iterator")
	ans := &ConjunctionIntervalIterator{
		docCursor:        newDocCursor(),
		iterators:        iterators,
		collectIntervals: collectIntervals,
		collectLeaves:    collectLeaves,
	}
	ans.queue.refs = make([]*intervalRef, 0, len(iterators))
	ans.current.setMaximum()
	return ans
}

func (it *ConjunctionIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	for _, sub := range it.iterators {
		if ok, err := sub.Reset(doc); !ok || err != nil {
			return false, err
		}
	}
	it.queue.reset()
	it.current.setMaximum()
	it.started, it.exhausted, it.emitted = false, false, false
	it.positioned = true
	return true, nil
}

// Pulls the first interval of every sub-iterator.
func (it *ConjunctionIntervalIterator) start() error {
	it.started = true
	for i, sub := range it.iterators {
		interval, err := sub.Next()
		if err != nil {
			return err
		}
		if interval == nil {
			it.exhausted = true
			return nil
		}
		ref := &intervalRef{i, interval}
		it.queue.updateRightExtreme(ref)
		it.queue.refs = append(it.queue.refs, ref)
	}
	heap.Init(&it.queue)
	return nil
}

// Moves the sub-iterator at the top of the queue to its next interval.
// Returns false once that sub-iterator is exhausted.
func (it *ConjunctionIntervalIterator) advanceTop() (bool, error) {
	top := it.queue.top()
	interval, err := it.iterators[top.index].Next()
	if err != nil || interval == nil {
		return false, err
	}
	top.interval = interval
	it.queue.updateRightExtreme(top)
	heap.Fix(&it.queue, 0)
	return true, nil
}

func (it *ConjunctionIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("conjunction iterator")
	if !it.started {
		if err := it.start(); err != nil {
			return nil, err
		}
	}
	if it.exhausted {
		return nil, nil
	}

	if it.emitted {
		// every window still starting at the emitted begin contains it
		for it.queue.top().interval.Begin == it.current.Begin {
			if ok, err := it.advanceTop(); !ok || err != nil {
				it.exhausted = true
				return nil, err
			}
		}
	}

	for {
		top := it.queue.top().interval
		candidate := Interval{top.Begin, it.queue.rightExtreme, top.OffsetBegin, it.queue.rightExtremeOffset}
		if it.collectIntervals && it.collectLeaves {
			it.snap.record(it.iterators)
		}
		ok, err := it.advanceTop()
		if err != nil {
			return nil, err
		}
		if !ok {
			it.exhausted = true
			return it.emit(candidate), nil
		}
		if it.queue.rightExtreme > candidate.End {
			return it.emit(candidate), nil
		}
		// the new window lies inside the candidate
	}
}

func (it *ConjunctionIntervalIterator) emit(candidate Interval) *Interval {
	it.current = candidate
	it.emitted = true
	it.distance = candidate.Width() - len(it.iterators)
	ans := candidate
	return &ans
}

func (it *ConjunctionIntervalIterator) Collect(c IntervalCollector) {
	c.CollectComposite(it.doc, it.current, it.distance)
	if it.collectIntervals && it.collectLeaves {
		it.snap.replay(c)
	}
}

func (it *ConjunctionIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator {
	return it.iterators
}

func (it *ConjunctionIntervalIterator) MatchDistance() int {
	return it.distance
}

func (it *ConjunctionIntervalIterator) String() string {
	return fmt.Sprintf("ConjunctionIntervalIterator(doc=%v, subs=%v)", it.doc, len(it.iterators))
}
