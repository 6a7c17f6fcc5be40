package intervals

import (
	"container/heap"
	"fmt"
)

// search/intervals/IntervalQueueOr.java

// Sub-intervals ordered by end, ties by descending begin.
type intervalQueueOr []*intervalRef

func (q intervalQueueOr) Len() int { return len(q) }
func (q intervalQueueOr) Less(i, j int) bool {
	a, b := q[i].interval, q[j].interval
	return a.End < b.End || a.End == b.End && a.Begin > b.Begin
}
func (q intervalQueueOr) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *intervalQueueOr) Push(x interface{}) { *q = append(*q, x.(*intervalRef)) }
func (q *intervalQueueOr) Pop() interface{} {
	old := *q
	n := len(old)
	ans := old[n-1]
	*q = old[0 : n-1]
	return ans
}

// search/intervals/DisjunctionIntervalIterator.java

/*
DisjunctionIntervalIterator merges the intervals of its sub-iterators
and keeps the minimal ones: an interval containing an interval of
another sub-iterator is dropped. Sub-iterators that do not occur in
the current document are left out.
*/
type DisjunctionIntervalIterator struct {
	docCursor
	iterators        []IntervalIterator
	active           []IntervalIterator
	queue            intervalQueueOr
	collectIntervals bool
	started          bool
	emitted          bool
	current          Interval
	distance         int
	snap             snapShot
}

func NewDisjunctionIntervalIterator(collectIntervals bool, iterators ...IntervalIterator) *DisjunctionIntervalIterator {
	assert2(len(iterators) > 0, "a disjunction needs at least one sub-iterator")
	ans := &DisjunctionIntervalIterator{
		docCursor:        newDocCursor(),
		iterators:        iterators,
		collectIntervals: collectIntervals,
	}
	ans.current.setMaximum()
	return ans
}

func (it *DisjunctionIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	it.active = it.active[:0]
	for _, sub := range it.iterators {
		ok, err := sub.Reset(doc)
		if err != nil {
			return false, err
		}
		if ok {
			it.active = append(it.active, sub)
		}
	}
	it.queue = it.queue[:0]
	it.started, it.emitted = false, false
	it.current.setMaximum()
	it.positioned = len(it.active) > 0
	return it.positioned, nil
}

func (it *DisjunctionIntervalIterator) start() error {
	it.started = true
	for i, sub := range it.active {
		interval, err := sub.Next()
		if err != nil {
			return err
		}
		if interval != nil {
			it.queue = append(it.queue, &intervalRef{i, interval})
		}
	}
	heap.Init(&it.queue)
	return nil
}

func (it *DisjunctionIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("disjunction iterator")
	if !it.started {
		if err := it.start(); err != nil {
			return nil, err
		}
	}
	for len(it.queue) > 0 {
		top := it.queue[0]
		candidate, sub := *top.interval, it.active[top.index]
		if it.collectIntervals {
			it.snap.reset()
			sub.Collect(&it.snap)
		}
		distance := sub.MatchDistance()

		next, err := sub.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			heap.Pop(&it.queue)
		} else {
			top.interval = next
			heap.Fix(&it.queue, 0)
		}

		// ends never decrease, so a begin not beyond the last emitted
		// one means candidate contains it
		if !it.emitted || candidate.Begin > it.current.Begin {
			it.current, it.distance = candidate, distance
			it.emitted = true
			ans := candidate
			return &ans, nil
		}
	}
	return nil, nil
}

func (it *DisjunctionIntervalIterator) Collect(c IntervalCollector) {
	if it.collectIntervals {
		it.snap.replay(c)
	}
}

func (it *DisjunctionIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator {
	return it.iterators
}

func (it *DisjunctionIntervalIterator) MatchDistance() int {
	return it.distance
}

func (it *DisjunctionIntervalIterator) String() string {
	return fmt.Sprintf("DisjunctionIntervalIterator(doc=%v, active=%v/%v)", it.doc, len(it.active), len(it.iterators))
}
