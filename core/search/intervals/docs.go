package intervals

import (
	"container/heap"

	. "github.com/balzaczyy/golucene-intervals/core/search/model"
)

// Document approximations: the documents where every leaf of a query
// occurs, before positions are looked at.

type emptyDocs struct {
	doc int
}

func newEmptyDocs() *emptyDocs { return &emptyDocs{-1} }

func (d *emptyDocs) DocId() int { return d.doc }
func (d *emptyDocs) NextDoc() (int, error) {
	d.doc = NO_MORE_DOCS
	return d.doc, nil
}
func (d *emptyDocs) Advance(target int) (int, error) { return SlowAdvance(d, target) }
func (d *emptyDocs) Cost() int64                     { return 0 }

// Every document of a segment.
type allDocs struct {
	doc, maxDoc int
}

func newAllDocs(maxDoc int) *allDocs { return &allDocs{-1, maxDoc} }

func (d *allDocs) DocId() int { return d.doc }

func (d *allDocs) NextDoc() (int, error) {
	return d.Advance(d.doc + 1)
}

func (d *allDocs) Advance(target int) (int, error) {
	if target >= d.maxDoc {
		d.doc = NO_MORE_DOCS
	} else {
		d.doc = target
	}
	return d.doc, nil
}

func (d *allDocs) Cost() int64 { return int64(d.maxDoc) }

// search/ConjunctionScorer.java

// Leapfrogs its sub-iterators to the documents they all contain.
type conjunctionDocs struct {
	docs []DocIdSetIterator
	doc  int
}

func newConjunctionDocs(docs ...DocIdSetIterator) DocIdSetIterator {
	assert(len(docs) > 0)
	if len(docs) == 1 {
		return docs[0]
	}
	return &conjunctionDocs{docs: docs, doc: -1}
}

func (d *conjunctionDocs) DocId() int { return d.doc }

func (d *conjunctionDocs) NextDoc() (int, error) {
	return d.Advance(d.doc + 1)
}

func (d *conjunctionDocs) Advance(target int) (int, error) {
	var err error
	for {
		agreed := true
		for _, sub := range d.docs {
			doc := sub.DocId()
			if doc < target {
				if doc, err = sub.Advance(target); err != nil {
					return 0, err
				}
			}
			if doc == NO_MORE_DOCS {
				d.doc = NO_MORE_DOCS
				return d.doc, nil
			}
			if doc > target {
				target = doc
				agreed = false
			}
		}
		if agreed {
			d.doc = target
			return d.doc, nil
		}
	}
}

func (d *conjunctionDocs) Cost() int64 {
	cost := d.docs[0].Cost()
	for _, sub := range d.docs[1:] {
		if c := sub.Cost(); c < cost {
			cost = c
		}
	}
	return cost
}

// search/DisjunctionSumScorer.java

type docsQueue []DocIdSetIterator

func (q docsQueue) Len() int            { return len(q) }
func (q docsQueue) Less(i, j int) bool  { return q[i].DocId() < q[j].DocId() }
func (q docsQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *docsQueue) Push(x interface{}) { *q = append(*q, x.(DocIdSetIterator)) }
func (q *docsQueue) Pop() interface{} {
	old := *q
	n := len(old)
	ans := old[n-1]
	*q = old[0 : n-1]
	return ans
}

// Documents contained in any of its sub-iterators.
type disjunctionDocs struct {
	queue   docsQueue
	pending []DocIdSetIterator
	doc     int
	cost    int64
}

func newDisjunctionDocs(docs ...DocIdSetIterator) DocIdSetIterator {
	assert(len(docs) > 0)
	if len(docs) == 1 {
		return docs[0]
	}
	ans := &disjunctionDocs{pending: docs, doc: -1}
	for _, sub := range docs {
		ans.cost += sub.Cost()
	}
	return ans
}

func (d *disjunctionDocs) DocId() int { return d.doc }

func (d *disjunctionDocs) NextDoc() (int, error) {
	return d.Advance(d.doc + 1)
}

func (d *disjunctionDocs) Advance(target int) (int, error) {
	if d.pending != nil {
		for _, sub := range d.pending {
			doc, err := sub.Advance(target)
			if err != nil {
				return 0, err
			}
			if doc != NO_MORE_DOCS {
				d.queue = append(d.queue, sub)
			}
		}
		d.pending = nil
		heap.Init(&d.queue)
	}
	for len(d.queue) > 0 {
		top := d.queue[0]
		if top.DocId() >= target {
			d.doc = top.DocId()
			return d.doc, nil
		}
		doc, err := top.Advance(target)
		if err != nil {
			return 0, err
		}
		if doc == NO_MORE_DOCS {
			heap.Pop(&d.queue)
		} else {
			heap.Fix(&d.queue, 0)
		}
	}
	d.doc = NO_MORE_DOCS
	return d.doc, nil
}

func (d *disjunctionDocs) Cost() int64 { return d.cost }
