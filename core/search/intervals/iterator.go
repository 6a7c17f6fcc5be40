package intervals

import (
	"fmt"

	"github.com/balzaczyy/golucene-intervals/core/index/model"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("intervals")

// search/intervals/IntervalIterator.java

/*
IntervalIterator lazily produces the intervals of one clause within
the current document.

An iterator is first positioned with Reset(doc); documents must be
visited in increasing order. Reset reports whether the clause occurs
in doc at all. Next may only be called once Reset returned true for
the current document: it returns the next interval, or nil once the
document is exhausted. Successive intervals of one document are
strictly increasing in (Begin, End) and no interval contains another.

Iterator trees are owned by a single goroutine; composite iterators
exclusively own their sub-iterators.
*/
type IntervalIterator interface {
	Reset(doc int) (bool, error)
	DocId() int
	Next() (*Interval, error)
	// Passes the interval last returned by Next, and its contributing
	// sub-intervals when those are retained, to c.
	Collect(c IntervalCollector)
	// The direct sub-iterators, nil for leaves.
	SubIntervals(inOrder bool) []IntervalIterator
	// (End - Begin) - (number of sub-clauses - 1) of the interval last
	// returned; 0 for leaves.
	MatchDistance() int
}

// Source of positions for a segment.
type LeafReader interface {
	MaxDoc() int
	// Returns nil when term does not occur in field.
	Positions(field, term string) (model.DocsAndPositionsEnum, error)
	ExpandPrefix(field, prefix string, max int) ([]string, error)
}

func assert(ok bool) {
	if !ok {
		panic("assert fail")
	}
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}

// docCursor keeps the per-document positioning state shared by every
// iterator implementation.
type docCursor struct {
	doc        int
	positioned bool
}

func newDocCursor() docCursor {
	return docCursor{doc: -1}
}

func (c *docCursor) DocId() int {
	return c.doc
}

func (c *docCursor) moveTo(doc int) {
	assert2(doc > c.doc, "documents must be visited in increasing order (current=%v, requested=%v)", c.doc, doc)
	c.doc = doc
	c.positioned = false
}

func (c *docCursor) checkPositioned(name string) {
	assert2(c.positioned, "%v advanced on doc %v which was not confirmed by Reset", name, c.doc)
}

// Iterator for a clause that cannot occur in this segment.
type emptyIntervalIterator struct {
	docCursor
}

func newEmptyIntervalIterator() *emptyIntervalIterator {
	return &emptyIntervalIterator{newDocCursor()}
}

func (it *emptyIntervalIterator) Reset(doc int) (bool, error) {
	it.moveTo(doc)
	return false, nil
}

func (it *emptyIntervalIterator) Next() (*Interval, error) {
	it.checkPositioned("empty iterator")
	return nil, nil
}

func (it *emptyIntervalIterator) Collect(c IntervalCollector)                  {}
func (it *emptyIntervalIterator) SubIntervals(inOrder bool) []IntervalIterator { return nil }
func (it *emptyIntervalIterator) MatchDistance() int                           { return 0 }

// Drains it for the current document.
func Drain(it IntervalIterator) ([]Interval, error) {
	var res []Interval
	for {
		interval, err := it.Next()
		if err != nil || interval == nil {
			return res, err
		}
		res = append(res, *interval)
	}
}
