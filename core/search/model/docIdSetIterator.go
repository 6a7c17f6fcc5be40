package model

import (
	"math"
)

const NO_MORE_DOCS = math.MaxInt32

// search/DocIdSetIterator.java

/*
Iterates over a strictly increasing sequence of document ids.

DocId returns -1 before NextDoc or Advance were called, NO_MORE_DOCS
once the iterator is exhausted, and the current document otherwise.
*/
type DocIdSetIterator interface {
	DocId() int
	// Advances to the next document and returns it, or NO_MORE_DOCS.
	NextDoc() (doc int, err error)
	/*
		Advances to the first document whose id is greater than or equal
		to target and returns it, or NO_MORE_DOCS. Behaves as if written:

			func Advance(target int) (doc int, err error) {
				for doc, err = NextDoc(); err == nil && doc < target; doc, err = NextDoc() {
				}
				return
			}

		Calling it with a target not beyond the current document is
		undefined.
	*/
	Advance(target int) (doc int, err error)
	// Estimated number of matching documents; an upper bound, not exact.
	Cost() int64
}

// SlowAdvance implements Advance by repeatedly calling NextDoc.
func SlowAdvance(it DocIdSetIterator, target int) (doc int, err error) {
	for doc = it.DocId(); doc < target && err == nil; {
		doc, err = it.NextDoc()
	}
	return
}
