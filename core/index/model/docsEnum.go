package model

import (
	. "github.com/balzaczyy/golucene-intervals/core/search/model"
)

// index/DocsEnum.java

type DocsEnum interface {
	DocIdSetIterator
	/*
		Returns term frequency in the current document. Do not call this
		before NextDoc is first called, nor after NextDoc returns
		NO_MORE_DOCS.
	*/
	Freq() (n int, err error)
}

// index/DocsAndPositionsEnum.java

/*
Also iterates through positions. This is the position source the
interval engine consumes: for the current document it yields Freq()
positions in increasing order, each carrying the character offsets of
the token.
*/
type DocsAndPositionsEnum interface {
	DocsEnum
	/*
		Returns the next position. Must not be called more than Freq()
		times for the current document.
	*/
	NextPosition() (pos int, err error)
	// Start offset of the last position returned, or -1 if offsets were not indexed.
	StartOffset() (int, error)
	// End offset of the last position returned, or -1 if offsets were not indexed.
	EndOffset() (int, error)
}
