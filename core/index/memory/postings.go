package memory

import (
	"fmt"
	"sort"

	. "github.com/balzaczyy/golucene-intervals/core/search/model"
	"github.com/pkg/errors"
)

type positionsEnum struct {
	postings []*posting
	upto     int // index into postings, -1 before the first doc
	doc      int
	posUpto  int // next position to read
}

func newPositionsEnum(postings []*posting) *positionsEnum {
	return &positionsEnum{postings: postings, upto: -1, doc: -1}
}

func (e *positionsEnum) DocId() int {
	return e.doc
}

func (e *positionsEnum) position(upto int) int {
	e.upto = upto
	e.posUpto = 0
	if upto >= len(e.postings) {
		e.doc = NO_MORE_DOCS
	} else {
		e.doc = e.postings[upto].doc
	}
	return e.doc
}

func (e *positionsEnum) NextDoc() (int, error) {
	if e.doc == NO_MORE_DOCS {
		return NO_MORE_DOCS, nil
	}
	return e.position(e.upto + 1), nil
}

func (e *positionsEnum) Advance(target int) (int, error) {
	if e.doc == NO_MORE_DOCS {
		return NO_MORE_DOCS, nil
	}
	from := e.upto + 1
	rest := e.postings[from:]
	i := sort.Search(len(rest), func(i int) bool { return rest[i].doc >= target })
	return e.position(from + i), nil
}

func (e *positionsEnum) Cost() int64 {
	return int64(len(e.postings))
}

func (e *positionsEnum) current() *posting {
	if e.upto < 0 || e.doc == NO_MORE_DOCS {
		panic(fmt.Sprintf("positions enum is not positioned on a document (doc=%v)", e.doc))
	}
	return e.postings[e.upto]
}

func (e *positionsEnum) Freq() (int, error) {
	return len(e.current().positions), nil
}

func (e *positionsEnum) NextPosition() (int, error) {
	p := e.current()
	if e.posUpto >= len(p.positions) {
		return 0, errors.Errorf("read past last position (freq=%v) of doc %v", len(p.positions), e.doc)
	}
	e.posUpto++
	return p.positions[e.posUpto-1], nil
}

func (e *positionsEnum) StartOffset() (int, error) {
	if e.posUpto == 0 {
		return -1, nil
	}
	return e.current().starts[e.posUpto-1], nil
}

func (e *positionsEnum) EndOffset() (int, error) {
	if e.posUpto == 0 {
		return -1, nil
	}
	return e.current().ends[e.posUpto-1], nil
}
