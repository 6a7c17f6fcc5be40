package intervals

import (
	"context"
	"fmt"
	"sync"

	. "github.com/balzaczyy/golucene-intervals/core/search/model"
)

// A matching document.
type Hit struct {
	Doc int
	// Sloppy frequency: sum of 1/(matchDistance+1) over its intervals.
	Freq float64
	// Set when intervals are collected.
	Intervals []CollectedInterval
}

func (h Hit) String() string {
	return fmt.Sprintf("Hit(doc=%v, freq=%.3f, intervals=%v)", h.Doc, h.Freq, len(h.Intervals))
}

// search/IndexSearcher.java

type Searcher struct {
	reader LeafReader
	// Collect the intervals of every hit.
	CollectIntervals bool
	// Stop after that many hits; 0 means no limit.
	MaxHits int
}

func NewSearcher(r LeafReader) *Searcher {
	return &Searcher{reader: r}
}

func (s *Searcher) Search(q Query) ([]Hit, error) {
	return s.SearchContext(context.Background(), q)
}

/*
SearchContext returns the hits of q in document order. Candidates are
taken from the document approximation of q and confirmed by position.
Cancellation of ctx is checked between documents.
*/
func (s *Searcher) SearchContext(ctx context.Context, q Query) (hits []Hit, err error) {
	docs, err := q.Docs(s.reader)
	if err != nil {
		return nil, err
	}
	m, err := NewMatcher(q, s.reader, s.CollectIntervals)
	if err != nil {
		return nil, err
	}
	log.Debugf("searching %v over %v docs (cost=%v)", q.ToString(""), s.reader.MaxDoc(), docs.Cost())

	var sc SpanCollector
	var c IntervalCollector
	if s.CollectIntervals {
		c = &sc
	}
	doc, err := docs.NextDoc()
	for ; doc != NO_MORE_DOCS && err == nil; doc, err = docs.NextDoc() {
		if err = ctx.Err(); err != nil {
			return hits, err
		}
		sc.Reset()
		var freq float64
		if freq, err = m.Collect(doc, c); err != nil {
			return hits, err
		}
		if freq == 0 {
			continue
		}
		hit := Hit{Doc: doc, Freq: freq}
		if s.CollectIntervals {
			hit.Intervals = append([]CollectedInterval(nil), sc.Intervals...)
		}
		hits = append(hits, hit)
		if s.MaxHits > 0 && len(hits) >= s.MaxHits {
			break
		}
	}
	return hits, err
}

/*
SearchSegments searches every reader in its own goroutine with its own
iterator tree and returns the hits per reader. The first error cancels
the remaining segments.
*/
func SearchSegments(ctx context.Context, q Query, collectIntervals bool, readers ...LeafReader) ([][]Hit, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res := make([][]Hit, len(readers))
	errs := make([]error, len(readers))
	var wg sync.WaitGroup
	for i, r := range readers {
		wg.Add(1)
		go func(i int, r LeafReader) {
			defer wg.Done()
			s := NewSearcher(r)
			s.CollectIntervals = collectIntervals
			if res[i], errs[i] = s.SearchContext(ctx, q); errs[i] != nil {
				cancel()
			}
		}(i, r)
	}
	wg.Wait()

	for i, err := range errs {
		// report the cause rather than the cancellations it triggered
		if err != nil && err != context.Canceled {
			log.Errorf("segment %v: %v", i, err)
			return res, err
		}
	}
	return res, ctx.Err()
}
