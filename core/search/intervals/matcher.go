package intervals

import (
	"fmt"
)

/*
Matcher drives the iterator tree of one query over the documents of
one reader. Documents must be visited in increasing order, and each
document only once: either Match, Collect or Intervals.

A Matcher is not safe for concurrent use; build one per goroutine.
*/
type Matcher struct {
	query            Query
	iter             IntervalIterator
	collectIntervals bool
	matchAll         bool
}

func NewMatcher(q Query, r LeafReader, collectIntervals bool) (*Matcher, error) {
	iter, err := q.Intervals(r, collectIntervals)
	if err != nil {
		return nil, err
	}
	return &Matcher{
		query:            q,
		iter:             iter,
		collectIntervals: collectIntervals,
		matchAll:         q.Kind() == MATCH_ALL,
	}, nil
}

// Reports whether doc matches, stopping at the first interval.
func (m *Matcher) Match(doc int) (bool, error) {
	if m.matchAll {
		return true, nil
	}
	ok, err := m.iter.Reset(doc)
	if !ok || err != nil {
		return false, err
	}
	interval, err := m.iter.Next()
	return interval != nil, err
}

/*
Collect passes every interval of doc to c, together with its leaves
when the matcher collects intervals and the query keeps them, and
returns the sum of 1/(matchDistance+1) over the intervals. A result of
0 means doc does not match.
*/
func (m *Matcher) Collect(doc int, c IntervalCollector) (freq float64, err error) {
	if m.matchAll {
		return 1, nil
	}
	ok, err := m.iter.Reset(doc)
	if !ok || err != nil {
		return 0, err
	}
	for {
		interval, err := m.iter.Next()
		if err != nil || interval == nil {
			return freq, err
		}
		if c != nil {
			m.iter.Collect(c)
		}
		distance := m.iter.MatchDistance()
		if distance < 0 {
			// clauses sharing positions
			distance = 0
		}
		freq += 1 / float64(distance+1)
	}
}

// Returns the intervals of doc, empty if it does not match.
func (m *Matcher) Intervals(doc int) ([]Interval, error) {
	if m.matchAll {
		return nil, nil
	}
	ok, err := m.iter.Reset(doc)
	if !ok || err != nil {
		return nil, err
	}
	return Drain(m.iter)
}

func (m *Matcher) String() string {
	return fmt.Sprintf("Matcher(%v)", m.query.ToString(""))
}
