package intervals

import (
	"fmt"
)

// search/intervals/IntervalCollector.java

// Receives the intervals of a match when Collect is called on an iterator.
type IntervalCollector interface {
	// A leaf occurrence: a term position or a phrase span.
	CollectLeafPosition(doc int, interval Interval)
	// A composite interval with its match distance. The contributing
	// sub-intervals, if retained, follow immediately.
	CollectComposite(doc int, interval Interval, distance int)
}

type CollectedInterval struct {
	Doc      int
	Interval Interval
	Leaf     bool
	Distance int
}

func (ci CollectedInterval) String() string {
	if ci.Leaf {
		return fmt.Sprintf("leaf(doc=%v, %v-%v)", ci.Doc, ci.Interval.Begin, ci.Interval.End)
	}
	return fmt.Sprintf("composite(doc=%v, %v-%v, distance=%v)", ci.Doc, ci.Interval.Begin, ci.Interval.End, ci.Distance)
}

// Records everything handed to it, in collection order.
type SpanCollector struct {
	Intervals []CollectedInterval
}

func (c *SpanCollector) CollectLeafPosition(doc int, interval Interval) {
	c.Intervals = append(c.Intervals, CollectedInterval{doc, interval, true, 0})
}

func (c *SpanCollector) CollectComposite(doc int, interval Interval, distance int) {
	c.Intervals = append(c.Intervals, CollectedInterval{doc, interval, false, distance})
}

func (c *SpanCollector) Leaves() []Interval {
	var res []Interval
	for _, ci := range c.Intervals {
		if ci.Leaf {
			res = append(res, ci.Interval)
		}
	}
	return res
}

func (c *SpanCollector) Reset() {
	c.Intervals = c.Intervals[:0]
}

/*
snapShot copies the sub-intervals of a candidate at the moment the
candidate is formed, before the sub-iterators move on. It is replayed
when the owner's Collect is called.
*/
type snapShot struct {
	items []CollectedInterval
}

func (s *snapShot) reset() {
	s.items = s.items[:0]
}

func (s *snapShot) CollectLeafPosition(doc int, interval Interval) {
	s.items = append(s.items, CollectedInterval{doc, interval, true, 0})
}

func (s *snapShot) CollectComposite(doc int, interval Interval, distance int) {
	s.items = append(s.items, CollectedInterval{doc, interval, false, distance})
}

func (s *snapShot) record(subs []IntervalIterator) {
	s.reset()
	for _, sub := range subs {
		sub.Collect(s)
	}
}

func (s *snapShot) replay(c IntervalCollector) {
	for _, ci := range s.items {
		if ci.Leaf {
			c.CollectLeafPosition(ci.Doc, ci.Interval)
		} else {
			c.CollectComposite(ci.Doc, ci.Interval, ci.Distance)
		}
	}
}
