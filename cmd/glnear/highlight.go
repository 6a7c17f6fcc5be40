package main

import (
	"sort"
	"strings"

	"github.com/balzaczyy/golucene-intervals/core/search/intervals"
	"github.com/mattn/go-runewidth"
)

type byteSpan struct {
	start, end int
}

// Byte ranges of line to mark for a hit: its leaves when they were
// collected, the top level spans otherwise.
func highlightSpans(line string, collected []intervals.CollectedInterval) []byteSpan {
	var spans []byteSpan
	add := func(i intervals.Interval) {
		if i.OffsetBegin >= 0 && i.OffsetEnd <= len(line) && i.OffsetBegin < i.OffsetEnd {
			spans = append(spans, byteSpan{i.OffsetBegin, i.OffsetEnd})
		}
	}
	hasLeaves := false
	for _, ci := range collected {
		if ci.Leaf {
			hasLeaves = true
			add(ci.Interval)
		}
	}
	if !hasLeaves {
		for _, ci := range collected {
			add(ci.Interval)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

/*
Returns a line of carets to print under line, aligned on terminal
columns so wide runes stay in place.
*/
func caretLine(line string, spans []byteSpan) string {
	var buf strings.Builder
	col := 0
	for _, s := range spans {
		from := runewidth.StringWidth(line[:s.start])
		to := runewidth.StringWidth(line[:s.end])
		if to <= col {
			continue // overlaps a span already marked
		}
		if from < col {
			from = col
		}
		buf.WriteString(strings.Repeat(" ", from-col))
		buf.WriteString(strings.Repeat("^", to-from))
		col = to
	}
	return buf.String()
}
