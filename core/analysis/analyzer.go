package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one analyzed occurrence: its normalized text, token position
// and the byte offsets of the original text it was produced from.
type Token struct {
	Term        string
	Position    int
	StartOffset int
	EndOffset   int
}

func (t Token) String() string {
	return t.Term
}

// Common English words that are not usually useful for searching.
var ENGLISH_STOP_WORDS_SET = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true, "but": true, "by": true,
	"for": true, "if": true, "in": true, "into": true, "is": true, "it": true,
	"no": true, "not": true, "of": true, "on": true, "or": true, "such": true,
	"that": true, "the": true, "their": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "to": true, "was": true, "will": true, "with": true,
}

/*
Splits text on anything that is not a letter or a digit, lower cases
the pieces and optionally removes stop words.

Removed stop words still consume a position, the same way Lucene's
StopFilter keeps position increments, so proximity between the
remaining tokens is measured against the original text.
*/
type Analyzer struct {
	StopWords map[string]bool
	// Keep original case.
	KeepCase bool
}

func NewSimpleAnalyzer() *Analyzer {
	return &Analyzer{}
}

func NewStopAnalyzer() *Analyzer {
	return &Analyzer{StopWords: ENGLISH_STOP_WORDS_SET}
}

func (a *Analyzer) Analyze(text string) []Token {
	var tokens []Token
	pos, start := 0, -1
	emit := func(end int) {
		term := text[start:end]
		if !a.KeepCase {
			term = strings.ToLower(term)
		}
		if !a.StopWords[term] {
			tokens = append(tokens, Token{term, pos, start, end})
		}
		pos++
		start = -1
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			emit(i)
		}
		i += size
	}
	if start >= 0 {
		emit(len(text))
	}
	return tokens
}
