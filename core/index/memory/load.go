package memory

import (
	"bufio"
	"io"
	"os"

	"github.com/balzaczyy/golucene-intervals/core/analysis"
	"github.com/pkg/errors"
)

// Stored text of each document loaded from a corpus, by doc id.
type Corpus []string

/*
Reads one document per non-empty line of r and indexes it into field.
The returned corpus keeps the raw lines so hits can be highlighted.
*/
func LoadLines(r io.Reader, field string, analyzer *analysis.Analyzer) (*Index, Corpus, error) {
	idx := NewIndex()
	var corpus Corpus
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		idx.AddDocument(NewTextField(field, line, analyzer))
		corpus = append(corpus, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read corpus after %v documents", len(corpus))
	}
	log.Infof("Indexed %v documents into field '%v'", idx.MaxDoc(), field)
	return idx, corpus, nil
}

func LoadFile(path, field string, analyzer *analysis.Analyzer) (*Index, Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open corpus")
	}
	defer f.Close()
	return LoadLines(f, field, analyzer)
}
