package coordinator

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bealsearch/internal/search"
)

// ResultSink is the append-only text sink for confirmed candidates. The
// first line records the search bounds ("maxBase maxPow"); each subsequent
// line is one candidate quadruple ("a x b y"). Every append is flushed
// immediately so a coordinator crash loses at most the batch being written.
type ResultSink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewResultSink writes the header line to w and returns a sink appending to
// it. If w is also an io.Closer, Close forwards to it.
func NewResultSink(w io.Writer, maxBase, maxPow uint32) (*ResultSink, error) {
	s := &ResultSink{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	if _, err := fmt.Fprintf(s.w, "%d %d\n", maxBase, maxPow); err != nil {
		return nil, err
	}
	if err := s.w.Flush(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenResultFile creates (truncating) the result file at path and returns a
// sink over it with the header already written.
func OpenResultFile(path string, maxBase, maxPow uint32) (*ResultSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s, err := NewResultSink(f, maxBase, maxPow)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Append writes one line per quadruple and flushes.
func (s *ResultSink) Append(results []search.Quad) error {
	for _, q := range results {
		if _, err := fmt.Fprintf(s.w, "%d %d %d %d\n", q.A, q.X, q.B, q.Y); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// Close flushes buffered output and closes the underlying writer when it is
// closable.
func (s *ResultSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
