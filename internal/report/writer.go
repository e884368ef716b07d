// Package report renders a list of analysis records as a human-readable text
// document and as machine-readable JSON.
package report

import (
	"io"

	"github.com/naka-gawa/trending-analyzer/internal/domain"
)

// Writer defines the interface for report output. Implementations render the
// same ordered analysis list in different formats. Rendering is deterministic:
// the same input (and a fixed clock, for formats that embed a timestamp)
// always produces byte-identical output.
type Writer interface {
	// Write renders the analyses to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(analyses []domain.Analysis) (int, error)
}

// MultiWriter writes the same report to multiple Writers. Useful for
// emitting to both terminal and file in one call. It stops on the first
// error encountered.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the analyses to all configured Writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(analyses []domain.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(analyses)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
