package report

import (
	"encoding/json"
	"io"

	"github.com/naka-gawa/trending-analyzer/internal/domain"
)

// JSONWriter outputs reports in JSON format for programmatic processing.
// The analyses are written as a top-level array; every field of every
// analysis record is preserved under its json tag, so the output round-trips
// losslessly.
type JSONWriter struct {
	baseWriter
	indent       bool
	indentPrefix string
	indentString string
}

// JSONOption configures a JSONWriter.
type JSONOption func(*JSONWriter)

// WithIndent enables indented JSON output with the given prefix and indent
// strings.
func WithIndent(prefix, indent string) JSONOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables indented JSON with default two-space indentation.
func WithPrettyPrint() JSONOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the analyses as a JSON array.
func (w *JSONWriter) Write(analyses []domain.Analysis) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(analyses, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(analyses)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for friendlier terminal and file output.
	data = append(data, '\n')

	return w.output.Write(data)
}
