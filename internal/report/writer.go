package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/vcindex/internal/model"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer defines the interface for catalog output.
type Writer interface {
	// Write renders the catalog to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(catalog *model.Catalog) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is used when the index goes to standard output and a file at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the catalog to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(catalog *model.Catalog) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(catalog)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Options holds the settings shared by NewWriter.
type Options struct {
	// Escape HTML-escapes interpolated text in the HTML output.
	Escape bool

	// LinkPrefix is prepended to every example href. Empty uses DefaultLinkPrefix.
	LinkPrefix string

	// Version is recorded in JSON output.
	Version string
}

// NewWriter returns the writer for a format name: "html", "markdown",
// "json" or "text".
func NewWriter(format string, output io.Writer, opts Options) (Writer, error) {
	switch format {
	case "html":
		return NewHTMLWriter(output, WithEscape(opts.Escape), WithLinkPrefix(opts.LinkPrefix)), nil
	case "markdown":
		return NewMarkdownWriter(output, opts.LinkPrefix), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(opts.Version)), nil
	case "text":
		return NewSimpleWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
