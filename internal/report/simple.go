package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/vcindex/internal/model"
)

// SimpleWriter outputs a short human-readable summary of a catalog.
// This format is designed for terminal display.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary.
func (w *SimpleWriter) Write(catalog *model.Catalog) (int, error) {
	var b strings.Builder

	separator := strings.Repeat("=", 60)
	b.WriteString(separator + "\n")
	b.WriteString("VIEWCONF INDEX\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Base directory:  %s\n", catalog.BaseDir)
	fmt.Fprintf(&b, "Generated at:    %s\n", catalog.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "API pages:       %d\n", len(catalog.APIPages))
	fmt.Fprintf(&b, "Local examples:  %d\n", len(catalog.Local))
	fmt.Fprintf(&b, "Remote examples: %d\n", len(catalog.Remote))
	fmt.Fprintf(&b, "Track types:     %d\n", len(catalog.TrackTypes))

	if len(catalog.TrackTypes) > 0 {
		b.WriteString("\nTRACK TYPES\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		counts := usageCounts(catalog)
		for _, typ := range catalog.TrackTypes {
			fmt.Fprintf(&b, "  %-40s %d\n", typ, counts[typ])
		}
	}

	if len(catalog.Screenshots) > 0 {
		b.WriteString("\nSCREENSHOTS\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, s := range catalog.Screenshots {
			fmt.Fprintf(&b, "  %s\n", s.Path)
		}
	}

	return io.WriteString(w.output, b.String())
}
