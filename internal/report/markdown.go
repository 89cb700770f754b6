package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/tracktype"
)

// MarkdownWriter outputs the index in Markdown format.
// This format is designed for documentation sites and pull requests.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation so tables and mermaid charts are built from data rather than
// string concatenation.
type MarkdownWriter struct {
	baseWriter

	// linkPrefix is prepended to every example href.
	linkPrefix string
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
// An empty linkPrefix uses DefaultLinkPrefix.
func NewMarkdownWriter(output io.Writer, linkPrefix string) *MarkdownWriter {
	if linkPrefix == "" {
		linkPrefix = DefaultLinkPrefix
	}
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		linkPrefix: linkPrefix,
	}
}

// Write outputs the catalog in Markdown format.
func (w *MarkdownWriter) Write(catalog *model.Catalog) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Viewconf Examples")
	md.PlainText("")

	w.writeAPIPages(md, catalog)
	w.writeExamples(md, "Local", catalog.Local, catalog.TrackTypes)
	w.writeExamples(md, "higlass.io", catalog.Remote, catalog.TrackTypes)
	w.writeUsage(md, catalog)

	return len(md.String()), md.Build()
}

// writeAPIPages writes the API example pages as a bullet list.
func (w *MarkdownWriter) writeAPIPages(md *markdown.Markdown, catalog *model.Catalog) {
	md.H2("API examples")
	md.PlainText("")

	if len(catalog.APIPages) == 0 {
		md.PlainText("No API examples found.")
		md.PlainText("")
		return
	}

	links := make([]string, len(catalog.APIPages))
	for i, page := range catalog.APIPages {
		links[i] = markdown.Link(page, "apis/"+page)
	}
	md.BulletList(links...)
	md.PlainText("")
}

// writeExamples writes one table of examples with an X per used track type.
func (w *MarkdownWriter) writeExamples(md *markdown.Markdown, heading string, examples []model.Example, types []string) {
	md.H2(heading)
	md.PlainText("")

	if len(examples) == 0 {
		md.PlainText("No examples.")
		md.PlainText("")
		return
	}

	header := append([]string{"Example"}, types...)
	matrix := tracktype.Matrix(examples, types)
	rows := make([][]string, len(examples))
	for i, ex := range examples {
		row := make([]string, 0, len(types)+1)
		row = append(row, markdown.Link(ex.Title, w.linkPrefix+ex.Href))
		for _, used := range matrix[i] {
			if used {
				row = append(row, "X")
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeUsage writes a mermaid pie chart of how many examples use each track type.
func (w *MarkdownWriter) writeUsage(md *markdown.Markdown, catalog *model.Catalog) {
	if len(catalog.TrackTypes) == 0 {
		return
	}

	md.H2("Track type usage")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Examples per track type"),
		piechart.WithShowData(true),
	)

	counts := usageCounts(catalog)
	for _, typ := range catalog.TrackTypes {
		chart.LabelAndIntValue(typ, uint64(counts[typ])) //nolint:gosec // counts are never negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
	md.PlainTextf("%s examples, %s track types.",
		strconv.Itoa(catalog.ExampleCount()),
		strconv.Itoa(len(catalog.TrackTypes)),
	)
}

// usageCounts returns how many examples use each track type.
func usageCounts(catalog *model.Catalog) map[string]int {
	counts := make(map[string]int, len(catalog.TrackTypes))
	for _, ex := range catalog.All() {
		for typ := range tracktype.Extract(ex.Viewconf) {
			counts[typ]++
		}
	}
	return counts
}
