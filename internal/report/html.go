package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/tracktype"
)

// DefaultLinkPrefix is prepended to example hrefs in table links.
const DefaultLinkPrefix = "apis/svg.html?"

// indexStyle rotates the track-type column headers.
const indexStyle = "\n" +
	"    th {\n" +
	"      height: 140px;\n" +
	"      white-space: nowrap;\n" +
	"    }\n" +
	"    th > div {\n" +
	"      transform: \n" +
	"        translate(0px, 51px)\n" +
	"        rotate(-45deg);\n" +
	"      width: 30px;\n" +
	"    }\n" +
	"    tr:hover {\n" +
	"      background-color: lightgrey;\n" +
	"    }\n" +
	"    "

// indexTemplate takes, in order: style, API links, header row, local rows, remote rows.
const indexTemplate = "\n" +
	"    <html>\n" +
	"    <head><style>%s</style></head>\n" +
	"    <body>\n" +
	"    <h2>API examples</h2>\n" +
	"    %s\n" +
	"\n" +
	"    <h2>Viewconf examples</h2>\n" +
	"    <table>\n" +
	"    %s\n" +
	"    <tr><td>local</td></tr>\n" +
	"    %s\n" +
	"    <tr><td>higlass.io</td></tr>\n" +
	"    %s\n" +
	"    </table>\n" +
	"\n" +
	"    </body>\n" +
	"    </html>\n" +
	"    "

// HTMLWriter renders the example index page.
type HTMLWriter struct {
	baseWriter

	// escape enables HTML escaping of interpolated text.
	escape bool

	// linkPrefix is prepended to every example href.
	linkPrefix string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithEscape enables HTML escaping of titles, hrefs, API page names and
// track types. Off by default.
func WithEscape(escape bool) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.escape = escape
	}
}

// WithLinkPrefix sets the prefix of example links. Empty keeps DefaultLinkPrefix.
func WithLinkPrefix(prefix string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		if prefix != "" {
			w.linkPrefix = prefix
		}
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		linkPrefix: DefaultLinkPrefix,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the index page followed by a newline.
func (w *HTMLWriter) Write(catalog *model.Catalog) (int, error) {
	return fmt.Fprintln(w.output, w.Render(catalog))
}

// Render returns the index page without the trailing newline.
func (w *HTMLWriter) Render(catalog *model.Catalog) string {
	return fmt.Sprintf(indexTemplate,
		indexStyle,
		w.apiLinks(catalog.APIPages),
		w.headerRow(catalog.TrackTypes),
		w.rows(catalog.Local, catalog.TrackTypes),
		w.rows(catalog.Remote, catalog.TrackTypes),
	)
}

func (w *HTMLWriter) text(s string) string {
	if w.escape {
		return html.EscapeString(s)
	}
	return s
}

func (w *HTMLWriter) apiLinks(pages []string) string {
	links := make([]string, len(pages))
	for i, page := range pages {
		name := w.text(page)
		links[i] = `<a href="apis/` + name + `">` + name + `</a><br>`
	}
	return strings.Join(links, "\n")
}

func (w *HTMLWriter) headerRow(types []string) string {
	var b strings.Builder
	b.WriteString("<tr><td></td>")
	for _, t := range types {
		b.WriteString("<th><div>" + w.text(t) + "</div></th>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func (w *HTMLWriter) rows(examples []model.Example, types []string) string {
	matrix := tracktype.Matrix(examples, types)
	rows := make([]string, len(examples))
	for i, ex := range examples {
		var b strings.Builder
		b.WriteString(`<tr><td><a href="` + w.text(w.linkPrefix+ex.Href) + `">` + w.text(ex.Title) + `</a></td>`)
		for _, used := range matrix[i] {
			if used {
				b.WriteString("<td>X</td>")
			} else {
				b.WriteString("<td></td>")
			}
		}
		b.WriteString("</tr>")
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}
