// Package report renders a collected catalog.
//
// This package contains writers for different output formats:
//   - HTMLWriter: the example index page with the track-type matrix
//   - MarkdownWriter: the same index as GitHub-flavoured Markdown
//   - JSONWriter: structured output for tooling
//   - SimpleWriter: a short plain-text summary for the terminal
//
// Design decision: the HTML output reproduces the published index page
// byte for byte, including its lack of escaping. Escaping is available as
// an option so that untrusted titles can be rendered safely when needed.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-destination output.
package report
