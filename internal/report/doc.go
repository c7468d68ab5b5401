// Package report renders index data for the terminal and for other tools.
//
// This package contains writers for different output formats:
//   - TextWriter: aligned human-readable text with humanized sizes and dates
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: Markdown tables for sharing
//
// Writers implement the Writer interface, so the CLI picks one from the
// output flags and uses it interchangeably.
package report
