package report

import (
	"fmt"
	"io"

	"github.com/nao1215/torrust-index/internal/model"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// Writer defines the interface for report output.
// Each method writes one complete document and returns the number of bytes written.
type Writer interface {
	// WriteTorrents outputs a torrent listing.
	WriteTorrents(torrents []model.TorrentListing) (int, error)

	// WriteTorrent outputs the details of one torrent.
	WriteTorrent(torrent *model.TorrentListing) (int, error)

	// WritePages outputs a page listing.
	WritePages(pages []model.Page) (int, error)

	// WritePage outputs one page including its description.
	WritePage(page *model.Page) (int, error)

	// WriteCategories outputs the category list.
	WriteCategories(categories []model.Category) (int, error)

	// WriteRefreshSummary outputs the result of a tracker refresh.
	WriteRefreshSummary(summary tracker.RefreshSummary) (int, error)
}

// Format selects a Writer implementation.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// NewWriter returns the Writer for format.
func NewWriter(output io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// description returns the page description or a placeholder.
func description(p *model.Page) string {
	if p.Description == nil || *p.Description == "" {
		return "(no description)"
	}
	return *p.Description
}
