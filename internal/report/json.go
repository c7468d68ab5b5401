package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/torrust-index/internal/model"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// JSONWriter outputs index data in JSON format.
// Empty listings are written as [] rather than null.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteTorrents outputs the torrents as a JSON array.
func (w *JSONWriter) WriteTorrents(torrents []model.TorrentListing) (int, error) {
	if torrents == nil {
		torrents = []model.TorrentListing{}
	}
	return w.writeJSON(torrents)
}

// WriteTorrent outputs a single torrent object.
func (w *JSONWriter) WriteTorrent(torrent *model.TorrentListing) (int, error) {
	return w.writeJSON(torrent)
}

// WritePages outputs the pages as a JSON array.
func (w *JSONWriter) WritePages(pages []model.Page) (int, error) {
	if pages == nil {
		pages = []model.Page{}
	}
	return w.writeJSON(pages)
}

// WritePage outputs a single page object.
func (w *JSONWriter) WritePage(page *model.Page) (int, error) {
	return w.writeJSON(page)
}

// WriteCategories outputs the categories as a JSON array.
func (w *JSONWriter) WriteCategories(categories []model.Category) (int, error) {
	if categories == nil {
		categories = []model.Category{}
	}
	return w.writeJSON(categories)
}

// WriteRefreshSummary outputs the refresh counters.
func (w *JSONWriter) WriteRefreshSummary(summary tracker.RefreshSummary) (int, error) {
	return w.writeJSON(summary)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
