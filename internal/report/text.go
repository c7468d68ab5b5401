package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/torrust-index/internal/model"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// separatorWidth is the width of the horizontal rules in detail views.
const separatorWidth = 60

// TextWriter outputs human-readable text for terminal display.
// Sizes are written as "1.2 GB" and dates relative to now.
type TextWriter struct {
	baseWriter

	// now is the reference time for relative dates.
	now func() time.Time
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithNow sets the reference time used for relative dates.
func WithNow(now func() time.Time) TextWriterOption {
	return func(w *TextWriter) {
		w.now = now
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// relTime formats t relative to the writer's clock.
func (w *TextWriter) relTime(t time.Time) string {
	return humanize.RelTime(t, w.now(), "ago", "from now")
}

// size formats a byte count. Negative values cannot occur in stored data.
func size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// WriteTorrents outputs one aligned row per torrent.
func (w *TextWriter) WriteTorrents(torrents []model.TorrentListing) (int, error) {
	if len(torrents) == 0 {
		return io.WriteString(w.output, "No torrents.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSIZE\tSEEDERS\tLEECHERS\tUPLOADED")
	for _, t := range torrents {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
			t.TorrentID,
			t.Title,
			size(t.FileSize),
			t.Seeders,
			t.Leechers,
			w.relTime(t.UploadDate),
		)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	fmt.Fprintf(&sb, "\n%s\n", pluralize(len(torrents), "torrent"))

	return io.WriteString(w.output, sb.String())
}

// WriteTorrent outputs the details of one torrent.
func (w *TextWriter) WriteTorrent(torrent *model.TorrentListing) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", separatorWidth) + "\n")
	sb.WriteString(torrent.Title + "\n")
	sb.WriteString(strings.Repeat("=", separatorWidth) + "\n")
	fmt.Fprintf(&sb, "ID:          %d\n", torrent.TorrentID)
	fmt.Fprintf(&sb, "Info hash:   %s\n", torrent.InfoHash)
	fmt.Fprintf(&sb, "Uploader:    %s\n", torrent.Uploader)
	fmt.Fprintf(&sb, "Category:    %d\n", torrent.CategoryID)
	fmt.Fprintf(&sb, "Size:        %s (%s bytes)\n", size(torrent.FileSize), humanize.Comma(torrent.FileSize))
	fmt.Fprintf(&sb, "Uploaded:    %s (%s)\n", torrent.UploadDate.Format(time.RFC3339), w.relTime(torrent.UploadDate))
	fmt.Fprintf(&sb, "Seeders:     %d\n", torrent.Seeders)
	fmt.Fprintf(&sb, "Leechers:    %d\n", torrent.Leechers)
	if torrent.Description != "" {
		sb.WriteString(strings.Repeat("-", separatorWidth) + "\n")
		sb.WriteString(torrent.Description + "\n")
	}

	return io.WriteString(w.output, sb.String())
}

// WritePages outputs one aligned row per page.
func (w *TextWriter) WritePages(pages []model.Page) (int, error) {
	if len(pages) == 0 {
		return io.WriteString(w.output, "No pages.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tTITLE\tCREATED")
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Route, p.Title, w.relTime(p.CreationDate))
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	return io.WriteString(w.output, sb.String())
}

// WritePage outputs one page with its description.
func (w *TextWriter) WritePage(page *model.Page) (int, error) {
	var sb strings.Builder

	sb.WriteString(page.Title + "\n")
	sb.WriteString(strings.Repeat("-", separatorWidth) + "\n")
	fmt.Fprintf(&sb, "Route:    %s\n", page.Route)
	fmt.Fprintf(&sb, "Created:  %s (%s)\n", page.CreationDate.Format(time.RFC3339), w.relTime(page.CreationDate))
	sb.WriteString("\n" + description(page) + "\n")

	return io.WriteString(w.output, sb.String())
}

// WriteCategories outputs one category per line.
func (w *TextWriter) WriteCategories(categories []model.Category) (int, error) {
	if len(categories) == 0 {
		return io.WriteString(w.output, "No categories.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\n", c.CategoryID, c.Name)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	return io.WriteString(w.output, sb.String())
}

// WriteRefreshSummary outputs the refresh counters on one line.
func (w *TextWriter) WriteRefreshSummary(s tracker.RefreshSummary) (int, error) {
	return fmt.Fprintf(w.output, "Refreshed %s in %s: %d updated, %d not tracked, %d failed\n",
		pluralize(s.Total, "torrent"),
		s.Elapsed.Round(time.Millisecond),
		s.Updated,
		s.NotTracked,
		s.Failed,
	)
}

// pluralize returns "1 torrent" or "3 torrents".
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
