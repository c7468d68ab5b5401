package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"

	"github.com/nao1215/torrust-index/internal/model"
	"github.com/nao1215/torrust-index/internal/tracker"
)

// dateLayout is the date format used in Markdown tables.
const dateLayout = "2006-01-02 15:04 MST"

// MarkdownWriter outputs index data as Markdown documents built with
// the nao1215/markdown library.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// build renders md and returns the written length.
func build(md *markdown.Markdown) (int, error) {
	return len(md.String()), md.Build()
}

// cell escapes characters that would break a table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// code wraps s in inline code markers.
func code(s string) string {
	return "`" + s + "`"
}

// WriteTorrents outputs the torrents as a table.
func (w *MarkdownWriter) WriteTorrents(torrents []model.TorrentListing) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Torrents")
	md.PlainText("")

	if len(torrents) == 0 {
		md.Note("No torrents have been uploaded yet.")
		return build(md)
	}

	rows := make([][]string, 0, len(torrents))
	for _, t := range torrents {
		rows = append(rows, []string{
			strconv.FormatInt(t.TorrentID, 10),
			cell(t.Title),
			code(t.InfoHash),
			humanize.Bytes(uint64(max(t.FileSize, 0))),
			strconv.FormatInt(t.Seeders, 10),
			strconv.FormatInt(t.Leechers, 10),
			t.UploadDate.UTC().Format(dateLayout),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Title", "Info Hash", "Size", "Seeders", "Leechers", "Uploaded"},
		Rows:   rows,
	})
	md.PlainText("")

	return build(md)
}

// WriteTorrent outputs the details of one torrent.
func (w *MarkdownWriter) WriteTorrent(t *model.TorrentListing) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1(t.Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", strconv.FormatInt(t.TorrentID, 10)},
			{"Info Hash", code(t.InfoHash)},
			{"Uploader", cell(t.Uploader)},
			{"Category", strconv.FormatInt(t.CategoryID, 10)},
			{"Size", humanize.Bytes(uint64(max(t.FileSize, 0)))},
			{"Uploaded", t.UploadDate.UTC().Format(dateLayout)},
			{"Seeders", strconv.FormatInt(t.Seeders, 10)},
			{"Leechers", strconv.FormatInt(t.Leechers, 10)},
		},
	})
	md.PlainText("")

	if t.Description != "" {
		md.H2("Description")
		md.PlainText("")
		md.PlainText(t.Description)
		md.PlainText("")
	}
	return build(md)
}

// WritePages outputs the pages as a table.
func (w *MarkdownWriter) WritePages(pages []model.Page) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Pages")
	md.PlainText("")

	if len(pages) == 0 {
		md.Note("No pages have been created yet.")
		return build(md)
	}

	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []string{
			code(p.Route),
			cell(p.Title),
			p.CreationDate.UTC().Format(dateLayout),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Route", "Title", "Created"},
		Rows:   rows,
	})
	md.PlainText("")

	return build(md)
}

// WritePage outputs a page as a document with its description as the body.
func (w *MarkdownWriter) WritePage(p *model.Page) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1(p.Title)
	md.PlainText("")
	md.PlainText("Route " + code(p.Route) + ", created " + p.CreationDate.UTC().Format(time.DateOnly))
	md.PlainText("")
	md.PlainText(description(p))
	md.PlainText("")
	return build(md)
}

// WriteCategories outputs the categories as a bullet list.
func (w *MarkdownWriter) WriteCategories(categories []model.Category) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Categories")
	md.PlainText("")

	if len(categories) == 0 {
		md.Note("No categories have been created yet.")
		return build(md)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	md.BulletList(names...)
	md.PlainText("")
	return build(md)
}

// WriteRefreshSummary outputs the refresh counters as a table.
func (w *MarkdownWriter) WriteRefreshSummary(s tracker.RefreshSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Tracker Refresh")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Result", "Count"},
		Rows: [][]string{
			{"Updated", strconv.Itoa(s.Updated)},
			{"Not tracked", strconv.Itoa(s.NotTracked)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Failed > 0 {
		md.Warningf("%d torrents could not be refreshed. Run with --verbose for details.", s.Failed)
		md.PlainText("")
	}
	return build(md)
}
