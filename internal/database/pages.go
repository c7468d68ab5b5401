package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/torrust-index/internal/model"
)

// pageColumns is the column list shared by every page SELECT.
const pageColumns = `page_id, route, title, description, creation_date`

// GetPages returns every page ordered by route.
// An empty database yields an empty slice, never nil.
func (d *Database) GetPages(ctx context.Context) ([]model.Page, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM torrust_pages ORDER BY route`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	pages := make([]model.Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

// GetPageByRoute returns the page served under route, or nil if there is none.
func (d *Database) GetPageByRoute(ctx context.Context, route string) (*model.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM torrust_pages WHERE route = ?`

	page, err := scanPage(d.db.QueryRowContext(ctx, query, route))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}

// InsertPage creates a page. The route is stored as given and is unique: the insert is a single
// statement against a unique index, so concurrent inserts of the same route
// cannot both succeed. A taken route yields ErrPageAlreadyExists.
func (d *Database) InsertPage(ctx context.Context, in model.NewPage) error {
	if err := model.Validate(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	query := `
	INSERT INTO torrust_pages (route, title, description, creation_date)
	VALUES (?, ?, ?, ?)
	`

	var description sql.NullString
	if in.Description != nil {
		description = sql.NullString{String: *in.Description, Valid: true}
	}

	if _, err := d.db.ExecContext(ctx, query, in.Route, in.Title, description, d.nowUnix()); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrPageAlreadyExists, in.Route)
		}
		return fmt.Errorf("%w: insert page: %w", ErrInternal, err)
	}
	return nil
}

func scanPage(row rowScanner) (*model.Page, error) {
	var p model.Page
	var description sql.NullString
	var creationDate int64

	if err := row.Scan(&p.PageID, &p.Route, &p.Title, &description, &creationDate); err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = &description.String
	}
	p.CreationDate = unixTime(creationDate)
	return &p, nil
}
