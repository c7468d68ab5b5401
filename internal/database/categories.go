package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/torrust-index/internal/model"
)

// VerifyCategory returns the category with the given name, or nil if it does not exist.
func (d *Database) VerifyCategory(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT category_id, name FROM torrust_categories WHERE name = ?`

	var c model.Category
	err := d.db.QueryRowContext(ctx, query, model.NormalizeName(name)).Scan(&c.CategoryID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}
	return &c, nil
}

// InsertCategory creates a category and returns its id.
func (d *Database) InsertCategory(ctx context.Context, name string) (int64, error) {
	name = model.NormalizeName(name)
	if name == "" {
		return 0, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	result, err := d.db.ExecContext(ctx, `INSERT INTO torrust_categories (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrCategoryAlreadyExists, err)
		}
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	return result.LastInsertId()
}

// GetCategories returns every category ordered by name.
func (d *Database) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT category_id, name FROM torrust_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
