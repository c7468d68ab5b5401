package model

import "time"

// Page is a routable content page.
type Page struct {
	PageID int64 `json:"page_id"`

	// Route is the unique path the page is served under, e.g. "/about".
	Route string `json:"route"`

	Title string `json:"title"`

	// Description is optional; nil means the page has no description.
	Description *string `json:"description,omitempty"`

	CreationDate time.Time `json:"creation_date"`
}

// NewPage is the input for inserting a page.
type NewPage struct {
	Route       string  `validate:"required,max=255"`
	Title       string  `validate:"required,max=256"`
	Description *string `validate:"omitempty"`
}
