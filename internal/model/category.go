package model

// Category is a torrent category.
type Category struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}
