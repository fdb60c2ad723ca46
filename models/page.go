package models

import "time"

// Page is a single addressable page of the site. It is identified by its
// numeric ID in the JSON API and by URLPath on the display route.
type Page struct {
	// ID is the database-assigned primary key.
	ID int64 `json:"id"`

	// URLName is the internal page name. The renderer uses it to select
	// the template a page is rendered with.
	URLName string `json:"url_name"`

	// URLPath is the routing key of the page (e.g. "/about").
	// Unique across all pages.
	URLPath string `json:"url_path"`

	// Title is the human-readable page title.
	Title string `json:"title"`

	// CreatedAt is set by the database on insert and never updated.
	CreatedAt time.Time `json:"created_at"`
}

// MutPage is the mutable projection of a Page accepted by the create and
// update endpoints. CreatedAt is intentionally absent.
type MutPage struct {
	URLName string `json:"url_name"`
	URLPath string `json:"url_path"`
	Title   string `json:"title"`
}

// PageWithModules is the JSON API shape for a page joined with all of its
// modules, flat and categorized alike.
type PageWithModules struct {
	Page
	Modules []Module `json:"modules"`
}
