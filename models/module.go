package models

// Module is a block of content attached to a page.
//
// A module with a nil CategoryID is a "flat field": it is addressed in
// templates directly by its title. A module with a non-nil CategoryID is
// one member of the named, ordered group formed by its category.
type Module struct {
	// ID is the database-assigned primary key.
	ID int64 `json:"id"`

	// PageID references the owning page.
	PageID int64 `json:"page_id"`

	// CategoryID references the module's category, or nil for flat fields.
	CategoryID *int64 `json:"category_id"`

	// Title addresses the module inside a page (flat fields) or labels it
	// inside its category group.
	Title string `json:"title"`

	// Content is the module body, raw text or HTML.
	Content string `json:"content"`
}

// MutModule is the mutable projection of a Module accepted by the create
// and update endpoints.
type MutModule struct {
	PageID     int64  `json:"page_id"`
	CategoryID *int64 `json:"category_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// ModuleCategory groups modules under a named array field within one page.
type ModuleCategory struct {
	ID     int64  `json:"id"`
	PageID int64  `json:"page_id"`
	Title  string `json:"title"`
}

// MutCategory is the mutable projection of a ModuleCategory.
type MutCategory struct {
	PageID int64  `json:"page_id"`
	Title  string `json:"title"`
}

// CategoryModules pairs a category with its member modules in store order.
type CategoryModules struct {
	Category ModuleCategory `json:"category"`
	Modules  []Module       `json:"modules"`
}
