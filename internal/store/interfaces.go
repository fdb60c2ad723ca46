package store

import (
	"context"

	"github.com/pagesmith/pagesmith/models"
)

// PageRepository is the data-access contract for pages.
//
// Create has insert-or-ignore semantics: inserting a page whose url_path
// already exists silently does nothing. Update and Delete report the
// affected row count; zero is not an error and callers that require
// existence must check it themselves.
type PageRepository interface {
	Create(ctx context.Context, page models.MutPage) error
	GetByID(ctx context.Context, id int64) (models.Page, error)
	List(ctx context.Context) ([]models.Page, error)
	Update(ctx context.Context, id int64, page models.MutPage) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	// GetByURL resolves a url path to the page, its flat modules
	// (category IS NULL, id order) and its categorized module groups
	// (category first-appearance order, members in id order).
	GetByURL(ctx context.Context, urlPath string) (models.Page, []models.Module, []models.CategoryModules, error)

	// GetWithModules returns the page and every module attached to it,
	// flat and categorized alike, for the JSON API join endpoint.
	GetWithModules(ctx context.Context, id int64) (models.Page, []models.Module, error)
}

// ModuleRepository is the data-access contract for modules.
// List returns flat modules only; categorized modules are reachable
// through ListByCategory or the page join.
type ModuleRepository interface {
	Create(ctx context.Context, module models.MutModule) error
	GetByID(ctx context.Context, id int64) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Module, error)
	Update(ctx context.Context, id int64, module models.MutModule) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CategoryRepository is the data-access contract for module categories.
type CategoryRepository interface {
	Create(ctx context.Context, category models.MutCategory) error
	GetByID(ctx context.Context, id int64) (models.ModuleCategory, error)
	Update(ctx context.Context, id int64, category models.MutCategory) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// UserRepository is the data-access contract for user accounts and their
// session tokens.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	Update(ctx context.Context, id int64, user models.User) (int64, error)
	UpdateToken(ctx context.Context, username string, token *string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ConfigRepository is the data-access contract for the web_config
// key/value table. Put has upsert semantics.
type ConfigRepository interface {
	Get(ctx context.Context, key string) (models.ConfigEntry, error)
	List(ctx context.Context) ([]models.ConfigEntry, error)
	Put(ctx context.Context, entry models.ConfigEntry) error
	Delete(ctx context.Context, key string) (int64, error)
}
