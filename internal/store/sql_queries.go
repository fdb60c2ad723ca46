package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/pagesmith/pagesmith/models"
)

const (
	createPage = `INSERT INTO pages (url_name, url_path, title)
    VALUES ($1, $2, $3)
    ON CONFLICT (url_path) DO NOTHING;`

	getPageByID = `SELECT id, url_name, url_path, title, created_at
    FROM pages
    WHERE id = $1;`

	getPageByURL = `SELECT id, url_name, url_path, title, created_at
    FROM pages
    WHERE url_path = $1;`

	listPages = `SELECT id, url_name, url_path, title, created_at
    FROM pages
    ORDER BY id;`

	deletePage = `DELETE FROM pages WHERE id = $1;`

	createModule = `INSERT INTO modules (page_id, category_id, title, content)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT DO NOTHING;`

	getModuleByID = `SELECT id, page_id, category_id, title, content
    FROM modules
    WHERE id = $1;`

	deleteModule = `DELETE FROM modules WHERE id = $1;`

	createCategory = `INSERT INTO module_categories (page_id, title)
    VALUES ($1, $2)
    ON CONFLICT DO NOTHING;`

	getCategoryByID = `SELECT id, page_id, title
    FROM module_categories
    WHERE id = $1;`

	deleteCategory = `DELETE FROM module_categories WHERE id = $1;`

	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING id, username, password_hash, auth_token;`

	getUserByUsername = `SELECT id, username, password_hash, auth_token
    FROM users
    WHERE username = $1;`

	getUserByID = `SELECT id, username, password_hash, auth_token
    FROM users
    WHERE id = $1;`

	updateUserToken = `UPDATE users SET auth_token = $1 WHERE username = $2;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	getConfigEntry = `SELECT config_key, config_val
    FROM web_config
    WHERE config_key = $1;`

	listConfigEntries = `SELECT config_key, config_val
    FROM web_config
    ORDER BY config_key;`

	putConfigEntry = `INSERT INTO web_config (config_key, config_val)
    VALUES ($1, $2)
    ON CONFLICT (config_key) DO UPDATE SET config_val = EXCLUDED.config_val;`

	deleteConfigEntry = `DELETE FROM web_config WHERE config_key = $1;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdatePageQuery builds the UPDATE statement for a page.
// created_at is immutable and never part of the SET list.
func buildUpdatePageQuery(id int64, page models.MutPage) (string, []any, error) {
	return psql.Update("pages").
		Set("url_name", page.URLName).
		Set("url_path", page.URLPath).
		Set("title", page.Title).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUpdateModuleQuery builds the UPDATE statement for a module.
// A nil CategoryID moves the module back to the flat field set.
func buildUpdateModuleQuery(id int64, module models.MutModule) (string, []any, error) {
	return psql.Update("modules").
		Set("page_id", module.PageID).
		Set("category_id", module.CategoryID).
		Set("title", module.Title).
		Set("content", module.Content).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUpdateCategoryQuery builds the UPDATE statement for a category.
func buildUpdateCategoryQuery(id int64, category models.MutCategory) (string, []any, error) {
	return psql.Update("module_categories").
		Set("page_id", category.PageID).
		Set("title", category.Title).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUpdateUserQuery builds the UPDATE statement for a user row.
// The auth token is handled separately by UpdateToken.
func buildUpdateUserQuery(id int64, user models.User) (string, []any, error) {
	return psql.Update("users").
		Set("username", user.Username).
		Set("password_hash", user.PasswordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildSelectModulesQuery builds the SELECT over modules used by every
// module listing. The explicit id ordering keeps duplicate-title
// resolution in the composer deterministic (highest id wins).
func buildSelectModulesQuery(where sq.Sqlizer) (string, []any, error) {
	return psql.Select("id", "page_id", "category_id", "title", "content").
		From("modules").
		Where(where).
		OrderBy("id").
		ToSql()
}

// buildSelectGroupedModulesQuery builds the category join for one page:
// every categorized module of the page together with its category row,
// ordered by category id first so that groups come out contiguous.
func buildSelectGroupedModulesQuery(pageID int64) (string, []any, error) {
	return psql.Select(
		"c.id", "c.page_id", "c.title",
		"m.id", "m.page_id", "m.category_id", "m.title", "m.content").
		From("module_categories c").
		Join("modules m ON m.category_id = c.id").
		Where(sq.Eq{"c.page_id": pageID}).
		OrderBy("c.id", "m.id").
		ToSql()
}
