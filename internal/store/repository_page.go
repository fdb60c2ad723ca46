package store

import (
	"database/sql"
	"errors"
	"fmt"

	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// pageRepository is the PostgreSQL-backed implementation of [PageRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type pageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPageRepository constructs a [PageRepository] backed by the provided
// database connection and logger.
func NewPageRepository(db *DB, logger *logger.Logger) PageRepository {
	logger.Debug().Msg("creating page repository")
	return &pageRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new page. A url_path collision is silently ignored
// (insert-or-ignore), so calling Create twice with the same payload is a
// no-op rather than an error.
func (r *pageRepository) Create(ctx context.Context, page models.MutPage) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createPage, page.URLName, page.URLPath, page.Title); err != nil {
		log.Err(err).Str("func", "*pageRepository.Create").Msg("error inserting page")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetByID retrieves one page by primary key.
// Returns [ErrNotFound] if no page exists with that id.
func (r *pageRepository) GetByID(ctx context.Context, id int64) (models.Page, error) {
	log := logger.FromContext(ctx)

	var page models.Page
	row := r.db.QueryRowContext(ctx, getPageByID, id)
	if err := row.Scan(&page.ID, &page.URLName, &page.URLPath, &page.Title, &page.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page{}, ErrNotFound
		}
		log.Err(err).Str("func", "*pageRepository.GetByID").Msg("error scanning page row")
		return models.Page{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return page, nil
}

// List returns every page in id order.
func (r *pageRepository) List(ctx context.Context) ([]models.Page, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPages)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.List").Msg("error querying pages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	pages := make([]models.Page, 0)
	for rows.Next() {
		var page models.Page
		if err := rows.Scan(&page.ID, &page.URLName, &page.URLPath, &page.Title, &page.CreatedAt); err != nil {
			log.Err(err).Str("func", "*pageRepository.List").Msg("error scanning page rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pages, nil
}

// Update overwrites the mutable columns of a page and reports the number
// of affected rows. Zero affected rows is not an error.
func (r *pageRepository) Update(ctx context.Context, id int64, page models.MutPage) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePageQuery(id, page)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.Update").Msg("error building update query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.Update").Msg("error updating page")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes a page by id and reports the number of affected rows.
// Modules and categories of the page are removed by the database cascade.
func (r *pageRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deletePage, id)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.Delete").Msg("error deleting page")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// GetByURL resolves a url path to its page, the page's flat modules and
// its categorized module groups.
//
// The lookup runs three queries: the page row, the flat modules
// (category_id IS NULL, id order), and the category join (ordered by
// category id, then module id). Grouping happens in memory, preserving
// the first-appearance order of categories.
func (r *pageRepository) GetByURL(ctx context.Context, urlPath string) (models.Page, []models.Module, []models.CategoryModules, error) {
	log := logger.FromContext(ctx)

	var page models.Page
	row := r.db.QueryRowContext(ctx, getPageByURL, urlPath)
	if err := row.Scan(&page.ID, &page.URLName, &page.URLPath, &page.Title, &page.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page{}, nil, nil, ErrNotFound
		}
		log.Err(err).Str("func", "*pageRepository.GetByURL").Msg("error scanning page row")
		return models.Page{}, nil, nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	flat, err := r.queryModules(ctx, sq.And{sq.Eq{"page_id": page.ID}, sq.Eq{"category_id": nil}})
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.GetByURL").Msg("error querying flat modules")
		return models.Page{}, nil, nil, err
	}

	groups, err := r.queryGroupedModules(ctx, page.ID)
	if err != nil {
		log.Err(err).Str("func", "*pageRepository.GetByURL").Msg("error querying grouped modules")
		return models.Page{}, nil, nil, err
	}

	return page, flat, groups, nil
}

// GetWithModules returns the page and all of its modules in id order,
// without splitting them by category.
func (r *pageRepository) GetWithModules(ctx context.Context, id int64) (models.Page, []models.Module, error) {
	page, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Page{}, nil, err
	}

	modules, err := r.queryModules(ctx, sq.Eq{"page_id": id})
	if err != nil {
		return models.Page{}, nil, err
	}

	return page, modules, nil
}

func (r *pageRepository) queryModules(ctx context.Context, where sq.Sqlizer) ([]models.Module, error) {
	query, args, err := buildSelectModulesQuery(where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanModules(rows)
}

func (r *pageRepository) queryGroupedModules(ctx context.Context, pageID int64) ([]models.CategoryModules, error) {
	query, args, err := buildSelectGroupedModulesQuery(pageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]models.CategoryModules, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var category models.ModuleCategory
		var module models.Module
		if err := rows.Scan(
			&category.ID, &category.PageID, &category.Title,
			&module.ID, &module.PageID, &module.CategoryID, &module.Title, &module.Content,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		i, ok := index[category.ID]
		if !ok {
			i = len(groups)
			index[category.ID] = i
			groups = append(groups, models.CategoryModules{Category: category})
		}
		groups[i].Modules = append(groups[i].Modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return groups, nil
}

func scanModules(rows *sql.Rows) ([]models.Module, error) {
	modules := make([]models.Module, 0)
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.PageID, &module.CategoryID, &module.Title, &module.Content); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return modules, nil
}
