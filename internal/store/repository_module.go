package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// moduleRepository is the PostgreSQL-backed implementation of
// [ModuleRepository].
type moduleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewModuleRepository constructs a [ModuleRepository] backed by the
// provided database connection and logger.
func NewModuleRepository(db *DB, logger *logger.Logger) ModuleRepository {
	logger.Debug().Msg("creating module repository")
	return &moduleRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new module with insert-or-ignore semantics.
func (r *moduleRepository) Create(ctx context.Context, module models.MutModule) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createModule, module.PageID, module.CategoryID, module.Title, module.Content); err != nil {
		log.Err(err).Str("func", "*moduleRepository.Create").Msg("error inserting module")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetByID retrieves one module by primary key.
// Returns [ErrNotFound] if no module exists with that id.
func (r *moduleRepository) GetByID(ctx context.Context, id int64) (models.Module, error) {
	log := logger.FromContext(ctx)

	var module models.Module
	row := r.db.QueryRowContext(ctx, getModuleByID, id)
	if err := row.Scan(&module.ID, &module.PageID, &module.CategoryID, &module.Title, &module.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Module{}, ErrNotFound
		}
		log.Err(err).Str("func", "*moduleRepository.GetByID").Msg("error scanning module row")
		return models.Module{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return module, nil
}

// List returns every flat module (category_id IS NULL) in id order.
// Categorized modules are reachable only through their category or the
// page join.
func (r *moduleRepository) List(ctx context.Context) ([]models.Module, error) {
	return r.queryModules(ctx, sq.Eq{"category_id": nil})
}

// ListByCategory returns the modules of one category in id order.
func (r *moduleRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.Module, error) {
	return r.queryModules(ctx, sq.Eq{"category_id": categoryID})
}

// Update overwrites the mutable columns of a module and reports the
// number of affected rows. Zero affected rows is not an error.
func (r *moduleRepository) Update(ctx context.Context, id int64, module models.MutModule) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateModuleQuery(id, module)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.Update").Msg("error building update query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.Update").Msg("error updating module")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes a module by id and reports the number of affected rows.
func (r *moduleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteModule, id)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.Delete").Msg("error deleting module")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

func (r *moduleRepository) queryModules(ctx context.Context, where sq.Sqlizer) ([]models.Module, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectModulesQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.queryModules").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.queryModules").Msg("error querying modules")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanModules(rows)
}
