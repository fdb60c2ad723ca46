package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// categoryRepository is the PostgreSQL-backed implementation of
// [CategoryRepository].
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new category with insert-or-ignore semantics.
func (r *categoryRepository) Create(ctx context.Context, category models.MutCategory) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createCategory, category.PageID, category.Title); err != nil {
		log.Err(err).Str("func", "*categoryRepository.Create").Msg("error inserting category")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetByID retrieves one category by primary key.
// Returns [ErrNotFound] if no category exists with that id.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (models.ModuleCategory, error) {
	log := logger.FromContext(ctx)

	var category models.ModuleCategory
	row := r.db.QueryRowContext(ctx, getCategoryByID, id)
	if err := row.Scan(&category.ID, &category.PageID, &category.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ModuleCategory{}, ErrNotFound
		}
		log.Err(err).Str("func", "*categoryRepository.GetByID").Msg("error scanning category row")
		return models.ModuleCategory{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return category, nil
}

// Update overwrites the mutable columns of a category and reports the
// number of affected rows. Zero affected rows is not an error.
func (r *categoryRepository) Update(ctx context.Context, id int64, category models.MutCategory) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCategoryQuery(id, category)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.Update").Msg("error building update query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.Update").Msg("error updating category")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes a category by id and reports the number of affected
// rows. Member modules are removed by the database cascade.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.Delete").Msg("error deleting category")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
