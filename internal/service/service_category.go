package service

import (
	"context"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/models"
)

// categoryService is the concrete implementation of CategoryService.
type categoryService struct {
	categoryRepository store.CategoryRepository

	logger *logger.Logger
}

// NewCategoryService constructs a CategoryService wired to the given repository.
func NewCategoryService(categoryRepository store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

// Create stores a new module category.
//
// Returns ErrInvalidDataProvided if PageID is zero or Title is empty.
// Duplicate inserts are silently ignored by the repository.
func (c *categoryService) Create(ctx context.Context, category models.MutCategory) error {
	log := logger.FromContext(ctx)

	if category.PageID == 0 || category.Title == "" {
		log.Error().Any("category", category).Msg("invalid category data provided")
		return ErrInvalidDataProvided
	}

	if err := c.categoryRepository.Create(ctx, category); err != nil {
		log.Err(err).Any("category", category).Msg("category creation ended with error")
		return fmt.Errorf("category creation ended with error: %w", err)
	}

	return nil
}

func (c *categoryService) GetByID(ctx context.Context, id int64) (models.ModuleCategory, error) {
	return c.categoryRepository.GetByID(ctx, id)
}

func (c *categoryService) Update(ctx context.Context, id int64, category models.MutCategory) error {
	log := logger.FromContext(ctx)

	if category.PageID == 0 || category.Title == "" {
		log.Error().Any("category", category).Msg("invalid category data provided")
		return ErrInvalidDataProvided
	}

	if _, err := c.categoryRepository.Update(ctx, id, category); err != nil {
		log.Err(err).Int64("id", id).Msg("category update ended with error")
		return fmt.Errorf("category update ended with error: %w", err)
	}

	return nil
}

func (c *categoryService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := c.categoryRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("category deletion ended with error")
		return fmt.Errorf("category deletion ended with error: %w", err)
	}

	return nil
}
