package service

import (
	"context"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/models"
)

// moduleService is the concrete implementation of ModuleService.
type moduleService struct {
	moduleRepository store.ModuleRepository

	logger *logger.Logger
}

// NewModuleService constructs a ModuleService wired to the given repository.
func NewModuleService(moduleRepository store.ModuleRepository, logger *logger.Logger) ModuleService {
	return &moduleService{
		moduleRepository: moduleRepository,
		logger:           logger,
	}
}

// Create stores a new module.
//
// Returns ErrInvalidDataProvided if PageID is zero or Title is empty.
// Duplicate inserts are silently ignored by the repository.
func (m *moduleService) Create(ctx context.Context, module models.MutModule) error {
	log := logger.FromContext(ctx)

	if module.PageID == 0 || module.Title == "" {
		log.Error().Any("module", module).Msg("invalid module data provided")
		return ErrInvalidDataProvided
	}

	if err := m.moduleRepository.Create(ctx, module); err != nil {
		log.Err(err).Any("module", module).Msg("module creation ended with error")
		return fmt.Errorf("module creation ended with error: %w", err)
	}

	return nil
}

func (m *moduleService) GetByID(ctx context.Context, id int64) (models.Module, error) {
	return m.moduleRepository.GetByID(ctx, id)
}

// List returns flat modules only; categorized modules are reachable
// through ListByCategory or the page join.
func (m *moduleService) List(ctx context.Context) ([]models.Module, error) {
	return m.moduleRepository.List(ctx)
}

func (m *moduleService) ListByCategory(ctx context.Context, categoryID int64) ([]models.Module, error) {
	return m.moduleRepository.ListByCategory(ctx, categoryID)
}

func (m *moduleService) Update(ctx context.Context, id int64, module models.MutModule) error {
	log := logger.FromContext(ctx)

	if module.PageID == 0 || module.Title == "" {
		log.Error().Any("module", module).Msg("invalid module data provided")
		return ErrInvalidDataProvided
	}

	if _, err := m.moduleRepository.Update(ctx, id, module); err != nil {
		log.Err(err).Int64("id", id).Msg("module update ended with error")
		return fmt.Errorf("module update ended with error: %w", err)
	}

	return nil
}

func (m *moduleService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := m.moduleRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("module deletion ended with error")
		return fmt.Errorf("module deletion ended with error: %w", err)
	}

	return nil
}
