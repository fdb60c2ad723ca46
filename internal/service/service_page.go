package service

import (
	"context"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/models"
)

// pageService is the concrete implementation of PageService.
// It validates input, delegates persistence to a PageRepository and
// composes render-ready views for the display route.
type pageService struct {
	pageRepository store.PageRepository

	logger *logger.Logger
}

// NewPageService constructs a PageService wired to the given repository.
func NewPageService(pageRepository store.PageRepository, logger *logger.Logger) PageService {
	return &pageService{
		pageRepository: pageRepository,
		logger:         logger,
	}
}

// Create stores a new page.
//
// Returns ErrInvalidDataProvided if URLPath or Title is empty. Creating
// a page whose url path already exists is a silent no-op, matching the
// repository's insert-or-ignore semantics.
func (p *pageService) Create(ctx context.Context, page models.MutPage) error {
	log := logger.FromContext(ctx)

	if page.URLPath == "" || page.Title == "" {
		log.Error().Any("page", page).Msg("invalid page data provided")
		return ErrInvalidDataProvided
	}

	if err := p.pageRepository.Create(ctx, page); err != nil {
		log.Err(err).Any("page", page).Msg("page creation ended with error")
		return fmt.Errorf("page creation ended with error: %w", err)
	}

	return nil
}

func (p *pageService) GetByID(ctx context.Context, id int64) (models.Page, error) {
	return p.pageRepository.GetByID(ctx, id)
}

func (p *pageService) List(ctx context.Context) ([]models.Page, error) {
	return p.pageRepository.List(ctx)
}

func (p *pageService) Update(ctx context.Context, id int64, page models.MutPage) error {
	log := logger.FromContext(ctx)

	if page.URLPath == "" || page.Title == "" {
		log.Error().Any("page", page).Msg("invalid page data provided")
		return ErrInvalidDataProvided
	}

	if _, err := p.pageRepository.Update(ctx, id, page); err != nil {
		log.Err(err).Int64("id", id).Msg("page update ended with error")
		return fmt.Errorf("page update ended with error: %w", err)
	}

	return nil
}

func (p *pageService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := p.pageRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("page deletion ended with error")
		return fmt.Errorf("page deletion ended with error: %w", err)
	}

	return nil
}

// GetWithModules returns the page together with every module attached to
// it, flat and categorized alike, for the JSON join endpoint.
func (p *pageService) GetWithModules(ctx context.Context, id int64) (models.PageWithModules, error) {
	page, modules, err := p.pageRepository.GetWithModules(ctx, id)
	if err != nil {
		return models.PageWithModules{}, err
	}

	return models.PageWithModules{Page: page, Modules: modules}, nil
}

// ResolveByURL resolves a url path into a render-ready page view.
//
// The repository join supplies the page row, its flat modules and its
// categorized module groups; composition into fields and array fields
// happens in memory. A missing url path propagates store.ErrNotFound so
// the display route can fall back to the not-found template.
func (p *pageService) ResolveByURL(ctx context.Context, urlPath string) (models.PageView, error) {
	log := logger.FromContext(ctx)

	page, flat, groups, err := p.pageRepository.GetByURL(ctx, urlPath)
	if err != nil {
		log.Err(err).Str("url_path", urlPath).Msg("page resolution ended with error")
		return models.PageView{}, err
	}

	return ComposePageView(page, flat, groups), nil
}
