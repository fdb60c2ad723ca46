// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/render"
	"github.com/pagesmith/pagesmith/internal/service"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/models"
)

// ─────────────────────────────────────────────
// Fakes: service layer
// ─────────────────────────────────────────────

type fakePageService struct {
	createFn         func(ctx context.Context, page models.MutPage) error
	getByIDFn        func(ctx context.Context, id int64) (models.Page, error)
	listFn           func(ctx context.Context) ([]models.Page, error)
	updateFn         func(ctx context.Context, id int64, page models.MutPage) error
	deleteFn         func(ctx context.Context, id int64) error
	getWithModulesFn func(ctx context.Context, id int64) (models.PageWithModules, error)
	resolveByURLFn   func(ctx context.Context, urlPath string) (models.PageView, error)
}

func (f *fakePageService) Create(ctx context.Context, page models.MutPage) error {
	if f.createFn != nil {
		return f.createFn(ctx, page)
	}
	return nil
}

func (f *fakePageService) GetByID(ctx context.Context, id int64) (models.Page, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return models.Page{}, store.ErrNotFound
}

func (f *fakePageService) List(ctx context.Context) ([]models.Page, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakePageService) Update(ctx context.Context, id int64, page models.MutPage) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, page)
	}
	return nil
}

func (f *fakePageService) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePageService) GetWithModules(ctx context.Context, id int64) (models.PageWithModules, error) {
	if f.getWithModulesFn != nil {
		return f.getWithModulesFn(ctx, id)
	}
	return models.PageWithModules{}, store.ErrNotFound
}

func (f *fakePageService) ResolveByURL(ctx context.Context, urlPath string) (models.PageView, error) {
	if f.resolveByURLFn != nil {
		return f.resolveByURLFn(ctx, urlPath)
	}
	return models.PageView{}, store.ErrNotFound
}

type fakeModuleService struct {
	createFn         func(ctx context.Context, module models.MutModule) error
	getByIDFn        func(ctx context.Context, id int64) (models.Module, error)
	listFn           func(ctx context.Context) ([]models.Module, error)
	listByCategoryFn func(ctx context.Context, categoryID int64) ([]models.Module, error)
	updateFn         func(ctx context.Context, id int64, module models.MutModule) error
	deleteFn         func(ctx context.Context, id int64) error
}

func (f *fakeModuleService) Create(ctx context.Context, module models.MutModule) error {
	if f.createFn != nil {
		return f.createFn(ctx, module)
	}
	return nil
}

func (f *fakeModuleService) GetByID(ctx context.Context, id int64) (models.Module, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return models.Module{}, store.ErrNotFound
}

func (f *fakeModuleService) List(ctx context.Context) ([]models.Module, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeModuleService) ListByCategory(ctx context.Context, categoryID int64) ([]models.Module, error) {
	if f.listByCategoryFn != nil {
		return f.listByCategoryFn(ctx, categoryID)
	}
	return nil, nil
}

func (f *fakeModuleService) Update(ctx context.Context, id int64, module models.MutModule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, module)
	}
	return nil
}

func (f *fakeModuleService) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCategoryService struct {
	createFn  func(ctx context.Context, category models.MutCategory) error
	getByIDFn func(ctx context.Context, id int64) (models.ModuleCategory, error)
	updateFn  func(ctx context.Context, id int64, category models.MutCategory) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (f *fakeCategoryService) Create(ctx context.Context, category models.MutCategory) error {
	if f.createFn != nil {
		return f.createFn(ctx, category)
	}
	return nil
}

func (f *fakeCategoryService) GetByID(ctx context.Context, id int64) (models.ModuleCategory, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return models.ModuleCategory{}, store.ErrNotFound
}

func (f *fakeCategoryService) Update(ctx context.Context, id int64, category models.MutCategory) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, category)
	}
	return nil
}

func (f *fakeCategoryService) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeAuthService struct {
	registerFn     func(ctx context.Context, user models.MutUser) (models.User, error)
	loginFn        func(ctx context.Context, user models.MutUser) (models.Token, bool, error)
	logoutFn       func(ctx context.Context, username string) error
	authenticateFn func(ctx context.Context, tokenString string) (models.User, error)
	getUserFn      func(ctx context.Context, id int64) (models.User, error)
	updateUserFn   func(ctx context.Context, id int64, actor string, user models.MutUser) (models.Token, error)
	deleteUserFn   func(ctx context.Context, id int64) error
}

func (f *fakeAuthService) Register(ctx context.Context, user models.MutUser) (models.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, user)
	}
	return models.User{Username: user.Username}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, user models.MutUser) (models.Token, bool, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, user)
	}
	return models.Token{}, false, service.ErrWrongPassword
}

func (f *fakeAuthService) Logout(ctx context.Context, username string) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx, username)
	}
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, tokenString)
	}
	return models.User{}, service.ErrTokenIsExpiredOrInvalid
}

func (f *fakeAuthService) GetUser(ctx context.Context, id int64) (models.User, error) {
	if f.getUserFn != nil {
		return f.getUserFn(ctx, id)
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeAuthService) UpdateUser(ctx context.Context, id int64, actor string, user models.MutUser) (models.Token, error) {
	if f.updateUserFn != nil {
		return f.updateUserFn(ctx, id, actor, user)
	}
	return models.Token{}, nil
}

func (f *fakeAuthService) DeleteUser(ctx context.Context, id int64) error {
	if f.deleteUserFn != nil {
		return f.deleteUserFn(ctx, id)
	}
	return nil
}

type fakeConfigService struct {
	getFn    func(ctx context.Context, key string) (models.ConfigEntry, error)
	listFn   func(ctx context.Context) ([]models.ConfigEntry, error)
	putFn    func(ctx context.Context, entry models.ConfigEntry) error
	deleteFn func(ctx context.Context, key string) error
}

func (f *fakeConfigService) Get(ctx context.Context, key string) (models.ConfigEntry, error) {
	if f.getFn != nil {
		return f.getFn(ctx, key)
	}
	return models.ConfigEntry{}, store.ErrNotFound
}

func (f *fakeConfigService) List(ctx context.Context) ([]models.ConfigEntry, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeConfigService) Put(ctx context.Context, entry models.ConfigEntry) error {
	if f.putFn != nil {
		return f.putFn(ctx, entry)
	}
	return nil
}

func (f *fakeConfigService) Delete(ctx context.Context, key string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, key)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testServices struct {
	pages      *fakePageService
	modules    *fakeModuleService
	categories *fakeCategoryService
	auth       *fakeAuthService
	config     *fakeConfigService
}

func newTestServices() *testServices {
	return &testServices{
		pages:      &fakePageService{},
		modules:    &fakeModuleService{},
		categories: &fakeCategoryService{},
		auth:       &fakeAuthService{},
		config:     &fakeConfigService{},
	}
}

// newTestRouter builds a full router over fake services and a real
// template registry compiled from the given templates.
func newTestRouter(t *testing.T, svc *testServices, templates map[string]string) *chi.Mux {
	t.Helper()

	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	registry, err := render.NewRegistry(dir, logger.Nop())
	require.NoError(t, err)

	cfg := &config.StructuredConfig{}
	cfg.Templates.NotFound = "not_found"

	handler := NewHandler(&service.Services{
		PageService:     svc.pages,
		ModuleService:   svc.modules,
		CategoryService: svc.categories,
		AuthService:     svc.auth,
		ConfigService:   svc.config,
	}, registry, cfg, logger.Nop())

	return handler.Init()
}

// allowAll makes the fake auth service accept any token.
func (s *testServices) allowAll(username string) {
	s.auth.authenticateFn = func(ctx context.Context, tokenString string) (models.User, error) {
		return models.User{ID: 1, Username: username}, nil
	}
}
