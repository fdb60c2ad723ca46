package service

import (
	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
)

type Services struct {
	PageService     PageService
	ModuleService   ModuleService
	CategoryService CategoryService
	AuthService     AuthService
	ConfigService   ConfigService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		PageService:     NewPageService(storages.Pages, logger),
		ModuleService:   NewModuleService(storages.Modules, logger),
		CategoryService: NewCategoryService(storages.Categories, logger),
		AuthService:     NewAuthService(storages.Users, cfg.Auth, logger),
		ConfigService:   NewConfigService(storages.Config, logger),
	}
}
