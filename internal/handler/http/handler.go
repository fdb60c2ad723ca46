package http

import (
	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/render"
	"github.com/pagesmith/pagesmith/internal/service"
)

type Handler struct {
	services *service.Services
	registry *render.Registry

	// notFoundTemplate is rendered with a 404 status when the display
	// route cannot resolve a url path to a page.
	notFoundTemplate string

	// jsonConfigPath is the config file exposed by the localConfig
	// endpoints; empty when the server runs without a config file.
	jsonConfigPath string

	logger *logger.Logger
}

func NewHandler(services *service.Services, registry *render.Registry, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:         services,
		registry:         registry,
		notFoundTemplate: cfg.Templates.NotFound,
		jsonConfigPath:   cfg.JSONFilePath,
		logger:           logger,
	}
}
