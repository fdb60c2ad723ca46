package service

import (
	"context"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/models"
)

// configService is the concrete implementation of ConfigService over the
// database-backed key/value configuration table.
type configService struct {
	configRepository store.ConfigRepository

	logger *logger.Logger
}

// NewConfigService constructs a ConfigService wired to the given repository.
func NewConfigService(configRepository store.ConfigRepository, logger *logger.Logger) ConfigService {
	return &configService{
		configRepository: configRepository,
		logger:           logger,
	}
}

func (c *configService) Get(ctx context.Context, key string) (models.ConfigEntry, error) {
	return c.configRepository.Get(ctx, key)
}

func (c *configService) List(ctx context.Context) ([]models.ConfigEntry, error) {
	return c.configRepository.List(ctx)
}

// Put inserts or overwrites a config entry. Returns
// ErrInvalidDataProvided when the key is empty.
func (c *configService) Put(ctx context.Context, entry models.ConfigEntry) error {
	log := logger.FromContext(ctx)

	if entry.Key == "" {
		log.Error().Any("entry", entry).Msg("invalid config data provided")
		return ErrInvalidDataProvided
	}

	if err := c.configRepository.Put(ctx, entry); err != nil {
		log.Err(err).Str("key", entry.Key).Msg("config upsert ended with error")
		return fmt.Errorf("config upsert ended with error: %w", err)
	}

	return nil
}

func (c *configService) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if _, err := c.configRepository.Delete(ctx, key); err != nil {
		log.Err(err).Str("key", key).Msg("config deletion ended with error")
		return fmt.Errorf("config deletion ended with error: %w", err)
	}

	return nil
}
