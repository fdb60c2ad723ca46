package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// configRepository is the PostgreSQL-backed implementation of
// [ConfigRepository] over the web_config key/value table.
type configRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConfigRepository constructs a [ConfigRepository] backed by the
// provided database connection and logger.
func NewConfigRepository(db *DB, logger *logger.Logger) ConfigRepository {
	logger.Debug().Msg("creating config repository")
	return &configRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves one config entry by key.
// Returns [ErrNotFound] when the key is absent.
func (r *configRepository) Get(ctx context.Context, key string) (models.ConfigEntry, error) {
	log := logger.FromContext(ctx)

	var entry models.ConfigEntry
	row := r.db.QueryRowContext(ctx, getConfigEntry, key)
	if err := row.Scan(&entry.Key, &entry.Value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ConfigEntry{}, ErrNotFound
		}
		log.Err(err).Str("func", "*configRepository.Get").Msg("error scanning config row")
		return models.ConfigEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// List returns every config entry in key order.
func (r *configRepository) List(ctx context.Context) ([]models.ConfigEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listConfigEntries)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.List").Msg("error querying config entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ConfigEntry, 0)
	for rows.Next() {
		var entry models.ConfigEntry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			log.Err(err).Str("func", "*configRepository.List").Msg("error scanning config rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Put inserts or overwrites a config entry (upsert by key).
func (r *configRepository) Put(ctx context.Context, entry models.ConfigEntry) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, putConfigEntry, entry.Key, entry.Value); err != nil {
		log.Err(err).Str("func", "*configRepository.Put").Msg("error upserting config entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes a config entry by key and reports the number of
// affected rows.
func (r *configRepository) Delete(ctx context.Context, key string) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteConfigEntry, key)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.Delete").Msg("error deleting config entry")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
