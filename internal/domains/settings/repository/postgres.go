package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/settings/model"
	"blogpress-backend/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	settingCacheKeyPrefix = "setting:"
	cacheTTL              = 15 * time.Minute
)

func (r *postgresRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	cacheKey := settingCacheKeyPrefix + key

	var s model.Setting
	if found, err := r.cache.Get(ctx, cacheKey, &s); err == nil && found {
		return &s, nil
	}

	err := r.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM settings WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, s, cacheTTL)

	return &s, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, key string, value json.RawMessage) (*model.Setting, error) {
	var s model.Setting
	err := r.pool.QueryRow(ctx, `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()
        RETURNING key, value, updated_at`,
		key, value,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	_ = r.cache.Delete(ctx, settingCacheKeyPrefix+key)

	return &s, nil
}
