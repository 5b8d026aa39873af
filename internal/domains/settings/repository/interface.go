package repository

import (
	"context"
	"encoding/json"

	"blogpress-backend/internal/domains/settings/model"
)

type RepositoryInterface interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	// Upsert writes the singleton row for key, creating it on first write.
	Upsert(ctx context.Context, key string, value json.RawMessage) (*model.Setting, error)
}
