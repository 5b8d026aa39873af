package repository

import (
	"context"

	"blogpress-backend/internal/domains/comment/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	ListByPost(ctx context.Context, postSlug string, limit, offset int) ([]model.Comment, int64, error)
}
