package repository

import (
	"context"

	"blogpress-backend/internal/domains/post/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error)
	Update(ctx context.Context, slug string, req *model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, slug string) error

	// UpsertBatch writes sheet rows by slug in one transaction. It returns
	// how many rows were written.
	UpsertBatch(ctx context.Context, rows []model.UpsertRow) (int, error)
}
