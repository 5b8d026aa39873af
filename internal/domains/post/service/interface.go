package service

import (
	"context"

	authormodel "blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/post/model"
)

type ServiceInterface interface {
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*model.Post, error)
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error)
	Create(ctx context.Context, authorHandle string, req *model.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, actor Actor, slug string, req *model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, actor Actor, slug string) error

	// UpsertFromSheet applies parsed sheet rows by slug.
	UpsertFromSheet(ctx context.Context, rows []model.UpsertRow) (int, error)

	// ResolveAuthorHandle returns the owning author of a published post.
	ResolveAuthorHandle(ctx context.Context, slug string) (string, error)
}

// Actor identifies who is performing a mutation. Admins bypass ownership.
type Actor struct {
	Handle  string
	IsAdmin bool
}

// QuotaChecker answers whether an author may create another post.
// Implemented by the author service.
type QuotaChecker interface {
	CheckQuota(ctx context.Context, handle string) (*authormodel.QuotaResult, error)
}
