package repository

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/author/model"
)

// RepositoryInterface is the content-store client for authors and join
// requests.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByHandle(ctx context.Context, handle string) (*model.Author, error)
	GetAPIToken(ctx context.Context, handle string) (string, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, handle string, req *model.UpdateAuthorRequest) (*model.Author, error)
	Transition(ctx context.Context, handle string, req *model.TransitionRequest) (*model.Author, error)
	SetAPIToken(ctx context.Context, handle, token string) error

	// DeleteCascade removes the author plus dependent posts, their comments,
	// and preferences inside one transaction.
	DeleteCascade(ctx context.Context, handle string) error

	// CountPostsByHandle backs the quota check.
	CountPostsByHandle(ctx context.Context, handle string) (int, error)

	// Join requests
	CreateRequest(ctx context.Context, r *model.JoinRequest) (*model.JoinRequest, error)
	ListRequests(ctx context.Context, status string) ([]model.JoinRequest, error)
	GetRequestByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error)
	RejectRequest(ctx context.Context, id uuid.UUID) error

	// ApproveRequest flips a pending request to approved and creates the
	// author from it (consuming the pre-generated api token) in one
	// transaction.
	ApproveRequest(ctx context.Context, id uuid.UUID) (*model.Author, error)
}
