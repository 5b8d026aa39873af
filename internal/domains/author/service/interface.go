package service

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/author/model"
)

type ServiceInterface interface {
	// LookupAPIToken backs the author-token middleware.
	LookupAPIToken(ctx context.Context, handle string) (string, error)

	GetByHandle(ctx context.Context, handle string, includeHidden bool) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	Update(ctx context.Context, handle string, req *model.UpdateAuthorRequest) (*model.Author, error)
	Transition(ctx context.Context, handle string, req *model.TransitionRequest) (*model.Author, error)
	RegenerateToken(ctx context.Context, handle string) (string, error)
	Delete(ctx context.Context, handle string) error

	CheckQuota(ctx context.Context, handle string) (*model.QuotaResult, error)

	Join(ctx context.Context, req *model.JoinFormRequest) (*model.JoinRequest, error)
	ListRequests(ctx context.Context, status string) ([]model.JoinRequest, error)
	ApproveRequest(ctx context.Context, id uuid.UUID) (*model.Author, error)
	RejectRequest(ctx context.Context, id uuid.UUID) error
}

// JoinToggle reads whether the public join form is accepting requests.
// Implemented by the settings service.
type JoinToggle interface {
	JoinRequestsEnabled(ctx context.Context) (bool, error)
}

// ImageCleaner removes an author's stored images once the author is gone.
// Implemented by the media service.
type ImageCleaner interface {
	DeleteAuthorImages(ctx context.Context, handle string) error
}
