package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/author/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
	"blogpress-backend/internal/shared/utils"
)

type authorService struct {
	repo       repository.RepositoryInterface
	joinToggle JoinToggle
	images     ImageCleaner
	reval      revalidate.Invalidator
}

func NewAuthorService(repo repository.RepositoryInterface, joinToggle JoinToggle, images ImageCleaner, reval revalidate.Invalidator) ServiceInterface {
	return &authorService{
		repo:       repo,
		joinToggle: joinToggle,
		images:     images,
		reval:      reval,
	}
}

func (s *authorService) LookupAPIToken(ctx context.Context, handle string) (string, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return "", model.ErrInvalidHandle
	}
	return s.repo.GetAPIToken(ctx, handle)
}

func (s *authorService) GetByHandle(ctx context.Context, handle string, includeHidden bool) (*model.Author, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	a, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	// Hidden or suspended authors do not exist for the public surface.
	if !includeHidden && (a.Visibility != model.VisibilityVisible || a.Status != model.StatusActive) {
		return nil, model.ErrAuthorNotFound
	}

	return a, nil
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(ctx, filter)
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	handle := utils.NormalizeHandle(req.Handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Email, validation.Required, is.Email),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidName, err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleRegular
	}
	if role != model.RoleRegular && role != model.RoleAdmin {
		return nil, model.ErrInvalidTransition
	}

	token, err := generateAPIToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api token: %w", err)
	}

	created, err := s.repo.Create(ctx, &model.Author{
		Handle:        handle,
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Bio:           req.Bio,
		Website:       req.Website,
		Role:          role,
		Status:        model.StatusActive,
		ListingStatus: model.ListingListed,
		Visibility:    model.VisibilityVisible,
		APIToken:      token,
	})
	if err != nil {
		return nil, err
	}

	s.revalidateAuthor(ctx, handle)

	return created, nil
}

func (s *authorService) Update(ctx context.Context, handle string, req *model.UpdateAuthorRequest) (*model.Author, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	if req.Name == nil && req.Email == nil && req.Bio == nil && req.Website == nil {
		return nil, model.ErrInvalidTransition
	}
	if req.Email != nil {
		if err := validation.Validate(*req.Email, validation.Required, is.Email); err != nil {
			return nil, model.ErrInvalidEmail
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, model.ErrInvalidName
	}

	updated, err := s.repo.Update(ctx, handle, req)
	if err != nil {
		return nil, err
	}

	s.revalidateAuthor(ctx, handle)

	return updated, nil
}

func (s *authorService) Transition(ctx context.Context, handle string, req *model.TransitionRequest) (*model.Author, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	set := 0
	if req.Role != nil {
		set++
		if err := validation.Validate(*req.Role, validation.In(model.RoleRegular, model.RoleAdmin)); err != nil {
			return nil, model.ErrInvalidTransition
		}
	}
	if req.Status != nil {
		set++
		if err := validation.Validate(*req.Status, validation.In(model.StatusActive, model.StatusSuspended)); err != nil {
			return nil, model.ErrInvalidTransition
		}
	}
	if req.ListingStatus != nil {
		set++
		if err := validation.Validate(*req.ListingStatus, validation.In(model.ListingListed, model.ListingUnlisted)); err != nil {
			return nil, model.ErrInvalidTransition
		}
	}
	if req.Visibility != nil {
		set++
		if err := validation.Validate(*req.Visibility, validation.In(model.VisibilityVisible, model.VisibilityHidden)); err != nil {
			return nil, model.ErrInvalidTransition
		}
	}
	if set == 0 {
		return nil, model.ErrInvalidTransition
	}

	updated, err := s.repo.Transition(ctx, handle, req)
	if err != nil {
		return nil, err
	}

	s.revalidateAuthor(ctx, handle)

	return updated, nil
}

func (s *authorService) RegenerateToken(ctx context.Context, handle string) (string, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return "", model.ErrInvalidHandle
	}

	token, err := generateAPIToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate api token: %w", err)
	}

	if err := s.repo.SetAPIToken(ctx, handle, token); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authorService) Delete(ctx context.Context, handle string) error {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return model.ErrInvalidHandle
	}

	if err := s.repo.DeleteCascade(ctx, handle); err != nil {
		return err
	}

	// Blob cleanup is best effort; the rows are already gone.
	if err := s.images.DeleteAuthorImages(ctx, handle); err != nil {
		log.Error().Err(err).Str("handle", handle).Msg("Failed to delete author images")
	}

	// The author's pages and every post listing they appeared in are stale.
	s.reval.Invalidate(ctx,
		[]string{"author:" + handle, "posts"},
		[]string{"/" + handle, "/"},
	)

	return nil
}

// CheckQuota never folds a query failure into a quota answer: callers must be
// able to tell a hard stop from a transient data error.
func (s *authorService) CheckQuota(ctx context.Context, handle string) (*model.QuotaResult, error) {
	handle = utils.NormalizeHandle(handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	a, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if a.Role == model.RoleAdmin {
		return &model.QuotaResult{
			WithinQuota:    true,
			Unlimited:      true,
			PostsRemaining: 0,
		}, nil
	}

	count, err := s.repo.CountPostsByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrDatabaseQuery, err)
	}

	remaining := model.MaxPostsPerAuthor - count
	if remaining < 0 {
		remaining = 0
	}

	return &model.QuotaResult{
		WithinQuota:    remaining > 0,
		Unlimited:      false,
		PostsRemaining: remaining,
	}, nil
}

func (s *authorService) Join(ctx context.Context, req *model.JoinFormRequest) (*model.JoinRequest, error) {
	enabled, err := s.joinToggle.JoinRequestsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrDatabaseQuery, err)
	}
	if !enabled {
		return nil, model.ErrJoinDisabled
	}

	handle := utils.NormalizeHandle(req.Handle)
	if err := utils.ValidateHandle(handle); err != nil {
		return nil, model.ErrInvalidHandle
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Website, validation.By(optionalURL)),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidName, err)
	}

	token, err := generateAPIToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api token: %w", err)
	}

	return s.repo.CreateRequest(ctx, &model.JoinRequest{
		Handle:   handle,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Bio:      req.Bio,
		Website:  req.Website,
		APIToken: token,
	})
}

func (s *authorService) ListRequests(ctx context.Context, status string) ([]model.JoinRequest, error) {
	if status != "" {
		if err := validation.Validate(status,
			validation.In(model.RequestPending, model.RequestApproved, model.RequestRejected),
		); err != nil {
			return nil, model.ErrInvalidTransition
		}
	}
	return s.repo.ListRequests(ctx, status)
}

func (s *authorService) ApproveRequest(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrRequestNotFound
	}

	created, err := s.repo.ApproveRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	s.revalidateAuthor(ctx, created.Handle)

	return created, nil
}

func (s *authorService) RejectRequest(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrRequestNotFound
	}
	return s.repo.RejectRequest(ctx, id)
}

func (s *authorService) revalidateAuthor(ctx context.Context, handle string) {
	s.reval.Invalidate(ctx,
		[]string{"author:" + handle, "authors"},
		[]string{"/" + handle, "/"},
	)
}

func generateAPIToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func optionalURL(value interface{}) error {
	ptr, ok := value.(*string)
	if !ok || ptr == nil || *ptr == "" {
		return nil
	}
	return validation.Validate(*ptr, is.URL)
}
