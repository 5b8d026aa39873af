package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/post/model"
	"blogpress-backend/internal/domains/post/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
	"blogpress-backend/internal/shared/utils"
)

type postService struct {
	repo  repository.RepositoryInterface
	quota QuotaChecker
	reval revalidate.Invalidator
}

func NewPostService(repo repository.RepositoryInterface, quota QuotaChecker, reval revalidate.Invalidator) ServiceInterface {
	return &postService{
		repo:  repo,
		quota: quota,
		reval: reval,
	}
}

func (s *postService) GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*model.Post, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !includeUnpublished && !p.Published {
		return nil, model.ErrPostNotFound
	}

	return p, nil
}

func (s *postService) List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(ctx, filter)
}

func (s *postService) Create(ctx context.Context, authorHandle string, req *model.CreatePostRequest) (*model.Post, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidTitle, err)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	// Quota gate. A lookup failure is an error, never silently unlimited.
	quota, err := s.quota.CheckQuota(ctx, authorHandle)
	if err != nil {
		if errors.Is(err, authormodel.ErrAuthorNotFound) {
			return nil, model.ErrAuthorUnknown
		}
		return nil, err
	}
	if !quota.WithinQuota {
		return nil, model.ErrQuotaExceeded
	}

	created, err := s.repo.Create(ctx, &model.Post{
		Slug:         slug,
		Title:        strings.TrimSpace(req.Title),
		AuthorHandle: authorHandle,
		Content:      req.Content,
		Excerpt:      req.Excerpt,
		CoverImage:   req.CoverImage,
		Published:    req.Published,
		Featured:     req.Featured,
	})
	if err != nil {
		return nil, err
	}

	s.revalidatePost(ctx, created)

	return created, nil
}

func (s *postService) Update(ctx context.Context, actor Actor, slug string, req *model.UpdatePostRequest) (*model.Post, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && existing.AuthorHandle != actor.Handle {
		return nil, model.ErrNotPostOwner
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, model.ErrInvalidTitle
	}
	if req.Content != nil && *req.Content == "" {
		return nil, model.ErrInvalidContent
	}

	updated, err := s.repo.Update(ctx, slug, req)
	if err != nil {
		return nil, err
	}

	s.revalidatePost(ctx, updated)

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, actor Actor, slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && existing.AuthorHandle != actor.Handle {
		return model.ErrNotPostOwner
	}

	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}

	s.revalidatePost(ctx, existing)

	return nil
}

func (s *postService) UpsertFromSheet(ctx context.Context, rows []model.UpsertRow) (int, error) {
	for i := range rows {
		rows[i].Slug = strings.TrimSpace(strings.ToLower(rows[i].Slug))
		if err := validateSlug(rows[i].Slug); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	written, err := s.repo.UpsertBatch(ctx, rows)
	if err != nil {
		return 0, err
	}

	s.reval.Invalidate(ctx, []string{"posts"}, []string{"/"})

	return written, nil
}

func (s *postService) ResolveAuthorHandle(ctx context.Context, slug string) (string, error) {
	p, err := s.GetBySlug(ctx, slug, false)
	if err != nil {
		return "", err
	}
	return p.AuthorHandle, nil
}

func (s *postService) revalidatePost(ctx context.Context, p *model.Post) {
	s.reval.Invalidate(ctx,
		[]string{"post:" + p.Slug, "posts", "author:" + p.AuthorHandle},
		[]string{"/" + p.AuthorHandle + "/" + p.Slug, "/" + p.AuthorHandle, "/"},
	)
}

func validateSlug(slug string) error {
	if err := utils.ValidateSlug(slug); err != nil {
		return model.ErrInvalidSlug
	}
	return nil
}
