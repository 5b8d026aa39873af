package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"blogpress-backend/internal/domains/comment/model"
	"blogpress-backend/internal/domains/comment/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
)

type ServiceInterface interface {
	Create(ctx context.Context, postSlug string, req *model.CreateCommentRequest) (*model.Comment, error)
	ListByPost(ctx context.Context, postSlug string, limit, offset int) ([]model.Comment, int64, error)
}

// PostResolver confirms the parent post exists and resolves its author for
// path invalidation.
type PostResolver interface {
	ResolveAuthorHandle(ctx context.Context, slug string) (string, error)
}

type commentService struct {
	repo  repository.RepositoryInterface
	posts PostResolver
	reval revalidate.Invalidator
}

func NewCommentService(repo repository.RepositoryInterface, posts PostResolver, reval revalidate.Invalidator) ServiceInterface {
	return &commentService{
		repo:  repo,
		posts: posts,
		reval: reval,
	}
}

func (s *commentService) Create(ctx context.Context, postSlug string, req *model.CreateCommentRequest) (*model.Comment, error) {
	authorHandle, err := s.posts.ResolveAuthorHandle(ctx, postSlug)
	if err != nil {
		return nil, model.ErrPostNotFound
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.AuthorName, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.AuthorEmail, validation.Required, is.Email),
		validation.Field(&req.Content, validation.Required, validation.Length(1, model.MaxCommentLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidContent, err)
	}

	created, err := s.repo.Create(ctx, &model.Comment{
		PostSlug:    postSlug,
		AuthorName:  strings.TrimSpace(req.AuthorName),
		AuthorEmail: strings.ToLower(strings.TrimSpace(req.AuthorEmail)),
		Content:     strings.TrimSpace(req.Content),
	})
	if err != nil {
		return nil, err
	}

	// Only the post page shows comments; listings are untouched.
	s.reval.Invalidate(ctx,
		[]string{"post:" + postSlug},
		[]string{"/" + authorHandle + "/" + postSlug},
	)

	return created, nil
}

func (s *commentService) ListByPost(ctx context.Context, postSlug string, limit, offset int) ([]model.Comment, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.posts.ResolveAuthorHandle(ctx, postSlug); err != nil {
		return nil, 0, model.ErrPostNotFound
	}

	return s.repo.ListByPost(ctx, postSlug, limit, offset)
}
