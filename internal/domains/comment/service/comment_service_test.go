package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpress-backend/internal/domains/comment/model"
	"blogpress-backend/internal/infrastructure/revalidate"
)

type fakeRepo struct {
	created  *model.Comment
	comments []model.Comment
}

func (f *fakeRepo) Create(_ context.Context, c *model.Comment) (*model.Comment, error) {
	f.created = c
	return c, nil
}

func (f *fakeRepo) ListByPost(_ context.Context, _ string, _, _ int) ([]model.Comment, int64, error) {
	return f.comments, int64(len(f.comments)), nil
}

type fakeResolver struct {
	authors map[string]string
}

func (f *fakeResolver) ResolveAuthorHandle(_ context.Context, slug string) (string, error) {
	if h, ok := f.authors[slug]; ok {
		return h, nil
	}
	return "", errors.New("not found")
}

type recordingInvalidator struct {
	tags  []string
	paths []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, tags, paths []string) revalidate.Result {
	r.tags = append(r.tags, tags...)
	r.paths = append(r.paths, paths...)
	return revalidate.Result{}
}

func TestCreateComment(t *testing.T) {
	repo := &fakeRepo{}
	reval := &recordingInvalidator{}
	svc := NewCommentService(repo, &fakeResolver{authors: map[string]string{"hello": "alice"}}, reval)

	created, err := svc.Create(context.Background(), "hello", &model.CreateCommentRequest{
		AuthorName:  "  Reader One ",
		AuthorEmail: "Reader@Example.com",
		Content:     "Nice post!",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reader One", created.AuthorName)
	assert.Equal(t, "reader@example.com", created.AuthorEmail)
	assert.Equal(t, "hello", created.PostSlug)
	assert.Equal(t, []string{"post:hello"}, reval.tags)
	assert.Equal(t, []string{"/alice/hello"}, reval.paths)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewCommentService(repo, &fakeResolver{authors: map[string]string{}}, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "ghost", &model.CreateCommentRequest{
		AuthorName:  "Reader",
		AuthorEmail: "reader@example.com",
		Content:     "hi",
	})
	assert.ErrorIs(t, err, model.ErrPostNotFound)
	assert.Nil(t, repo.created)
}

func TestCreateCommentTooLong(t *testing.T) {
	svc := NewCommentService(&fakeRepo{}, &fakeResolver{authors: map[string]string{"hello": "alice"}}, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "hello", &model.CreateCommentRequest{
		AuthorName:  "Reader",
		AuthorEmail: "reader@example.com",
		Content:     strings.Repeat("x", model.MaxCommentLength+1),
	})
	assert.Error(t, err)
}

func TestCreateCommentBadEmail(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewCommentService(repo, &fakeResolver{authors: map[string]string{"hello": "alice"}}, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "hello", &model.CreateCommentRequest{
		AuthorName:  "Reader",
		AuthorEmail: "not-an-email",
		Content:     "hi",
	})
	assert.ErrorIs(t, err, model.ErrInvalidContent)
	assert.Nil(t, repo.created)
}

func TestCreateCommentAtLimit(t *testing.T) {
	svc := NewCommentService(&fakeRepo{}, &fakeResolver{authors: map[string]string{"hello": "alice"}}, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "hello", &model.CreateCommentRequest{
		AuthorName:  "Reader",
		AuthorEmail: "reader@example.com",
		Content:     strings.Repeat("x", model.MaxCommentLength),
	})
	assert.NoError(t, err)
}

func TestListByPostUnknownPost(t *testing.T) {
	svc := NewCommentService(&fakeRepo{}, &fakeResolver{authors: map[string]string{}}, &recordingInvalidator{})

	_, _, err := svc.ListByPost(context.Background(), "ghost", 10, 0)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}
