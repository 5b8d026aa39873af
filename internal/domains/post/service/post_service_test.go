package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/post/model"
	"blogpress-backend/internal/domains/post/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
)

type fakeRepo struct {
	repository.RepositoryInterface

	posts    map[string]*model.Post
	created  *model.Post
	deleted  []string
	upserted []model.UpsertRow
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*model.Post, error) {
	if p, ok := f.posts[slug]; ok {
		return p, nil
	}
	return nil, model.ErrPostNotFound
}

func (f *fakeRepo) Create(_ context.Context, p *model.Post) (*model.Post, error) {
	if _, ok := f.posts[p.Slug]; ok {
		return nil, model.ErrDuplicateSlug
	}
	f.created = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, slug string, _ *model.UpdatePostRequest) (*model.Post, error) {
	if p, ok := f.posts[slug]; ok {
		return p, nil
	}
	return nil, model.ErrPostNotFound
}

func (f *fakeRepo) Delete(_ context.Context, slug string) error {
	f.deleted = append(f.deleted, slug)
	return nil
}

func (f *fakeRepo) UpsertBatch(_ context.Context, rows []model.UpsertRow) (int, error) {
	f.upserted = rows
	return len(rows), nil
}

type fakeQuota struct {
	result *authormodel.QuotaResult
	err    error
}

func (f *fakeQuota) CheckQuota(context.Context, string) (*authormodel.QuotaResult, error) {
	return f.result, f.err
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

func withinQuota() *fakeQuota {
	return &fakeQuota{result: &authormodel.QuotaResult{WithinQuota: true, PostsRemaining: 5}}
}

func TestCreateWithinQuota(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{}}
	reval := &recordingInvalidator{}
	svc := NewPostService(repo, withinQuota(), reval)

	created, err := svc.Create(context.Background(), "alice", &model.CreatePostRequest{
		Title:   "My First Post",
		Content: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, "alice", created.AuthorHandle)
	assert.Contains(t, reval.tags, "post:my-first-post")
	assert.Contains(t, reval.tags, "posts")
	assert.Contains(t, reval.paths, "/alice/my-first-post")
	assert.Contains(t, reval.paths, "/alice")
	assert.Contains(t, reval.paths, "/")
}

func TestCreateQuotaExceeded(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{}}
	quota := &fakeQuota{result: &authormodel.QuotaResult{WithinQuota: false}}
	svc := NewPostService(repo, quota, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "alice", &model.CreatePostRequest{
		Title:   "One Too Many",
		Content: "x",
	})
	assert.ErrorIs(t, err, model.ErrQuotaExceeded)
	assert.Nil(t, repo.created, "nothing may be written past the quota")
}

func TestCreateUnknownAuthor(t *testing.T) {
	quota := &fakeQuota{err: authormodel.ErrAuthorNotFound}
	svc := NewPostService(&fakeRepo{posts: map[string]*model.Post{}}, quota, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "ghost", &model.CreatePostRequest{
		Title:   "Orphan",
		Content: "x",
	})
	assert.ErrorIs(t, err, model.ErrAuthorUnknown)
}

func TestCreateExplicitSlugDuplicate(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{
		"taken": {Slug: "taken", AuthorHandle: "bob"},
	}}
	svc := NewPostService(repo, withinQuota(), &recordingInvalidator{})

	_, err := svc.Create(context.Background(), "alice", &model.CreatePostRequest{
		Slug:    "taken",
		Title:   "T",
		Content: "x",
	})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestUpdateOwnershipEnforced(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{
		"alices-post": {Slug: "alices-post", AuthorHandle: "alice", Published: true},
	}}
	svc := NewPostService(repo, withinQuota(), &recordingInvalidator{})

	title := "New Title"

	_, err := svc.Update(context.Background(), Actor{Handle: "bob"}, "alices-post", &model.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrNotPostOwner)

	_, err = svc.Update(context.Background(), Actor{Handle: "alice"}, "alices-post", &model.UpdatePostRequest{Title: &title})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), Actor{IsAdmin: true}, "alices-post", &model.UpdatePostRequest{Title: &title})
	assert.NoError(t, err)
}

func TestDeleteOwnershipEnforced(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{
		"alices-post": {Slug: "alices-post", AuthorHandle: "alice", Published: true},
	}}
	svc := NewPostService(repo, withinQuota(), &recordingInvalidator{})

	err := svc.Delete(context.Background(), Actor{Handle: "bob"}, "alices-post")
	assert.ErrorIs(t, err, model.ErrNotPostOwner)
	assert.Empty(t, repo.deleted)

	err = svc.Delete(context.Background(), Actor{IsAdmin: true}, "alices-post")
	assert.NoError(t, err)
	assert.Equal(t, []string{"alices-post"}, repo.deleted)
}

func TestGetBySlugHidesUnpublished(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{
		"draft": {Slug: "draft", AuthorHandle: "alice", Published: false},
	}}
	svc := NewPostService(repo, withinQuota(), &recordingInvalidator{})

	_, err := svc.GetBySlug(context.Background(), "draft", false)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	p, err := svc.GetBySlug(context.Background(), "draft", true)
	require.NoError(t, err)
	assert.Equal(t, "draft", p.Slug)
}

func TestUpsertFromSheetNormalizesSlugs(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{}}
	reval := &recordingInvalidator{}
	svc := NewPostService(repo, withinQuota(), reval)

	n, err := svc.UpsertFromSheet(context.Background(), []model.UpsertRow{
		{Slug: " Hello-World ", Title: "Hello", Author: "alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "hello-world", repo.upserted[0].Slug)
	assert.Contains(t, reval.tags, "posts")
}

func TestUpsertFromSheetRejectsBadSlug(t *testing.T) {
	repo := &fakeRepo{posts: map[string]*model.Post{}}
	svc := NewPostService(repo, withinQuota(), &recordingInvalidator{})

	_, err := svc.UpsertFromSheet(context.Background(), []model.UpsertRow{
		{Slug: "ok-slug", Title: "A", Author: "alice"},
		{Slug: "bad slug!", Title: "B", Author: "alice"},
	})
	assert.ErrorIs(t, err, model.ErrInvalidSlug)
	assert.Nil(t, repo.upserted, "a bad row fails the whole batch")
}
