package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/author/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
)

type fakeRepo struct {
	repository.RepositoryInterface

	authors   map[string]*model.Author
	postCount map[string]int
	countErr  error
	created   *model.Author
	request   *model.JoinRequest
	deleted   []string
}

func (f *fakeRepo) DeleteCascade(_ context.Context, handle string) error {
	if _, ok := f.authors[handle]; !ok {
		return model.ErrAuthorNotFound
	}
	f.deleted = append(f.deleted, handle)
	return nil
}

func (f *fakeRepo) GetByHandle(_ context.Context, handle string) (*model.Author, error) {
	if a, ok := f.authors[handle]; ok {
		return a, nil
	}
	return nil, model.ErrAuthorNotFound
}

func (f *fakeRepo) CountPostsByHandle(_ context.Context, handle string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.postCount[handle], nil
}

func (f *fakeRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	f.created = a
	return a, nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, jr *model.JoinRequest) (*model.JoinRequest, error) {
	jr.Status = model.RequestPending
	f.request = jr
	return jr, nil
}

type fakeToggle struct {
	enabled bool
	err     error
}

func (f *fakeToggle) JoinRequestsEnabled(context.Context) (bool, error) {
	return f.enabled, f.err
}

type fakeCleaner struct {
	cleaned []string
	err     error
}

func (f *fakeCleaner) DeleteAuthorImages(_ context.Context, handle string) error {
	f.cleaned = append(f.cleaned, handle)
	return f.err
}

type recordingInvalidator struct {
	tags  []string
	paths []string
	calls int
}

func (r *recordingInvalidator) Invalidate(_ context.Context, tags, paths []string) revalidate.Result {
	r.calls++
	r.tags = append(r.tags, tags...)
	r.paths = append(r.paths, paths...)
	return revalidate.Result{TagsInvalidated: len(tags), PathsInvalidated: len(paths)}
}

func regular(handle string) *model.Author {
	return &model.Author{
		Handle:     handle,
		Name:       "Name",
		Email:      handle + "@example.com",
		Role:       model.RoleRegular,
		Status:     model.StatusActive,
		Visibility: model.VisibilityVisible,
	}
}

func TestCheckQuotaAdminUnlimited(t *testing.T) {
	admin := regular("root")
	admin.Role = model.RoleAdmin

	repo := &fakeRepo{
		authors:   map[string]*model.Author{"root": admin},
		postCount: map[string]int{"root": 50},
	}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	quota, err := svc.CheckQuota(context.Background(), "root")
	require.NoError(t, err)
	assert.True(t, quota.Unlimited)
	assert.True(t, quota.WithinQuota)
}

func TestCheckQuotaRegularAtCap(t *testing.T) {
	repo := &fakeRepo{
		authors:   map[string]*model.Author{"alice": regular("alice")},
		postCount: map[string]int{"alice": model.MaxPostsPerAuthor},
	}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	quota, err := svc.CheckQuota(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, quota.Unlimited)
	assert.False(t, quota.WithinQuota)
	assert.Zero(t, quota.PostsRemaining)
}

func TestCheckQuotaRegularUnderCap(t *testing.T) {
	repo := &fakeRepo{
		authors:   map[string]*model.Author{"alice": regular("alice")},
		postCount: map[string]int{"alice": 7},
	}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	quota, err := svc.CheckQuota(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, quota.WithinQuota)
	assert.Equal(t, 3, quota.PostsRemaining)
}

func TestCheckQuotaOverCapClampsToZero(t *testing.T) {
	// Sheet syncs can push an author past the cap; remaining never goes
	// negative.
	repo := &fakeRepo{
		authors:   map[string]*model.Author{"alice": regular("alice")},
		postCount: map[string]int{"alice": 14},
	}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	quota, err := svc.CheckQuota(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, quota.WithinQuota)
	assert.Zero(t, quota.PostsRemaining)
}

func TestCheckQuotaCountFailureIsError(t *testing.T) {
	repo := &fakeRepo{
		authors:  map[string]*model.Author{"alice": regular("alice")},
		countErr: errors.New("connection reset"),
	}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	quota, err := svc.CheckQuota(context.Background(), "alice")
	require.Error(t, err)
	assert.Nil(t, quota)
}

func TestCheckQuotaUnknownAuthor(t *testing.T) {
	svc := NewAuthorService(&fakeRepo{authors: map[string]*model.Author{}}, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	_, err := svc.CheckQuota(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestGetByHandleHidesSuspended(t *testing.T) {
	suspended := regular("alice")
	suspended.Status = model.StatusSuspended

	repo := &fakeRepo{authors: map[string]*model.Author{"alice": suspended}}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	_, err := svc.GetByHandle(context.Background(), "alice", false)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	a, err := svc.GetByHandle(context.Background(), "alice", true)
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Handle)
}

func TestCreateGeneratesToken(t *testing.T) {
	repo := &fakeRepo{authors: map[string]*model.Author{}}
	reval := &recordingInvalidator{}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, reval)

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Handle: "Alice",
		Name:   "Alice A",
		Email:  "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", created.Handle)
	assert.Len(t, created.APIToken, 64) // 32 random bytes, hex encoded
	assert.Equal(t, model.RoleRegular, created.Role)
	assert.Contains(t, reval.tags, "author:alice")
	assert.Contains(t, reval.paths, "/alice")
}

func TestCreateRejectsBadHandle(t *testing.T) {
	svc := NewAuthorService(&fakeRepo{}, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	_, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Handle: "Not A Handle!",
		Name:   "X",
		Email:  "x@example.com",
	})
	assert.ErrorIs(t, err, model.ErrInvalidHandle)
}

func TestDeleteCascadesAndCleansImages(t *testing.T) {
	repo := &fakeRepo{authors: map[string]*model.Author{"alice": regular("alice")}}
	cleaner := &fakeCleaner{}
	reval := &recordingInvalidator{}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, cleaner, reval)

	err := svc.Delete(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, repo.deleted)
	assert.Equal(t, []string{"alice"}, cleaner.cleaned)
	assert.Contains(t, reval.tags, "author:alice")
	assert.Contains(t, reval.paths, "/alice")
}

func TestDeleteSucceedsWhenImageCleanupFails(t *testing.T) {
	repo := &fakeRepo{authors: map[string]*model.Author{"alice": regular("alice")}}
	cleaner := &fakeCleaner{err: errors.New("bucket unreachable")}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, cleaner, &recordingInvalidator{})

	err := svc.Delete(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, repo.deleted)
}

func TestDeleteUnknownAuthorSkipsCleanup(t *testing.T) {
	repo := &fakeRepo{authors: map[string]*model.Author{}}
	cleaner := &fakeCleaner{}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, cleaner, &recordingInvalidator{})

	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Empty(t, cleaner.cleaned)
}

func TestJoinDisabled(t *testing.T) {
	svc := NewAuthorService(&fakeRepo{}, &fakeToggle{enabled: false}, &fakeCleaner{}, &recordingInvalidator{})

	_, err := svc.Join(context.Background(), &model.JoinFormRequest{
		Handle: "newbie",
		Name:   "New B",
		Email:  "new@example.com",
	})
	assert.ErrorIs(t, err, model.ErrJoinDisabled)
}

func TestJoinCreatesPendingRequestWithToken(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthorService(repo, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	created, err := svc.Join(context.Background(), &model.JoinFormRequest{
		Handle: "Newbie",
		Name:   "New B",
		Email:  "new@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "newbie", created.Handle)
	assert.Equal(t, model.RequestPending, created.Status)
	assert.Len(t, created.APIToken, 64)
}

func TestJoinRejectsBadEmail(t *testing.T) {
	svc := NewAuthorService(&fakeRepo{}, &fakeToggle{enabled: true}, &fakeCleaner{}, &recordingInvalidator{})

	_, err := svc.Join(context.Background(), &model.JoinFormRequest{
		Handle: "newbie",
		Name:   "New B",
		Email:  "not-an-email",
	})
	assert.Error(t, err)
}
