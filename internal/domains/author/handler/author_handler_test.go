package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/author/service"
	"blogpress-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	service.ServiceInterface

	quota      *model.QuotaResult
	quotaErr   error
	joined     *model.JoinRequest
	joinErr    error
	listFilter *model.AuthorFilter
}

func (f *fakeService) List(_ context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	f.listFilter = &filter
	return nil, 0, nil
}

func (f *fakeService) CheckQuota(_ context.Context, _ string) (*model.QuotaResult, error) {
	return f.quota, f.quotaErr
}

func (f *fakeService) Join(_ context.Context, req *model.JoinFormRequest) (*model.JoinRequest, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return f.joined, nil
}

func newRouter(svc service.ServiceInterface) *gin.Engine {
	h := NewAuthorHandler(svc)
	r := gin.New()
	r.GET("/authors/:handle/quota", h.Quota)
	r.POST("/join", h.Join)
	return r
}

func TestQuotaResponseShape(t *testing.T) {
	svc := &fakeService{quota: &model.QuotaResult{WithinQuota: true, PostsRemaining: 3}}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authors/alice/quota", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			WithinQuota    bool `json:"withinQuota"`
			Unlimited      bool `json:"unlimited"`
			PostsRemaining int  `json:"postsRemaining"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.True(t, body.Data.WithinQuota)
	assert.False(t, body.Data.Unlimited)
	assert.Equal(t, 3, body.Data.PostsRemaining)
}

func TestQuotaUnknownAuthor(t *testing.T) {
	svc := &fakeService{quotaErr: model.ErrAuthorNotFound}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authors/ghost/quota", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "AUTHOR_NOT_FOUND")
}

func TestJoinDisabledStatus(t *testing.T) {
	svc := &fakeService{joinErr: model.ErrJoinDisabled}
	r := newRouter(svc)

	payload, _ := json.Marshal(gin.H{"handle": "newbie", "name": "New B", "email": "new@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/join", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "JOIN_DISABLED")
}

func TestJoinDoesNotLeakToken(t *testing.T) {
	svc := &fakeService{joined: &model.JoinRequest{
		Handle:   "newbie",
		Status:   model.RequestPending,
		APIToken: "super-secret-token",
	}}
	r := newRouter(svc)

	payload, _ := json.Marshal(gin.H{"handle": "newbie", "name": "New B", "email": "new@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/join", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "super-secret-token")
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func listRouter(svc service.ServiceInterface, adminToken string) *gin.Engine {
	h := NewAuthorHandler(svc)
	r := gin.New()
	r.GET("/authors", middleware.AdminRecognition(adminToken), h.List)
	return r
}

func TestListAdminTokenWidensView(t *testing.T) {
	svc := &fakeService{}
	r := listRouter(svc, "topsecret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authors", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.listFilter)
	assert.True(t, svc.listFilter.IncludeHidden, "admin credentials expose hidden authors")
}

func TestListAnonymousStaysPublic(t *testing.T) {
	svc := &fakeService{}
	r := listRouter(svc, "topsecret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authors", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.listFilter)
	assert.False(t, svc.listFilter.IncludeHidden)
}

func TestJoinMalformedBody(t *testing.T) {
	r := newRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/join", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
