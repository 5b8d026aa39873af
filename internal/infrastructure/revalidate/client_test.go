package revalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu       sync.Mutex
	patterns []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	return nil
}
func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newTestClient(baseURL string, dataCache *fakeCache) *Client {
	return &Client{
		baseURL:    baseURL,
		secret:     "s3cret",
		httpClient: &http.Client{Timeout: time.Second},
		dataCache:  dataCache,
	}
}

func TestInvalidateTagsBeforePaths(t *testing.T) {
	var mu sync.Mutex
	var order []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req invalidateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s3cret", req.Secret)

		mu.Lock()
		if req.Tag != "" {
			order = append(order, "tag:"+req.Tag)
		} else {
			order = append(order, "path:"+req.Path)
		}
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeCache{})
	res := c.Invalidate(context.Background(),
		[]string{"post:hello", "posts"},
		[]string{"/alice/hello", "/"},
	)

	assert.Equal(t, 2, res.TagsInvalidated)
	assert.Equal(t, 2, res.PathsInvalidated)
	assert.Zero(t, res.Failed)

	require.Len(t, order, 4)
	assert.Equal(t, []string{"tag:post:hello", "tag:posts", "path:/alice/hello", "path:/"}, order)
}

func TestInvalidateContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req invalidateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Tag == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeCache{})
	res := c.Invalidate(context.Background(), []string{"bad", "good"}, []string{"/"})

	assert.Equal(t, 1, res.TagsInvalidated)
	assert.Equal(t, 1, res.PathsInvalidated)
	assert.Equal(t, 1, res.Failed)
}

func TestInvalidateFlushesDataCachePerTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cache := &fakeCache{}
	c := newTestClient(srv.URL, cache)
	c.Invalidate(context.Background(), []string{"author:alice", "posts"}, nil)

	assert.Equal(t, []string{"author:alice*", "posts*"}, cache.patterns)
}

func TestInvalidateUnreachableRenderer(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", &fakeCache{})
	res := c.Invalidate(context.Background(), []string{"a"}, []string{"/"})

	assert.Zero(t, res.TagsInvalidated)
	assert.Zero(t, res.PathsInvalidated)
	assert.Equal(t, 2, res.Failed)
}
