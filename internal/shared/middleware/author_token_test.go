package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLookup struct {
	tokens map[string]string
}

func (f *fakeLookup) LookupAPIToken(_ context.Context, handle string) (string, error) {
	if token, ok := f.tokens[handle]; ok {
		return token, nil
	}
	return "", errors.New("author not found")
}

func authorRouter(lookup TokenLookup, adminToken string) *gin.Engine {
	r := gin.New()
	r.POST("/authors/:handle/posts", AuthorAuth(lookup, adminToken), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"author_handle": c.GetString("author_handle"),
			"is_admin":      c.GetBool("is_admin"),
		})
	})
	return r
}

func TestAuthorAuthValidToken(t *testing.T) {
	r := authorRouter(&fakeLookup{tokens: map[string]string{"alice": "tok-alice"}}, "admintoken")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors/alice/posts", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"author_handle":"alice"`)
}

func TestAuthorAuthWrongAuthorToken(t *testing.T) {
	// Bob's token cannot act on Alice's routes.
	lookup := &fakeLookup{tokens: map[string]string{"alice": "tok-alice", "bob": "tok-bob"}}
	r := authorRouter(lookup, "admintoken")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors/alice/posts", nil)
	req.Header.Set("Authorization", "Bearer tok-bob")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorAuthUnknownHandle(t *testing.T) {
	r := authorRouter(&fakeLookup{tokens: map[string]string{}}, "admintoken")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors/ghost/posts", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorAuthAdminPasses(t *testing.T) {
	r := authorRouter(&fakeLookup{tokens: map[string]string{"alice": "tok-alice"}}, "admintoken")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors/alice/posts", nil)
	req.Header.Set("Authorization", "Bearer admintoken")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}

func TestAuthorAuthNoCredentials(t *testing.T) {
	r := authorRouter(&fakeLookup{tokens: map[string]string{"alice": "tok-alice"}}, "admintoken")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors/alice/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
