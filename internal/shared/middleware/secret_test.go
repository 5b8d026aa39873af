package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secretRouter(adminToken string, secrets ...string) *gin.Engine {
	r := gin.New()
	r.POST("/sync", SecretAuth(adminToken, secrets...), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{
			"is_admin": c.GetBool("is_admin"),
			"body_len": len(body),
		})
	})
	return r
}

func TestSecretAuthHeader(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("X-Secret", "hook-secret")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecretAuthQueryParam(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync?secret=hook-secret", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecretAuthBodyField(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	payload := []byte(`{"secret":"hook-secret","csv":"Settings,type,value\n"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The body must survive the peek so the handler can still bind it.
	assert.Contains(t, w.Body.String(), `"body_len":`+strconv.Itoa(len(payload)))
}

func TestSecretAuthBodyFieldWrongSecret(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", bytes.NewReader([]byte(`{"secret":"nope"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecretAuthSecondSecret(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret", "cron-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("X-Secret", "cron-secret")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)
}

func TestSecretAuthAdminToken(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("Authorization", "Bearer admintoken")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}

func TestSecretAuthRejects(t *testing.T) {
	r := secretRouter("admintoken", "hook-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("X-Secret", "nope")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecretAuthUnconfigured(t *testing.T) {
	r := secretRouter("", "", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
