package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenLookup resolves the stored api_token for a handle. Implemented by the
// author service; the middleware stays decoupled from the domain packages.
type TokenLookup interface {
	LookupAPIToken(ctx context.Context, handle string) (string, error)
}

// AuthorAuth gates author-scoped routes identified by a :handle route param.
// Authorized iff the bearer token equals that author's api_token. The admin
// token always passes: admin is a superset of every author scope.
func AuthorAuth(lookup TokenLookup, adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := presentedToken(c)

		if adminToken != "" && SecretsEqual(presented, adminToken) {
			c.Set("is_admin", true)
			c.Next()
			return
		}

		handle := strings.TrimSpace(c.Param("handle"))
		if handle == "" || presented == "" {
			unauthorized(c)
			return
		}

		stored, err := lookup.LookupAPIToken(c.Request.Context(), handle)
		if err != nil || !SecretsEqual(presented, stored) {
			unauthorized(c)
			return
		}

		c.Set("author_handle", handle)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "invalid or missing author credentials",
		},
	})
	c.Abort()
}
