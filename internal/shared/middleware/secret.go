package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretAuth gates machine-to-machine routes (sync, revalidate) behind shared
// secrets. Any of the configured secrets passes; the admin token also passes
// so an operator can trigger the same routes by hand. The credential may
// arrive as a bearer token, the X-Secret header, a ?secret= query param, or a
// "secret" field in a JSON body.
func SecretAuth(adminToken string, secrets ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" && allEmpty(secrets) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFIG_MISSING",
					"message": "route secret is not configured",
				},
			})
			c.Abort()
			return
		}

		presented := presentedToken(c)
		if presented == "" {
			presented = c.GetHeader("X-Secret")
		}
		if presented == "" {
			presented = c.Query("secret")
		}
		if presented == "" {
			presented = bodySecret(c)
		}

		if adminToken != "" && SecretsEqual(presented, adminToken) {
			c.Set("is_admin", true)
			c.Next()
			return
		}

		for _, secret := range secrets {
			if SecretsEqual(presented, secret) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid or missing secret",
			},
		})
		c.Abort()
	}
}

// bodySecret pulls the "secret" field out of a JSON body. The body is
// buffered and restored so the handler can still bind it.
func bodySecret(c *gin.Context) string {
	if c.Request.Body == nil || c.ContentType() != "application/json" {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var payload struct {
		Secret string `json:"secret"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	return payload.Secret
}

func allEmpty(secrets []string) bool {
	for _, s := range secrets {
		if s != "" {
			return false
		}
	}
	return true
}
