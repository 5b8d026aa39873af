package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminCookieName is the cookie set by the login route; it mirrors the static
// admin token.
const AdminCookieName = "admin_token"

// AdminAuth gates admin routes. Authorized iff the bearer header or the admin
// cookie equals the configured token. Unauthorized requests short-circuit
// before any handler runs, so no partial mutation is possible.
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			// Misconfiguration fails the route, not the process.
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFIG_MISSING",
					"message": "admin token is not configured",
				},
			})
			c.Abort()
			return
		}

		if !SecretsEqual(presentedToken(c), adminToken) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "invalid or missing admin credentials",
				},
			})
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}

// AdminRecognition marks a request as admin when valid admin credentials are
// presented and passes through otherwise. Public read routes use it so an
// admin sees hidden authors and unpublished posts without a separate surface.
func AdminRecognition(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken != "" && SecretsEqual(presentedToken(c), adminToken) {
			c.Set("is_admin", true)
		}
		c.Next()
	}
}

// presentedToken extracts the candidate secret: "Authorization: Bearer x"
// first, admin cookie second.
func presentedToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(AdminCookieName); err == nil {
		return cookie
	}

	return ""
}

// SecretsEqual compares two secrets in constant time. The authorization model
// stays plain equality against a static secret for upstream compatibility.
func SecretsEqual(presented, expected string) bool {
	if presented == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
