package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogpress-backend/internal/shared/middleware"
	"blogpress-backend/internal/shared/response"
	"blogpress-backend/pkg/container"
)

// adminCookieTTL is how long a login cookie stays valid.
const adminCookieTTL = 24 * time.Hour

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ClientIPMiddleware())

	adminAuth := middleware.AdminAuth(c.Config.Admin.AdminToken)
	adminView := middleware.AdminRecognition(c.Config.Admin.AdminToken)
	authorAuth := middleware.AuthorAuth(c.AuthorService, c.Config.Admin.AdminToken)
	syncAuth := middleware.SecretAuth(c.Config.Admin.AdminToken, c.Config.Admin.RevalidateSecret, c.Config.Admin.CronSecret)

	router.GET("/health", healthHandler(c))
	router.GET("/sitemap.xml", c.SitemapHandler.Get)

	api := router.Group("/api/blog")
	{
		api.POST("/login", loginHandler(c))

		// Public content surface; an admin token widens the view.
		api.GET("/authors", adminView, c.AuthorHandler.List)
		api.GET("/authors/:handle", adminView, c.AuthorHandler.Get)
		api.GET("/posts", adminView, c.PostHandler.List)
		api.GET("/posts/:slug", adminView, c.PostHandler.Get)
		api.GET("/posts/:slug/comments", c.CommentHandler.List)
		api.POST("/posts/:slug/comments", c.CommentHandler.Create)
		api.GET("/settings", c.SettingsHandler.GetSite)
		api.GET("/settings/join", c.SettingsHandler.GetJoinToggle)
		api.POST("/join", c.AuthorHandler.Join)

		// Author-token surface (admin token passes too)
		api.PATCH("/authors/:handle", authorAuth, c.AuthorHandler.Update)
		api.GET("/authors/:handle/quota", authorAuth, c.AuthorHandler.Quota)
		api.POST("/authors/:handle/posts", authorAuth, c.PostHandler.Create)
		api.PATCH("/authors/:handle/posts/:slug", authorAuth, c.PostHandler.Update)
		api.DELETE("/authors/:handle/posts/:slug", authorAuth, c.PostHandler.Delete)
		api.POST("/authors/:handle/images", authorAuth, c.MediaHandler.Upload)

		// Admin surface
		api.POST("/authors", adminAuth, c.AuthorHandler.Create)
		api.PATCH("/authors/:handle/state", adminAuth, c.AuthorHandler.Transition)
		api.POST("/authors/:handle/token", adminAuth, c.AuthorHandler.RegenerateToken)
		api.DELETE("/authors/:handle", adminAuth, c.AuthorHandler.Delete)
		api.GET("/requests", adminAuth, c.AuthorHandler.ListRequests)
		api.POST("/requests/:id/approve", adminAuth, c.AuthorHandler.ApproveRequest)
		api.POST("/requests/:id/reject", adminAuth, c.AuthorHandler.RejectRequest)
		api.PUT("/settings", adminAuth, c.SettingsHandler.UpdateSite)
		api.PUT("/settings/join", adminAuth, c.SettingsHandler.SetJoinToggle)
		api.GET("/warmlog", adminAuth, c.RevalidationHandler.Warmlog)

		// Machine surface (shared secret or admin)
		api.POST("/sync", syncAuth, c.SyncHandler.Sync)
		api.POST("/revalidate", syncAuth, c.RevalidationHandler.Revalidate)
	}

	return router
}

type loginRequest struct {
	Token string `json:"token" binding:"required"`
}

// loginHandler exchanges the admin token for a cookie so browser sessions do
// not need to attach a bearer header on every call.
func loginHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req loginRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.BadRequest(ctx, "token is required")
			return
		}

		adminToken := c.Config.Admin.AdminToken
		if adminToken == "" || !middleware.SecretsEqual(req.Token, adminToken) {
			response.Unauthorized(ctx, "invalid admin token")
			return
		}

		secure := c.Config.App.Environment == "production"
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(middleware.AdminCookieName, adminToken, int(adminCookieTTL.Seconds()), "/", "", secure, true)

		response.Success(ctx, 200, gin.H{"logged_in": true})
	}
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "healthy"
		checks := gin.H{}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		ctx.JSON(code, gin.H{
			"status":  status,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
