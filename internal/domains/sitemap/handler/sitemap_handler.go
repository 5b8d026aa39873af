package handler

import (
	"github.com/gin-gonic/gin"

	"blogpress-backend/internal/domains/sitemap/service"
)

type SitemapHandler struct {
	service service.ServiceInterface
}

func NewSitemapHandler(svc service.ServiceInterface) *SitemapHandler {
	return &SitemapHandler{service: svc}
}

// Get godoc
// GET /sitemap.xml
func (h *SitemapHandler) Get(c *gin.Context) {
	c.Data(200, "application/xml; charset=utf-8", h.service.Build(c.Request.Context()))
}
