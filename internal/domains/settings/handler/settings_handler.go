package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/settings/model"
	"blogpress-backend/internal/domains/settings/service"
	"blogpress-backend/internal/shared/response"
)

type SettingsHandler struct {
	service service.ServiceInterface
}

func NewSettingsHandler(svc service.ServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// GetSite godoc
// GET /api/blog/settings
func (h *SettingsHandler) GetSite(c *gin.Context) {
	site, err := h.service.GetSite(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, site)
}

// UpdateSite godoc
// PUT /api/blog/settings (admin)
func (h *SettingsHandler) UpdateSite(c *gin.Context) {
	var req model.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	site, err := h.service.UpdateSite(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, site)
}

// GetJoinToggle godoc
// GET /api/blog/settings/join
func (h *SettingsHandler) GetJoinToggle(c *gin.Context) {
	enabled, err := h.service.JoinRequestsEnabled(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, gin.H{"enabled": enabled})
}

// SetJoinToggle godoc
// PUT /api/blog/settings/join (admin)
func (h *SettingsHandler) SetJoinToggle(c *gin.Context) {
	var req model.JoinToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.SetJoinRequestsEnabled(c.Request.Context(), *req.Enabled); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, gin.H{"enabled": *req.Enabled})
}

func (h *SettingsHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Settings handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
