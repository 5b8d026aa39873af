package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/infrastructure/revalidate"
	"blogpress-backend/internal/shared/response"
)

// RevalidationHandler exposes the invalidation pipeline over HTTP: a manual
// trigger, best-effort page warming, and the warm diagnostic log.
type RevalidationHandler struct {
	invalidator revalidate.Invalidator
	warmer      *revalidate.Warmer
	ringLog     *revalidate.RingLog
}

func NewRevalidationHandler(invalidator revalidate.Invalidator, warmer *revalidate.Warmer, ringLog *revalidate.RingLog) *RevalidationHandler {
	return &RevalidationHandler{
		invalidator: invalidator,
		warmer:      warmer,
		ringLog:     ringLog,
	}
}

type revalidateRequest struct {
	Tags  []string `json:"tags"`
	Paths []string `json:"paths"`
}

// Revalidate godoc
// POST /api/blog/revalidate (secret or admin)
func (h *RevalidationHandler) Revalidate(c *gin.Context) {
	var req revalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.Tags) == 0 && len(req.Paths) == 0 {
		response.BadRequest(c, "tags or paths required")
		return
	}

	result := h.invalidator.Invalidate(c.Request.Context(), req.Tags, req.Paths)

	// Warm the invalidated paths so the next visitor gets a rendered page.
	for _, path := range req.Paths {
		if err := h.warmer.Warm(c.Request.Context(), path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Post-revalidate warm failed")
		}
	}

	response.Success(c, 200, result)
}

// Warmlog godoc
// GET /api/blog/warmlog (admin)
func (h *RevalidationHandler) Warmlog(c *gin.Context) {
	response.Success(c, 200, h.ringLog.Entries())
}
