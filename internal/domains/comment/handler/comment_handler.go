package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/comment/model"
	"blogpress-backend/internal/domains/comment/service"
	"blogpress-backend/internal/shared/response"
)

type CommentHandler struct {
	service service.ServiceInterface
}

func NewCommentHandler(svc service.ServiceInterface) *CommentHandler {
	return &CommentHandler{service: svc}
}

// List godoc
// GET /api/blog/posts/:slug/comments
func (h *CommentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	comments, total, err := h.service.ListByPost(c.Request.Context(), c.Param("slug"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, 200, comments, &response.Meta{Limit: limit, Total: int(total)})
}

// Create godoc
// POST /api/blog/posts/:slug/comments (public)
func (h *CommentHandler) Create(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.service.Create(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 201, comment)
}

func (h *CommentHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Comment handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
