package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/author/model"
	"blogpress-backend/internal/domains/author/service"
	"blogpress-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List godoc
// GET /api/blog/authors
func (h *AuthorHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	isAdmin := c.GetBool("is_admin")

	authors, total, err := h.service.List(c.Request.Context(), model.AuthorFilter{
		Limit:         limit,
		Offset:        offset,
		IncludeHidden: isAdmin,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if isAdmin {
		out := make([]*model.AdminAuthorResponse, 0, len(authors))
		for i := range authors {
			out = append(out, authors[i].ToAdminResponse())
		}
		response.SuccessWithMeta(c, 200, out, &response.Meta{Limit: limit, Total: int(total)})
		return
	}

	out := make([]*model.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	response.SuccessWithMeta(c, 200, out, &response.Meta{Limit: limit, Total: int(total)})
}

// Get godoc
// GET /api/blog/authors/:handle
func (h *AuthorHandler) Get(c *gin.Context) {
	isAdmin := c.GetBool("is_admin")

	author, err := h.service.GetByHandle(c.Request.Context(), c.Param("handle"), isAdmin)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if isAdmin {
		response.Success(c, 200, author.ToAdminResponse())
		return
	}
	response.Success(c, 200, author.ToResponse())
}

// Create godoc
// POST /api/blog/authors (admin)
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The generated token is returned once, at creation.
	response.Success(c, 201, gin.H{
		"author":    author.ToAdminResponse(),
		"api_token": author.APIToken,
	})
}

// Update godoc
// PATCH /api/blog/authors/:handle (author or admin)
func (h *AuthorHandler) Update(c *gin.Context) {
	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Update(c.Request.Context(), c.Param("handle"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, author.ToResponse())
}

// Transition godoc
// PATCH /api/blog/authors/:handle/state (admin)
func (h *AuthorHandler) Transition(c *gin.Context) {
	var req model.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Transition(c.Request.Context(), c.Param("handle"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, author.ToAdminResponse())
}

// RegenerateToken godoc
// POST /api/blog/authors/:handle/token (admin)
func (h *AuthorHandler) RegenerateToken(c *gin.Context) {
	token, err := h.service.RegenerateToken(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, gin.H{"api_token": token})
}

// Delete godoc
// DELETE /api/blog/authors/:handle (admin)
func (h *AuthorHandler) Delete(c *gin.Context) {
	handle := c.Param("handle")

	if err := h.service.Delete(c.Request.Context(), handle); err != nil {
		h.respondError(c, err)
		return
	}

	log.Info().Str("handle", handle).Msg("Author deleted with posts and comments")
	response.Success(c, 200, gin.H{"deleted": handle})
}

// Quota godoc
// GET /api/blog/authors/:handle/quota (author or admin)
func (h *AuthorHandler) Quota(c *gin.Context) {
	quota, err := h.service.CheckQuota(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, quota)
}

// Join godoc
// POST /api/blog/join (public)
func (h *AuthorHandler) Join(c *gin.Context) {
	var req model.JoinFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Join(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 201, gin.H{
		"id":     created.ID,
		"handle": created.Handle,
		"status": created.Status,
	})
}

// ListRequests godoc
// GET /api/blog/requests (admin)
func (h *AuthorHandler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, requests)
}

// ApproveRequest godoc
// POST /api/blog/requests/:id/approve (admin)
func (h *AuthorHandler) ApproveRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid request id")
		return
	}

	author, err := h.service.ApproveRequest(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, author.ToAdminResponse())
}

// RejectRequest godoc
// POST /api/blog/requests/:id/reject (admin)
func (h *AuthorHandler) RejectRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid request id")
		return
	}

	if err := h.service.RejectRequest(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, gin.H{"id": id, "status": model.RequestRejected})
}

func (h *AuthorHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Author handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
