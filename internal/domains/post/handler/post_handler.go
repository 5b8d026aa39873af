package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/post/model"
	"blogpress-backend/internal/domains/post/service"
	"blogpress-backend/internal/shared/response"
)

type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(svc service.ServiceInterface) *PostHandler {
	return &PostHandler{service: svc}
}

// List godoc
// GET /api/blog/posts
func (h *PostHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	isAdmin := c.GetBool("is_admin")

	posts, total, err := h.service.List(c.Request.Context(), model.PostFilter{
		AuthorHandle:       c.Query("author"),
		FeaturedOnly:       c.Query("featured") == "true",
		IncludeUnpublished: isAdmin && c.Query("include_unpublished") == "true",
		Limit:              limit,
		Offset:             offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]*model.PostListItem, 0, len(posts))
	for i := range posts {
		items = append(items, posts[i].ToListItem())
	}

	response.SuccessWithMeta(c, 200, items, &response.Meta{Limit: limit, Total: int(total)})
}

// Get godoc
// GET /api/blog/posts/:slug
func (h *PostHandler) Get(c *gin.Context) {
	includeUnpublished := c.GetBool("is_admin") || c.GetString("author_handle") != ""

	post, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), includeUnpublished)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, post)
}

// Create godoc
// POST /api/blog/authors/:handle/posts (author or admin)
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.service.Create(c.Request.Context(), c.Param("handle"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 201, post)
}

// Update godoc
// PATCH /api/blog/authors/:handle/posts/:slug (owner or admin)
func (h *PostHandler) Update(c *gin.Context) {
	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.service.Update(c.Request.Context(), h.actor(c), c.Param("slug"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, post)
}

// Delete godoc
// DELETE /api/blog/authors/:handle/posts/:slug (owner or admin)
func (h *PostHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.service.Delete(c.Request.Context(), h.actor(c), slug); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 200, gin.H{"deleted": slug})
}

func (h *PostHandler) actor(c *gin.Context) service.Actor {
	return service.Actor{
		Handle:  c.GetString("author_handle"),
		IsAdmin: c.GetBool("is_admin"),
	}
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Post handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
