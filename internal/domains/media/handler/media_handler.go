package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/media/model"
	"blogpress-backend/internal/domains/media/service"
	"blogpress-backend/internal/shared/response"
)

type MediaHandler struct {
	service service.ServiceInterface
}

func NewMediaHandler(svc service.ServiceInterface) *MediaHandler {
	return &MediaHandler{service: svc}
}

// Upload godoc
// POST /api/blog/authors/:handle/images (author or admin)
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	opened, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded image")
		return
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded image")
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), c.Param("handle"), data)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, 201, result)
}

func (h *MediaHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Media handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
