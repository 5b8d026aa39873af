package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/sync/model"
	"blogpress-backend/internal/domains/sync/service"
	"blogpress-backend/internal/shared/response"
)

type SyncHandler struct {
	service service.ServiceInterface
}

func NewSyncHandler(svc service.ServiceInterface) *SyncHandler {
	return &SyncHandler{service: svc}
}

// Sync godoc
// POST /api/blog/sync (secret or admin)
//
// Source precedence: multipart file upload, then inline csv, then an
// explicit sheet_url, then the configured sheet.
func (h *SyncHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	if file, err := c.FormFile("file"); err == nil && file != nil {
		opened, err := file.Open()
		if err != nil {
			response.BadRequest(c, "Could not read uploaded file")
			return
		}
		defer opened.Close()

		data, err := io.ReadAll(opened)
		if err != nil {
			response.BadRequest(c, "Could not read uploaded file")
			return
		}

		result, err := h.service.SyncFromBody(ctx, data, file.Filename, model.SourceUpload)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, 200, result)
		return
	}

	var req model.SyncRequest
	// An empty body falls through to the configured sheet.
	_ = c.ShouldBindJSON(&req)

	switch {
	case req.CSV != "":
		result, err := h.service.SyncFromBody(ctx, []byte(req.CSV), "inline.csv", model.SourceBody)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, 200, result)

	case req.SheetURL != "":
		result, err := h.service.SyncFromURL(ctx, req.SheetURL)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, 200, result)

	default:
		result, err := h.service.SyncConfigured(ctx, model.SourceURL)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, 200, result)
	}
}

func (h *SyncHandler) respondError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Sync handler error")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
