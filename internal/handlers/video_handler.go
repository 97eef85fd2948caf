package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/validator"
)

// VideoHandler serves course videos and their media uploads.
type VideoHandler struct {
	*BaseHandler
}

func NewVideoHandler(base *BaseHandler) *VideoHandler {
	return &VideoHandler{BaseHandler: base}
}

// Create adds a video to the course named by the path id. Multipart form:
// title plus the video file.
func (h *VideoHandler) Create(c *gin.Context) {
	courseID, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.VideoCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data"})
		return
	}
	if !h.validate(c, &req) {
		return
	}

	upload, closeFile, ok := h.formFile(c, "video", true)
	if !ok {
		return
	}
	defer closeFile()

	video, err := h.services.Video.Create(c.Request.Context(), claimsFrom(c), courseID, &req, *upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) ListAll(c *gin.Context) {
	videos, err := h.services.Video.ListAll(c.Request.Context(), claimsFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Count(c *gin.Context) {
	count, err := h.services.Video.Count(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *VideoHandler) ListByCourse(c *gin.Context) {
	courseID, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	videos, err := h.services.Video.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	video, err := h.services.Video.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Update replaces the media file and/or retitles the video.
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data"})
		return
	}
	if !h.validate(c, &req) {
		return
	}

	upload, closeFile, ok := h.formFile(c, "video", false)
	if !ok {
		return
	}
	defer closeFile()

	video, err := h.services.Video.Update(c.Request.Context(), claimsFrom(c), id, &req, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// UpdateImage replaces the poster image.
func (h *VideoHandler) UpdateImage(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	upload, closeFile, ok := h.formFile(c, "image", true)
	if !ok {
		return
	}
	defer closeFile()

	video, err := h.services.Video.UpdateImage(c.Request.Context(), claimsFrom(c), id, *upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Video.Delete(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}
