package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/validator"
)

// CommentHandler serves video comments.
type CommentHandler struct {
	*BaseHandler
}

func NewCommentHandler(base *BaseHandler) *CommentHandler {
	return &CommentHandler{BaseHandler: base}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req validator.CommentCreateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), claimsFrom(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListAll(c *gin.Context) {
	comments, err := h.services.Comment.ListAll(c.Request.Context(), claimsFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) ListLast(c *gin.Context) {
	comments, err := h.services.Comment.ListLast(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	comments, err := h.services.Comment.ListByVideo(c.Request.Context(), videoID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Count(c *gin.Context) {
	count, err := h.services.Comment.Count(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.CommentUpdateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	comment, err := h.services.Comment.Update(c.Request.Context(), claimsFrom(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
