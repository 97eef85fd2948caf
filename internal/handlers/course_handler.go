package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/validator"
)

type courseToggle func(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error)

// CourseHandler serves the course catalogue, its media and the
// like/favorite/subscribe toggles.
type CourseHandler struct {
	*BaseHandler
}

func NewCourseHandler(base *BaseHandler) *CourseHandler {
	return &CourseHandler{BaseHandler: base}
}

// Create accepts multipart form data: title, description, category and a
// required course image.
func (h *CourseHandler) Create(c *gin.Context) {
	var req validator.CourseCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data"})
		return
	}
	if !h.validate(c, &req) {
		return
	}

	upload, closeFile, ok := h.formFile(c, "image", true)
	if !ok {
		return
	}
	defer closeFile()

	course, err := h.services.Course.Create(c.Request.Context(), claimsFrom(c), &req, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	filters := repositories.CourseFilters{
		Search:  c.Query("search"),
		Popular: c.Query("popular") == "true",
	}
	if page, err := strconv.Atoi(c.Query("pageNumber")); err == nil && page > 0 {
		filters.Page = page
	}

	courses, err := h.services.Course.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) ListByCategory(c *gin.Context) {
	courses, err := h.services.Course.ListByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Count(c *gin.Context) {
	count, err := h.services.Course.Count(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	course, err := h.services.Course.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.CourseUpdateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	course, err := h.services.Course.Update(c.Request.Context(), claimsFrom(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateImage(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	upload, closeFile, ok := h.formFile(c, "image", true)
	if !ok {
		return
	}
	defer closeFile()

	course, err := h.services.Course.UpdateImage(c.Request.Context(), claimsFrom(c), id, *upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Course.Delete(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

func (h *CourseHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.services.Course.ToggleLike)
}

func (h *CourseHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, h.services.Course.ToggleFavorite)
}

func (h *CourseHandler) ToggleSubscribe(c *gin.Context) {
	h.toggle(c, h.services.Course.ToggleSubscribe)
}

func (h *CourseHandler) toggle(c *gin.Context, fn courseToggle) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	course, err := fn(c.Request.Context(), claimsFrom(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) MySubscriptions(c *gin.Context) {
	courses, err := h.services.Course.MySubscriptions(c.Request.Context(), claimsFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) MyFavorites(c *gin.Context) {
	courses, err := h.services.Course.MyFavorites(c.Request.Context(), claimsFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}
