package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/validator"
)

// TaxonomyHandler serves categories and specializations.
type TaxonomyHandler struct {
	*BaseHandler
}

func NewTaxonomyHandler(base *BaseHandler) *TaxonomyHandler {
	return &TaxonomyHandler{BaseHandler: base}
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req validator.CategoryCreateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	category, err := h.services.Taxonomy.CreateCategory(c.Request.Context(), claimsFrom(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.Taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Taxonomy.DeleteCategory(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// CreateSpecialization accepts multipart form data with an optional photo.
func (h *TaxonomyHandler) CreateSpecialization(c *gin.Context) {
	var req validator.SpecializationCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data"})
		return
	}
	if !h.validate(c, &req) {
		return
	}

	upload, closeFile, ok := h.formFile(c, "specializationPhoto", false)
	if !ok {
		return
	}
	defer closeFile()

	specialization, err := h.services.Taxonomy.CreateSpecialization(c.Request.Context(), claimsFrom(c), &req, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, specialization)
}

func (h *TaxonomyHandler) ListSpecializations(c *gin.Context) {
	specializations, err := h.services.Taxonomy.ListSpecializations(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, specializations)
}

func (h *TaxonomyHandler) GetSpecialization(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	specialization, err := h.services.Taxonomy.GetSpecialization(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, specialization)
}

func (h *TaxonomyHandler) UpdateSpecialization(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.SpecializationUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid form data"})
		return
	}
	if !h.validate(c, &req) {
		return
	}

	upload, closeFile, ok := h.formFile(c, "specializationPhoto", false)
	if !ok {
		return
	}
	defer closeFile()

	specialization, err := h.services.Taxonomy.UpdateSpecialization(c.Request.Context(), claimsFrom(c), id, &req, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, specialization)
}

func (h *TaxonomyHandler) DeleteSpecialization(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Taxonomy.DeleteSpecialization(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "specialization deleted"})
}

func (h *TaxonomyHandler) TopSpecializations(c *gin.Context) {
	specializations, err := h.services.Taxonomy.TopSpecializations(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, specializations)
}
