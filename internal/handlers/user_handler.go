package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/validator"
)

// UserHandler serves account listings, profiles and the profile photo.
type UserHandler struct {
	*BaseHandler
}

func NewUserHandler(base *BaseHandler) *UserHandler {
	return &UserHandler{BaseHandler: base}
}

func (h *UserHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.services.User.ListTeachers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

func (h *UserHandler) ListStudents(c *gin.Context) {
	students, err := h.services.User.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *UserHandler) ListTeachersBySpecialization(c *gin.Context) {
	name := c.Query("specialization")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "specialization query parameter is required"})
		return
	}

	teachers, err := h.services.User.ListTeachersBySpecialization(c.Request.Context(), name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

func (h *UserHandler) CountTeachers(c *gin.Context) {
	h.countByRole(c, models.RoleTeacher)
}

func (h *UserHandler) CountStudents(c *gin.Context) {
	h.countByRole(c, models.RoleStudent)
}

func (h *UserHandler) countByRole(c *gin.Context, role models.UserRole) {
	count, err := h.services.User.CountByRole(c.Request.Context(), role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *UserHandler) TopTeachers(c *gin.Context) {
	teachers, err := h.services.User.TopTeachers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	profile, err := h.services.User.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.UpdateProfileRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	user, err := h.services.User.UpdateProfile(c.Request.Context(), claimsFrom(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.User.DeleteAccount(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// UploadProfilePhoto changes the caller's own avatar.
func (h *UserHandler) UploadProfilePhoto(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authorization required"})
		return
	}
	userID, err := claims.Subject()
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid token"})
		return
	}

	upload, closeFile, ok := h.formFile(c, "image", true)
	if !ok {
		return
	}
	defer closeFile()

	user, err := h.services.User.UploadProfilePhoto(c.Request.Context(), claims, userID, *upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profilePhoto": user.ProfilePhoto})
}
