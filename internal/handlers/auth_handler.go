package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/validator"
)

// AuthHandler serves registration, login, email verification and the
// password-reset flow.
type AuthHandler struct {
	*BaseHandler
}

func NewAuthHandler(base *BaseHandler) *AuthHandler {
	return &AuthHandler{BaseHandler: base}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}
	if err := h.validator.ValidateRegister(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: err})
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, check your email to verify it",
		"id":      user.ID.Hex(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	token, user, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"id":           user.ID.Hex(),
		"username":     user.Username,
		"role":         user.Role,
		"isAdmin":      user.IsAdmin,
		"profilePhoto": user.ProfilePhoto,
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, ok := h.parseObjectID(c, "userId")
	if !ok {
		return
	}

	if err := h.services.Auth.VerifyEmail(c.Request.Context(), userID, c.Param("token")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account verified"})
}

func (h *AuthHandler) SendResetLink(c *gin.Context) {
	var req validator.EmailRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.services.User.SendPasswordResetLink(c.Request.Context(), req.Email); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset link sent to your email"})
}

func (h *AuthHandler) ProbeResetLink(c *gin.Context) {
	userID, ok := h.parseObjectID(c, "userId")
	if !ok {
		return
	}

	if err := h.services.User.ProbeResetToken(c.Request.Context(), userID, c.Param("token")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "valid link"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, ok := h.parseObjectID(c, "userId")
	if !ok {
		return
	}

	var req validator.NewPasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.services.User.ResetPassword(c.Request.Context(), userID, c.Param("token"), req.Password); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
}
