package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/services"
	"github.com/eduvia/elearning-service/internal/storage"
	"github.com/eduvia/elearning-service/internal/utils"
	"github.com/eduvia/elearning-service/internal/validator"
)

// BaseHandler carries the dependencies every handler needs.
type BaseHandler struct {
	services  *services.ServiceManager
	validator *validator.Validator
	logger    utils.Logger
}

func NewBaseHandler(sm *services.ServiceManager, v *validator.Validator, logger utils.Logger) *BaseHandler {
	return &BaseHandler{services: sm, validator: v, logger: logger}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// parseObjectID reads a path parameter as an ObjectID. A malformed id is
// indistinguishable from an absent document, so it answers 404.
func (h *BaseHandler) parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindAndValidate binds a JSON body and runs the request validator.
func (h *BaseHandler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return false
	}
	return h.validate(c, req)
}

func (h *BaseHandler) validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: ve})
		} else {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		}
		return false
	}
	return true
}

// claimsFrom returns the authenticated caller's claims, or nil on public
// routes.
func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// handleServiceError maps service errors onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrVideoNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrSpecializationNotFound):
		status = http.StatusNotFound

	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateCourseTitle),
		errors.Is(err, services.ErrDuplicateVideoTitle),
		errors.Is(err, services.ErrDuplicateCategory),
		errors.Is(err, services.ErrDuplicateSpecialization),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountNotVerified),
		errors.Is(err, services.ErrInvalidLink),
		errors.Is(err, services.ErrSpecializationInUse):
		status = http.StatusBadRequest

	case services.IsPermissionError(err):
		status = http.StatusForbidden

	case errors.Is(err, storage.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge

	case errors.Is(err, storage.ErrUnsupportedMedia):
		status = http.StatusUnsupportedMediaType

	default:
		utils.LoggerFromContext(c, h.logger).Error("unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Message: err.Error()})
}

// formFile opens a multipart file field and wraps it as a service upload.
// The caller owns the returned closer.
func (h *BaseHandler) formFile(c *gin.Context, field string, required bool) (*services.FileUpload, func(), bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if required {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: field + " file is required"})
			return nil, nil, false
		}
		return nil, func() {}, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "could not read uploaded file"})
		return nil, nil, false
	}
	upload := &services.FileUpload{Reader: file, Size: fileHeader.Size}
	return upload, func() { file.Close() }, true
}
