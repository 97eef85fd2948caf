package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/validator"
)

// CommunityHandler serves the question-and-answer board.
type CommunityHandler struct {
	*BaseHandler
}

func NewCommunityHandler(base *BaseHandler) *CommunityHandler {
	return &CommunityHandler{BaseHandler: base}
}

func (h *CommunityHandler) ListLatest(c *gin.Context) {
	questions, err := h.services.Community.ListLatestQuestions(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *CommunityHandler) Search(c *gin.Context) {
	questions, err := h.services.Community.SearchQuestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *CommunityHandler) CreateQuestion(c *gin.Context) {
	var req validator.QuestionRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	question, err := h.services.Community.CreateQuestion(c.Request.Context(), claimsFrom(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *CommunityHandler) UpdateQuestion(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.QuestionRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	question, err := h.services.Community.UpdateQuestion(c.Request.Context(), claimsFrom(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *CommunityHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Community.DeleteQuestion(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

func (h *CommunityHandler) CountQuestions(c *gin.Context) {
	count, err := h.services.Community.CountQuestions(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CommunityHandler) ListAnswers(c *gin.Context) {
	questionID, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	answers, err := h.services.Community.ListAnswers(c.Request.Context(), questionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *CommunityHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.AnswerRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	answer, err := h.services.Community.CreateAnswer(c.Request.Context(), claimsFrom(c), questionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *CommunityHandler) UpdateAnswer(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	var req validator.AnswerRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	answer, err := h.services.Community.UpdateAnswer(c.Request.Context(), claimsFrom(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *CommunityHandler) DeleteAnswer(c *gin.Context) {
	id, ok := h.parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Community.DeleteAnswer(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer deleted"})
}

func (h *CommunityHandler) ListAllAnswers(c *gin.Context) {
	answers, err := h.services.Community.ListAllAnswers(c.Request.Context(), claimsFrom(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *CommunityHandler) CountAnswers(c *gin.Context) {
	count, err := h.services.Community.CountAnswers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
