package services

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/validator"
)

type communityService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCommunityService(repo repositories.Repository, logger *slog.Logger) CommunityService {
	return &communityService{repo: repo, logger: logger}
}

func (s *communityService) CreateQuestion(ctx context.Context, claims *auth.Claims, req *validator.QuestionRequest) (*models.Question, error) {
	if claims == nil {
		return nil, NewPermissionError("post questions")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("post questions")
	}

	question := &models.Question{Content: req.Content, User: userID}
	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *communityService) GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *communityService) UpdateQuestion(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.QuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.Owns(claims, question.User) {
		return nil, NewPermissionError("edit this question")
	}

	question.Content = req.Content
	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a question and its answers.
func (s *communityService) DeleteQuestion(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if !auth.OwnsOrAdmin(claims, question.User) {
		return NewPermissionError("delete this question")
	}

	steps := []cascadeStep{
		{name: "answers", run: func(ctx context.Context) error {
			return s.repo.Answer().DeleteByQuestions(ctx, []primitive.ObjectID{id})
		}},
		{name: "question document", run: func(ctx context.Context) error {
			return s.repo.Question().Delete(ctx, id)
		}},
	}
	return runCascade(ctx, s.logger, "question", steps)
}

func (s *communityService) ListLatestQuestions(ctx context.Context) ([]*models.QuestionDetails, error) {
	return s.repo.Question().ListLatest(ctx)
}

func (s *communityService) SearchQuestions(ctx context.Context, query string) ([]*models.QuestionDetails, error) {
	if query == "" {
		return s.repo.Question().ListLatest(ctx)
	}
	return s.repo.Question().Search(ctx, query)
}

func (s *communityService) CountQuestions(ctx context.Context) (int64, error) {
	return s.repo.Question().Count(ctx)
}

func (s *communityService) CreateAnswer(ctx context.Context, claims *auth.Claims, questionID primitive.ObjectID, req *validator.AnswerRequest) (*models.Answer, error) {
	if claims == nil {
		return nil, NewPermissionError("post answers")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("post answers")
	}
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &models.Answer{Content: req.Content, User: userID, Question: questionID}
	if err := s.repo.Answer().Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *communityService) UpdateAnswer(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.AnswerRequest) (*models.Answer, error) {
	answer, err := s.repo.Answer().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	if !auth.Owns(claims, answer.User) {
		return nil, NewPermissionError("edit this answer")
	}

	answer.Content = req.Content
	if err := s.repo.Answer().Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *communityService) DeleteAnswer(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	answer, err := s.repo.Answer().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAnswerNotFound
		}
		return err
	}
	if !auth.OwnsOrAdmin(claims, answer.User) {
		return NewPermissionError("delete this answer")
	}
	return s.repo.Answer().Delete(ctx, id)
}

func (s *communityService) ListAnswers(ctx context.Context, questionID primitive.ObjectID) ([]*models.AnswerDetails, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.repo.Answer().ListByQuestion(ctx, questionID)
}

func (s *communityService) ListAllAnswers(ctx context.Context, claims *auth.Claims) ([]*models.AnswerDetails, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("list all answers")
	}
	return s.repo.Answer().ListAll(ctx)
}

func (s *communityService) CountAnswers(ctx context.Context) (int64, error) {
	return s.repo.Answer().Count(ctx)
}
