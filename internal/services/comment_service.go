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

type commentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCommentService(repo repositories.Repository, logger *slog.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

func (s *commentService) Create(ctx context.Context, claims *auth.Claims, req *validator.CommentCreateRequest) (*models.Comment, error) {
	if !auth.HasRole(claims, models.RoleStudent) {
		return nil, NewPermissionError("comment")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("comment")
	}

	videoID, err := primitive.ObjectIDFromHex(req.Video)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	if _, err := s.repo.Video().GetByID(ctx, videoID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Content: req.Content,
		User:    userID,
		Video:   videoID,
	}
	if err := s.repo.Comment().Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.CommentUpdateRequest) (*models.Comment, error) {
	comment, err := s.repo.Comment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	// Only the author may edit; admins moderate by deletion, not rewording.
	if !auth.Owns(claims, comment.User) {
		return nil, NewPermissionError("edit this comment")
	}

	comment.Content = req.Content
	if err := s.repo.Comment().Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	comment, err := s.repo.Comment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if !auth.OwnsOrAdmin(claims, comment.User) {
		return NewPermissionError("delete this comment")
	}
	return s.repo.Comment().Delete(ctx, id)
}

func (s *commentService) ListAll(ctx context.Context, claims *auth.Claims) ([]*models.CommentDetails, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("list all comments")
	}
	return s.repo.Comment().ListAll(ctx)
}

func (s *commentService) ListLast(ctx context.Context) ([]*models.CommentDetails, error) {
	return s.repo.Comment().ListLast(ctx, repositories.LastCommentsLimit)
}

func (s *commentService) ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*models.CommentDetails, error) {
	if _, err := s.repo.Video().GetByID(ctx, videoID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.repo.Comment().ListByVideo(ctx, videoID)
}

func (s *commentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Comment().Count(ctx)
}
