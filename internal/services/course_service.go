package services

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/storage"
	"github.com/eduvia/elearning-service/internal/validator"
)

type courseService struct {
	repo   repositories.Repository
	media  storage.MediaStore
	logger *slog.Logger
}

func NewCourseService(repo repositories.Repository, media storage.MediaStore, logger *slog.Logger) CourseService {
	return &courseService{repo: repo, media: media, logger: logger}
}

func (s *courseService) Create(ctx context.Context, claims *auth.Claims, req *validator.CourseCreateRequest, image *FileUpload) (*models.Course, error) {
	if !auth.HasRole(claims, models.RoleTeacher) {
		return nil, NewPermissionError("create courses")
	}
	ownerID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("create courses")
	}

	// Titles are unique per owner, not globally.
	if _, err := s.repo.Course().GetByTitleAndOwner(ctx, req.Title, ownerID); err == nil {
		return nil, ErrDuplicateCourseTitle
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		User:        ownerID,
	}

	if image != nil {
		blob, err := s.media.UploadImage(ctx, image.Reader, image.Size)
		if err != nil {
			return nil, err
		}
		course.Image = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("course created", "course_id", course.ID.Hex(), "owner", ownerID.Hex())
	return course, nil
}

func (s *courseService) Get(ctx context.Context, id primitive.ObjectID) (*models.CourseDetails, error) {
	details, err := s.repo.Course().GetDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return details, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.CourseDetails, error) {
	return s.repo.Course().List(ctx, filters)
}

func (s *courseService) ListByCategory(ctx context.Context, category string) ([]*models.CourseDetails, error) {
	return s.repo.Course().ListByCategory(ctx, category)
}

func (s *courseService) Count(ctx context.Context) (int64, error) {
	return s.repo.Course().Count(ctx)
}

func (s *courseService) Update(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.CourseUpdateRequest) (*models.Course, error) {
	course, err := s.ownedCourse(ctx, claims, id, "update this course")
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != course.Title {
		if _, err := s.repo.Course().GetByTitleAndOwner(ctx, *req.Title, course.User); err == nil {
			return nil, ErrDuplicateCourseTitle
		} else if !repositories.IsNotFoundError(err) {
			return nil, err
		}
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) UpdateImage(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, image FileUpload) (*models.Course, error) {
	course, err := s.ownedCourse(ctx, claims, id, "change this course image")
	if err != nil {
		return nil, err
	}

	blob, err := s.media.UploadImage(ctx, image.Reader, image.Size)
	if err != nil {
		return nil, err
	}

	old := course.Image
	course.Image = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, err
	}

	if err := s.media.RemoveImage(ctx, old.PublicID); err != nil {
		s.logger.Warn("removing old course image failed",
			"course_id", id.Hex(), "public_id", old.PublicID, "error", err)
	}
	return course, nil
}

// Delete removes a course with its videos, their comments and all media
// blobs. Children go first so an interrupted cascade never strands
// comments or videos without a parent course.
func (s *courseService) Delete(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	course, err := s.ownedCourse(ctx, claims, id, "delete this course")
	if err != nil {
		return err
	}

	videos, err := s.repo.Video().ListByCourse(ctx, id)
	if err != nil {
		return err
	}
	videoIDs := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		videoIDs = append(videoIDs, v.ID)
	}

	steps := []cascadeStep{
		{name: "video comments", run: func(ctx context.Context) error {
			return s.repo.Comment().DeleteByVideos(ctx, videoIDs)
		}},
	}
	for _, video := range videos {
		video := video
		steps = append(steps,
			cascadeStep{name: "video blob " + video.ID.Hex(), bestEffort: true, run: func(ctx context.Context) error {
				return s.media.RemoveVideo(ctx, video.PublicID)
			}},
			cascadeStep{name: "video poster " + video.ID.Hex(), bestEffort: true, run: func(ctx context.Context) error {
				return s.media.RemoveImage(ctx, video.Image.PublicID)
			}},
		)
	}
	steps = append(steps,
		cascadeStep{name: "video documents", run: func(ctx context.Context) error {
			return s.repo.Video().DeleteByCourse(ctx, id)
		}},
		cascadeStep{name: "course image blob", bestEffort: true, run: func(ctx context.Context) error {
			return s.media.RemoveImage(ctx, course.Image.PublicID)
		}},
		cascadeStep{name: "course document", run: func(ctx context.Context) error {
			return s.repo.Course().Delete(ctx, id)
		}},
	)

	if err := runCascade(ctx, s.logger, "course", steps); err != nil {
		return err
	}
	s.logger.Info("course deleted", "course_id", id.Hex(), "videos", len(videos))
	return nil
}

func (s *courseService) ToggleLike(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error) {
	return s.toggle(ctx, claims, id, repositories.CourseLikes)
}

// Subscribing and favoriting are student actions; likes are open to any
// signed-in account.
func (s *courseService) ToggleFavorite(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error) {
	if !auth.HasRole(claims, models.RoleStudent) {
		return nil, NewPermissionError("favorite courses")
	}
	return s.toggle(ctx, claims, id, repositories.CourseFavorites)
}

func (s *courseService) ToggleSubscribe(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error) {
	if !auth.HasRole(claims, models.RoleStudent) {
		return nil, NewPermissionError("subscribe to courses")
	}
	return s.toggle(ctx, claims, id, repositories.CourseSubscribers)
}

// toggle flips the caller's membership in one of the course's user sets.
// Add and remove are both idempotent at the storage level, so concurrent
// toggles settle on a consistent state.
func (s *courseService) toggle(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, field repositories.CourseMemberField) (*models.Course, error) {
	if claims == nil {
		return nil, NewPermissionError("react to courses")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("react to courses")
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var member bool
	switch field {
	case repositories.CourseLikes:
		member = course.HasLike(userID)
	case repositories.CourseFavorites:
		member = course.HasFavorite(userID)
	case repositories.CourseSubscribers:
		member = course.HasSubscriber(userID)
	}

	if member {
		course, err = s.repo.Course().RemoveMember(ctx, id, field, userID)
	} else {
		course, err = s.repo.Course().AddMember(ctx, id, field, userID)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) MySubscriptions(ctx context.Context, claims *auth.Claims) ([]*models.Course, error) {
	if claims == nil {
		return nil, NewPermissionError("list subscriptions")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("list subscriptions")
	}
	return s.repo.Course().ListBySubscriber(ctx, userID)
}

func (s *courseService) MyFavorites(ctx context.Context, claims *auth.Claims) ([]*models.Course, error) {
	if claims == nil {
		return nil, NewPermissionError("list favorites")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("list favorites")
	}
	return s.repo.Course().ListByFavorite(ctx, userID)
}

// ownedCourse loads a course and checks the caller may modify it.
func (s *courseService) ownedCourse(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !auth.OwnsOrAdmin(claims, course.User) {
		return nil, NewPermissionError(action)
	}
	return course, nil
}
