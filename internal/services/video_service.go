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

type videoService struct {
	repo   repositories.Repository
	media  storage.MediaStore
	logger *slog.Logger
}

func NewVideoService(repo repositories.Repository, media storage.MediaStore, logger *slog.Logger) VideoService {
	return &videoService{repo: repo, media: media, logger: logger}
}

func (s *videoService) Create(ctx context.Context, claims *auth.Claims, courseID primitive.ObjectID, req *validator.VideoCreateRequest, media FileUpload) (*models.Video, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !auth.OwnsOrAdmin(claims, course.User) {
		return nil, NewPermissionError("add videos to this course")
	}

	// Titles are unique within a course.
	if _, err := s.repo.Video().GetByTitleAndCourse(ctx, req.Title, courseID); err == nil {
		return nil, ErrDuplicateVideoTitle
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	blob, err := s.media.UploadVideo(ctx, media.Reader, media.Size)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		Title:    req.Title,
		URL:      blob.URL,
		PublicID: blob.PublicID,
		Image:    models.DefaultVideoPoster(),
		Course:   course.ID,
	}
	if err := s.repo.Video().Create(ctx, video); err != nil {
		return nil, err
	}
	if err := s.repo.Course().PushVideo(ctx, courseID, video.ID); err != nil {
		return nil, err
	}

	s.logger.Info("video created", "video_id", video.ID.Hex(), "course_id", courseID.Hex())
	return video, nil
}

func (s *videoService) Get(ctx context.Context, videoID primitive.ObjectID) (*models.Video, error) {
	video, err := s.repo.Video().GetByID(ctx, videoID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID, req *validator.VideoUpdateRequest, media *FileUpload) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, claims, videoID, "update this video")
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != video.Title {
		if _, err := s.repo.Video().GetByTitleAndCourse(ctx, *req.Title, video.Course); err == nil {
			return nil, ErrDuplicateVideoTitle
		} else if !repositories.IsNotFoundError(err) {
			return nil, err
		}
		video.Title = *req.Title
	}

	oldPublicID := ""
	if media != nil {
		blob, err := s.media.UploadVideo(ctx, media.Reader, media.Size)
		if err != nil {
			return nil, err
		}
		oldPublicID = video.PublicID
		video.URL = blob.URL
		video.PublicID = blob.PublicID
	}

	if err := s.repo.Video().Update(ctx, video); err != nil {
		return nil, err
	}

	// Old blob last: a failed persist must not leave the video pointing at
	// a removed file.
	if oldPublicID != "" {
		if err := s.media.RemoveVideo(ctx, oldPublicID); err != nil {
			s.logger.Warn("removing replaced video blob failed",
				"video_id", videoID.Hex(), "public_id", oldPublicID, "error", err)
		}
	}
	return video, nil
}

func (s *videoService) UpdateImage(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID, image FileUpload) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, claims, videoID, "update this video")
	if err != nil {
		return nil, err
	}

	blob, err := s.media.UploadImage(ctx, image.Reader, image.Size)
	if err != nil {
		return nil, err
	}

	old := video.Image
	video.Image = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	if err := s.repo.Video().Update(ctx, video); err != nil {
		return nil, err
	}

	if err := s.media.RemoveImage(ctx, old.PublicID); err != nil {
		s.logger.Warn("removing old video poster failed",
			"video_id", videoID.Hex(), "public_id", old.PublicID, "error", err)
	}
	return video, nil
}

// Delete removes a video, its comments, its blobs and the course's
// reference to it.
func (s *videoService) Delete(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID) error {
	video, err := s.ownedVideo(ctx, claims, videoID, "delete this video")
	if err != nil {
		return err
	}

	steps := []cascadeStep{
		{name: "comments", run: func(ctx context.Context) error {
			return s.repo.Comment().DeleteByVideos(ctx, []primitive.ObjectID{videoID})
		}},
		{name: "video blob", bestEffort: true, run: func(ctx context.Context) error {
			return s.media.RemoveVideo(ctx, video.PublicID)
		}},
		{name: "poster blob", bestEffort: true, run: func(ctx context.Context) error {
			return s.media.RemoveImage(ctx, video.Image.PublicID)
		}},
		{name: "course reference", run: func(ctx context.Context) error {
			return s.repo.Course().PullVideo(ctx, video.Course, videoID)
		}},
		{name: "video document", run: func(ctx context.Context) error {
			return s.repo.Video().Delete(ctx, videoID)
		}},
	}

	if err := runCascade(ctx, s.logger, "video", steps); err != nil {
		return err
	}
	s.logger.Info("video deleted", "video_id", videoID.Hex(), "course_id", video.Course.Hex())
	return nil
}

func (s *videoService) ListAll(ctx context.Context, claims *auth.Claims) ([]*models.VideoWithCourse, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("list all videos")
	}
	return s.repo.Video().ListAll(ctx)
}

func (s *videoService) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error) {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.repo.Video().ListByCourse(ctx, courseID)
}

func (s *videoService) Count(ctx context.Context) (int64, error) {
	return s.repo.Video().Count(ctx)
}

// ownedVideo loads a video and checks the caller owns its course.
func (s *videoService) ownedVideo(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID, action string) (*models.Video, error) {
	video, err := s.Get(ctx, videoID)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.Course().GetByID(ctx, video.Course)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !auth.OwnsOrAdmin(claims, course.User) {
		return nil, NewPermissionError(action)
	}
	return video, nil
}
