package services

import (
	"log/slog"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/mailer"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/storage"
)

// ServiceManager owns one instance of every service, wired against a
// shared repository, media store and mailer.
type ServiceManager struct {
	Auth      AuthService
	User      UserService
	Course    CourseService
	Video     VideoService
	Comment   CommentService
	Community CommunityService
	Taxonomy  TaxonomyService
}

func NewServiceManager(repo repositories.Repository, tokens *auth.TokenManager, media storage.MediaStore, m mailer.Mailer, logger *slog.Logger) *ServiceManager {
	courses := NewCourseService(repo, media, logger)
	return &ServiceManager{
		Auth:      NewAuthService(repo, tokens, m, logger),
		User:      NewUserService(repo, media, m, courses, logger),
		Course:    courses,
		Video:     NewVideoService(repo, media, logger),
		Comment:   NewCommentService(repo, logger),
		Community: NewCommunityService(repo, logger),
		Taxonomy:  NewTaxonomyService(repo, media, logger),
	}
}
