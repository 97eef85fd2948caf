package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/validator"
)

// FileUpload carries a multipart payload into the service layer without
// binding services to the transport.
type FileUpload struct {
	Reader io.Reader
	Size   int64
}

// AuthService covers registration, login and email verification.
type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *validator.LoginRequest) (string, *models.User, error)
	VerifyEmail(ctx context.Context, userID primitive.ObjectID, token string) error
}

// UserService covers accounts, profiles and the password-reset flow.
type UserService interface {
	ListTeachers(ctx context.Context) ([]*models.PublicProfile, error)
	ListStudents(ctx context.Context) ([]*models.PublicProfile, error)
	ListTeachersBySpecialization(ctx context.Context, specializationName string) ([]*models.PublicProfile, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
	TopTeachers(ctx context.Context) ([]*models.TopTeacher, error)

	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error)
	UpdateProfile(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error
	UploadProfilePhoto(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, file FileUpload) (*models.User, error)

	SendPasswordResetLink(ctx context.Context, email string) error
	ProbeResetToken(ctx context.Context, userID primitive.ObjectID, token string) error
	ResetPassword(ctx context.Context, userID primitive.ObjectID, token, newPassword string) error
}

// CourseService covers the course catalogue and its user-set toggles.
type CourseService interface {
	Create(ctx context.Context, claims *auth.Claims, req *validator.CourseCreateRequest, image *FileUpload) (*models.Course, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.CourseDetails, error)
	List(ctx context.Context, filters repositories.CourseFilters) ([]*models.CourseDetails, error)
	ListByCategory(ctx context.Context, category string) ([]*models.CourseDetails, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.CourseUpdateRequest) (*models.Course, error)
	UpdateImage(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, image FileUpload) (*models.Course, error)
	Delete(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error

	ToggleLike(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error)
	ToggleFavorite(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error)
	ToggleSubscribe(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) (*models.Course, error)
	MySubscriptions(ctx context.Context, claims *auth.Claims) ([]*models.Course, error)
	MyFavorites(ctx context.Context, claims *auth.Claims) ([]*models.Course, error)
}

// VideoService covers a course's videos and their media blobs. Videos
// are addressed by their own id; the owning course is derived from the
// video document.
type VideoService interface {
	Create(ctx context.Context, claims *auth.Claims, courseID primitive.ObjectID, req *validator.VideoCreateRequest, media FileUpload) (*models.Video, error)
	Get(ctx context.Context, videoID primitive.ObjectID) (*models.Video, error)
	Update(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID, req *validator.VideoUpdateRequest, media *FileUpload) (*models.Video, error)
	UpdateImage(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID, image FileUpload) (*models.Video, error)
	Delete(ctx context.Context, claims *auth.Claims, videoID primitive.ObjectID) error

	ListAll(ctx context.Context, claims *auth.Claims) ([]*models.VideoWithCourse, error)
	ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error)
	Count(ctx context.Context) (int64, error)
}

// CommentService covers video comments.
type CommentService interface {
	Create(ctx context.Context, claims *auth.Claims, req *validator.CommentCreateRequest) (*models.Comment, error)
	Update(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.CommentUpdateRequest) (*models.Comment, error)
	Delete(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error

	ListAll(ctx context.Context, claims *auth.Claims) ([]*models.CommentDetails, error)
	ListLast(ctx context.Context) ([]*models.CommentDetails, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*models.CommentDetails, error)
	Count(ctx context.Context) (int64, error)
}

// CommunityService covers the question-and-answer board.
type CommunityService interface {
	CreateQuestion(ctx context.Context, claims *auth.Claims, req *validator.QuestionRequest) (*models.Question, error)
	GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	UpdateQuestion(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.QuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error
	ListLatestQuestions(ctx context.Context) ([]*models.QuestionDetails, error)
	SearchQuestions(ctx context.Context, query string) ([]*models.QuestionDetails, error)
	CountQuestions(ctx context.Context) (int64, error)

	CreateAnswer(ctx context.Context, claims *auth.Claims, questionID primitive.ObjectID, req *validator.AnswerRequest) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.AnswerRequest) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error
	ListAnswers(ctx context.Context, questionID primitive.ObjectID) ([]*models.AnswerDetails, error)
	ListAllAnswers(ctx context.Context, claims *auth.Claims) ([]*models.AnswerDetails, error)
	CountAnswers(ctx context.Context) (int64, error)
}

// TaxonomyService covers course categories, teacher specializations and
// the specialization popularity board.
type TaxonomyService interface {
	CreateCategory(ctx context.Context, claims *auth.Claims, req *validator.CategoryCreateRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error

	CreateSpecialization(ctx context.Context, claims *auth.Claims, req *validator.SpecializationCreateRequest, photo *FileUpload) (*models.Specialization, error)
	GetSpecialization(ctx context.Context, id primitive.ObjectID) (*models.Specialization, error)
	ListSpecializations(ctx context.Context) ([]*models.Specialization, error)
	UpdateSpecialization(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.SpecializationUpdateRequest, photo *FileUpload) (*models.Specialization, error)
	DeleteSpecialization(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error
	TopSpecializations(ctx context.Context) ([]*models.TopSpecialization, error)
}
