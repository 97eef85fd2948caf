package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// CourseFilters selects one of three mutually exclusive listing modes on
// top of an optional keyword filter: Popular (top PageSize by subscriber
// count), Page > 0 (paged, newest first), default (all, newest first).
type CourseFilters struct {
	Search  string
	Popular bool
	Page    int
}

// CoursePageSize is the fixed page size for course listings and the
// popular-mode cut-off.
const CoursePageSize = 6

// TopTeachersLimit / TopSpecializationsLimit bound the live aggregations.
const (
	TopTeachersLimit        = 4
	TopSpecializationsLimit = 4
	LastCommentsLimit       = 4
)

// ===== PER-ENTITY REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListByRole(ctx context.Context, role models.UserRole) ([]*models.PublicProfile, error)
	ListTeachersBySpecialization(ctx context.Context, specializationID primitive.ObjectID) ([]*models.PublicProfile, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)

	// TopTeachers groups courses by owner and returns the limit teachers
	// with the most courses. Tie order follows the database's aggregation
	// order and is not deterministic.
	TopTeachers(ctx context.Context, limit int) ([]*models.TopTeacher, error)

	// TopSpecializations groups teachers by specialization and returns the
	// limit specializations with the most teachers.
	TopSpecializations(ctx context.Context, limit int) ([]*models.TopSpecialization, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.VerificationToken, error)
	GetByUserAndToken(ctx context.Context, userID primitive.ObjectID, token string) (*models.VerificationToken, error)
	Update(ctx context.Context, token *models.VerificationToken) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) (*models.CourseDetails, error)
	GetByTitleAndOwner(ctx context.Context, title string, ownerID primitive.ObjectID) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, filters CourseFilters) ([]*models.CourseDetails, error)
	ListByCategory(ctx context.Context, category string) ([]*models.CourseDetails, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Course, error)
	ListBySubscriber(ctx context.Context, userID primitive.ObjectID) ([]*models.Course, error)
	ListByFavorite(ctx context.Context, userID primitive.ObjectID) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)

	// Set-valued relationship updates. AddMember/RemoveMember are the two
	// halves of the idempotent toggles.
	AddMember(ctx context.Context, courseID primitive.ObjectID, field CourseMemberField, userID primitive.ObjectID) (*models.Course, error)
	RemoveMember(ctx context.Context, courseID primitive.ObjectID, field CourseMemberField, userID primitive.ObjectID) (*models.Course, error)

	PushVideo(ctx context.Context, courseID, videoID primitive.ObjectID) error
	PullVideo(ctx context.Context, courseID, videoID primitive.ObjectID) error
}

// CourseMemberField names one of the course's user-id sets.
type CourseMemberField string

const (
	CourseLikes       CourseMemberField = "likes"
	CourseFavorites   CourseMemberField = "favorites"
	CourseSubscribers CourseMemberField = "subscribers"
)

type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	GetByTitleAndCourse(ctx context.Context, title string, courseID primitive.ObjectID) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListAll(ctx context.Context) ([]*models.VideoWithCourse, error)
	ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error)
	DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListAll(ctx context.Context) ([]*models.CommentDetails, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*models.CommentDetails, error)
	ListLast(ctx context.Context, limit int) ([]*models.CommentDetails, error)
	DeleteByVideos(ctx context.Context, videoIDs []primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListLatest(ctx context.Context) ([]*models.QuestionDetails, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Question, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error

	// Search runs a $text query on question content, relevance-sorted.
	Search(ctx context.Context, query string) ([]*models.QuestionDetails, error)
	Count(ctx context.Context) (int64, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Answer, error)
	Update(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListAll(ctx context.Context) ([]*models.AnswerDetails, error)
	ListByQuestion(ctx context.Context, questionID primitive.ObjectID) ([]*models.AnswerDetails, error)
	DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetByTitle(ctx context.Context, title string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SpecializationRepository interface {
	Create(ctx context.Context, specialization *models.Specialization) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Specialization, error)
	GetByName(ctx context.Context, name string) (*models.Specialization, error)
	List(ctx context.Context) ([]*models.Specialization, error)
	Update(ctx context.Context, specialization *models.Specialization) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
