package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/services"
	"github.com/eduvia/elearning-service/internal/utils"
	"github.com/eduvia/elearning-service/internal/validator"
)

// HandlerManager owns every HTTP handler plus the token manager used by
// the auth middleware.
type HandlerManager struct {
	Auth      *AuthHandler
	User      *UserHandler
	Course    *CourseHandler
	Video     *VideoHandler
	Comment   *CommentHandler
	Community *CommunityHandler
	Taxonomy  *TaxonomyHandler

	tokens *auth.TokenManager
	repo   repositories.Repository
}

func NewHandlerManager(sm *services.ServiceManager, tokens *auth.TokenManager, repo repositories.Repository, logger utils.Logger) *HandlerManager {
	base := NewBaseHandler(sm, validator.New(), logger)
	return &HandlerManager{
		Auth:      NewAuthHandler(base),
		User:      NewUserHandler(base),
		Course:    NewCourseHandler(base),
		Video:     NewVideoHandler(base),
		Comment:   NewCommentHandler(base),
		Community: NewCommunityHandler(base),
		Taxonomy:  NewTaxonomyHandler(base),
		tokens:    tokens,
		repo:      repo,
	}
}

// SetupRoutes registers the full API surface under /api, plus /health.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	authed := Authenticated(hm.tokens)
	admin := RequireAdmin()

	router.GET("/health", hm.health)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hm.Auth.Register)
		authGroup.POST("/login", hm.Auth.Login)
		authGroup.GET("/:userId/verify/:token", hm.Auth.VerifyEmail)
	}

	password := api.Group("/password")
	{
		password.POST("/reset-password-link", hm.Auth.SendResetLink)
		password.GET("/reset-password/:userId/:token", hm.Auth.ProbeResetLink)
		password.POST("/reset-password/:userId/:token", hm.Auth.ResetPassword)
	}

	users := api.Group("/users")
	{
		users.GET("/teacher", authed, hm.User.ListTeachers)
		users.GET("/teacher/count", authed, admin, hm.User.CountTeachers)
		users.GET("/teacher/specialization", authed, hm.User.ListTeachersBySpecialization)
		users.GET("/teacher/top", hm.User.TopTeachers)
		users.GET("/student", authed, admin, hm.User.ListStudents)
		users.GET("/student/count", authed, admin, hm.User.CountStudents)

		users.GET("/profile/:id", authed, hm.User.GetProfile)
		users.PUT("/profile/:id", authed, hm.User.UpdateProfile)
		users.DELETE("/profile/:id", authed, hm.User.DeleteAccount)
		users.POST("/profile/profile-photo-upload", authed, hm.User.UploadProfilePhoto)
	}

	courses := api.Group("/courses")
	{
		courses.POST("", authed, hm.Course.Create)
		courses.GET("", hm.Course.List)
		courses.GET("/category", hm.Course.ListByCategory)
		courses.GET("/count", hm.Course.Count)
		courses.GET("/my-subscribed", authed, hm.Course.MySubscriptions)
		courses.GET("/my-favorites", authed, hm.Course.MyFavorites)
		courses.GET("/:id", hm.Course.Get)
		courses.PUT("/:id", authed, hm.Course.Update)
		courses.PUT("/update-image/:id", authed, hm.Course.UpdateImage)
		courses.PUT("/like/:id", authed, hm.Course.ToggleLike)
		courses.PUT("/subscribe/:id", authed, hm.Course.ToggleSubscribe)
		courses.PUT("/favorite/:id", authed, hm.Course.ToggleFavorite)
		courses.DELETE("/:id", authed, hm.Course.Delete)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", authed, hm.Video.ListAll)
		videos.GET("/count", authed, admin, hm.Video.Count)
		videos.GET("/course/:id", authed, hm.Video.ListByCourse)
		videos.GET("/:id", authed, hm.Video.Get)
		videos.POST("/:id", authed, hm.Video.Create)
		videos.PUT("/:id", authed, hm.Video.Update)
		videos.PUT("/upload-image/:id", authed, hm.Video.UpdateImage)
		videos.DELETE("/:id", authed, hm.Video.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", authed, hm.Comment.Create)
		comments.GET("", authed, hm.Comment.ListAll)
		comments.GET("/count", authed, admin, hm.Comment.Count)
		comments.GET("/last", hm.Comment.ListLast)
		comments.GET("/video/:id", authed, hm.Comment.ListByVideo)
		comments.PUT("/:id", authed, hm.Comment.Update)
		comments.DELETE("/:id", authed, hm.Comment.Delete)
	}

	community := api.Group("/community", authed)
	{
		community.GET("/latest", hm.Community.ListLatest)
		community.GET("/search", hm.Community.Search)
		community.POST("/question", hm.Community.CreateQuestion)
		community.GET("/question/count", admin, hm.Community.CountQuestions)
		community.PUT("/question/:id", hm.Community.UpdateQuestion)
		community.DELETE("/question/:id", hm.Community.DeleteQuestion)
		community.GET("/question/:id/answers", hm.Community.ListAnswers)
		community.POST("/question/:id/answer", hm.Community.CreateAnswer)
		community.GET("/answer", hm.Community.ListAllAnswers)
		community.GET("/answer/count", admin, hm.Community.CountAnswers)
		community.PUT("/answer/:id", hm.Community.UpdateAnswer)
		community.DELETE("/answer/:id", hm.Community.DeleteAnswer)
	}

	categories := api.Group("/categories")
	{
		categories.POST("", authed, admin, hm.Taxonomy.CreateCategory)
		categories.GET("", hm.Taxonomy.ListCategories)
		categories.DELETE("/:id", authed, admin, hm.Taxonomy.DeleteCategory)
	}

	specializations := api.Group("/specializations")
	{
		specializations.POST("", authed, admin, hm.Taxonomy.CreateSpecialization)
		specializations.GET("", hm.Taxonomy.ListSpecializations)
		specializations.GET("/top-specializations", hm.Taxonomy.TopSpecializations)
		specializations.GET("/:id", authed, hm.Taxonomy.GetSpecialization)
		specializations.PUT("/:id", authed, admin, hm.Taxonomy.UpdateSpecialization)
		specializations.DELETE("/:id", authed, admin, hm.Taxonomy.DeleteSpecialization)
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
