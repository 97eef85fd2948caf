package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/validator"
)

func claimsFor(user *models.User) *auth.Claims {
	return &auth.Claims{UserID: user.ID.Hex(), Role: user.Role, IsAdmin: user.IsAdmin}
}

func seedTeacher(repo *fakeRepo, email string) *models.User {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: strings.Split(email, "@")[0],
		Email:    email,
		Role:     models.RoleTeacher,
	}
	repo.users[user.ID] = user
	return user
}

func seedStudent(repo *fakeRepo, email string) *models.User {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: strings.Split(email, "@")[0],
		Email:    email,
		Role:     models.RoleStudent,
	}
	repo.users[user.ID] = user
	return user
}

func newCourseFixture(t *testing.T) (*fakeRepo, *fakeMedia, CourseService) {
	t.Helper()
	repo := newFakeRepo()
	media := &fakeMedia{}
	return repo, media, NewCourseService(repo, media, testLogger())
}

func createCourse(t *testing.T, svc CourseService, owner *models.User, title string) *models.Course {
	t.Helper()
	course, err := svc.Create(context.Background(), claimsFor(owner), &validator.CourseCreateRequest{
		Title:       title,
		Description: "a course about " + title,
		Category:    "programming",
	}, &FileUpload{Reader: strings.NewReader("img"), Size: 3})
	require.NoError(t, err)
	return course
}

func TestCourseCreateStudentForbidden(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	student := seedStudent(repo, "sara@example.com")

	_, err := svc.Create(context.Background(), claimsFor(student), &validator.CourseCreateRequest{
		Title: "Go 101", Description: "an introduction", Category: "programming",
	}, nil)
	assert.True(t, IsPermissionError(err))
}

func TestCourseTitleUniquePerOwner(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	other := seedTeacher(repo, "nour@example.com")

	createCourse(t, svc, owner, "Go 101")

	_, err := svc.Create(context.Background(), claimsFor(owner), &validator.CourseCreateRequest{
		Title: "Go 101", Description: "a second attempt", Category: "programming",
	}, nil)
	assert.ErrorIs(t, err, ErrDuplicateCourseTitle)

	// A different teacher may reuse the title.
	createCourse(t, svc, other, "Go 101")
}

func TestCourseToggleRoundTrip(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	student := seedStudent(repo, "sara@example.com")
	course := createCourse(t, svc, owner, "Go 101")

	got, err := svc.ToggleSubscribe(context.Background(), claimsFor(student), course.ID)
	require.NoError(t, err)
	assert.True(t, got.HasSubscriber(student.ID))

	got, err = svc.ToggleSubscribe(context.Background(), claimsFor(student), course.ID)
	require.NoError(t, err)
	assert.False(t, got.HasSubscriber(student.ID))
	assert.Empty(t, got.Subscribers)
}

func TestCourseSubscribeAndFavoriteStudentOnly(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	other := seedTeacher(repo, "nour@example.com")
	course := createCourse(t, svc, owner, "Go 101")

	_, err := svc.ToggleSubscribe(context.Background(), claimsFor(other), course.ID)
	assert.True(t, IsPermissionError(err))

	_, err = svc.ToggleFavorite(context.Background(), claimsFor(other), course.ID)
	assert.True(t, IsPermissionError(err))

	// Likes stay open to any signed-in account.
	got, err := svc.ToggleLike(context.Background(), claimsFor(other), course.ID)
	require.NoError(t, err)
	assert.True(t, got.HasLike(other.ID))
}

func TestCourseMySubscriptions(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	student := seedStudent(repo, "sara@example.com")
	a := createCourse(t, svc, owner, "Go 101")
	createCourse(t, svc, owner, "Go 201")

	_, err := svc.ToggleSubscribe(context.Background(), claimsFor(student), a.ID)
	require.NoError(t, err)

	mine, err := svc.MySubscriptions(context.Background(), claimsFor(student))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)
}

func TestCourseUpdateOwnership(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	other := seedTeacher(repo, "nour@example.com")
	admin := seedTeacher(repo, "root@example.com")
	admin.IsAdmin = true
	course := createCourse(t, svc, owner, "Go 101")

	newTitle := "Go for professionals"
	_, err := svc.Update(context.Background(), claimsFor(other), course.ID, &validator.CourseUpdateRequest{Title: &newTitle})
	assert.True(t, IsPermissionError(err))

	got, err := svc.Update(context.Background(), claimsFor(admin), course.ID, &validator.CourseUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, got.Title)
}

func TestCourseDeleteCascades(t *testing.T) {
	repo, media, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")
	student := seedStudent(repo, "sara@example.com")
	course := createCourse(t, svc, owner, "Go 101")

	videoSvc := NewVideoService(repo, media, testLogger())
	video, err := videoSvc.Create(context.Background(), claimsFor(owner), course.ID,
		&validator.VideoCreateRequest{Title: "lesson 1"},
		FileUpload{Reader: strings.NewReader("vid"), Size: 3})
	require.NoError(t, err)

	commentSvc := NewCommentService(repo, testLogger())
	_, err = commentSvc.Create(context.Background(), claimsFor(student), &validator.CommentCreateRequest{
		Content: "great lesson", Video: video.ID.Hex(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), claimsFor(owner), course.ID))

	assert.Empty(t, repo.courses)
	assert.Empty(t, repo.videos)
	assert.Empty(t, repo.comments, "comments on the course's videos must be removed")
	assert.Contains(t, media.removals, video.PublicID)
	assert.Contains(t, media.removals, course.Image.PublicID)
}

func TestCourseDeleteNotFound(t *testing.T) {
	repo, _, svc := newCourseFixture(t)
	owner := seedTeacher(repo, "amr@example.com")

	err := svc.Delete(context.Background(), claimsFor(owner), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
