package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/storage"
)

// fakeRepo is an in-memory Repository for service tests. Lookups that
// miss return repositories.ErrNotFound exactly like the real driver
// mapping does.
type fakeRepo struct {
	mu sync.Mutex

	users           map[primitive.ObjectID]*models.User
	tokens          map[primitive.ObjectID]*models.VerificationToken
	courses         map[primitive.ObjectID]*models.Course
	videos          map[primitive.ObjectID]*models.Video
	comments        map[primitive.ObjectID]*models.Comment
	questions       map[primitive.ObjectID]*models.Question
	answers         map[primitive.ObjectID]*models.Answer
	categories      map[primitive.ObjectID]*models.Category
	specializations map[primitive.ObjectID]*models.Specialization
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:           map[primitive.ObjectID]*models.User{},
		tokens:          map[primitive.ObjectID]*models.VerificationToken{},
		courses:         map[primitive.ObjectID]*models.Course{},
		videos:          map[primitive.ObjectID]*models.Video{},
		comments:        map[primitive.ObjectID]*models.Comment{},
		questions:       map[primitive.ObjectID]*models.Question{},
		answers:         map[primitive.ObjectID]*models.Answer{},
		categories:      map[primitive.ObjectID]*models.Category{},
		specializations: map[primitive.ObjectID]*models.Specialization{},
	}
}

func (f *fakeRepo) User() repositories.UserRepository       { return &fakeUserRepo{f} }
func (f *fakeRepo) Token() repositories.TokenRepository     { return &fakeTokenRepo{f} }
func (f *fakeRepo) Course() repositories.CourseRepository   { return &fakeCourseRepo{f} }
func (f *fakeRepo) Video() repositories.VideoRepository     { return &fakeVideoRepo{f} }
func (f *fakeRepo) Comment() repositories.CommentRepository { return &fakeCommentRepo{f} }
func (f *fakeRepo) Question() repositories.QuestionRepository {
	return &fakeQuestionRepo{f}
}
func (f *fakeRepo) Answer() repositories.AnswerRepository     { return &fakeAnswerRepo{f} }
func (f *fakeRepo) Category() repositories.CategoryRepository { return &fakeCategoryRepo{f} }
func (f *fakeRepo) Specialization() repositories.SpecializationRepository {
	return &fakeSpecializationRepo{f}
}
func (f *fakeRepo) Ping(context.Context) error  { return nil }
func (f *fakeRepo) Close(context.Context) error { return nil }

// ---- users ----

type fakeUserRepo struct{ f *fakeRepo }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if u, ok := r.f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PublicProfile{User: *user}, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.users, id)
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]*models.PublicProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.PublicProfile
	for _, u := range r.f.users {
		if u.Role == role {
			out = append(out, &models.PublicProfile{User: *u})
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListTeachersBySpecialization(_ context.Context, specializationID primitive.ObjectID) ([]*models.PublicProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.PublicProfile
	for _, u := range r.f.users {
		if u.Role == models.RoleTeacher && u.Specialization != nil && *u.Specialization == specializationID {
			out = append(out, &models.PublicProfile{User: *u})
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var n int64
	for _, u := range r.f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) TopTeachers(_ context.Context, limit int) ([]*models.TopTeacher, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var tops []*models.TopTeacher
	for _, u := range r.f.users {
		if u.Role != models.RoleTeacher {
			continue
		}
		count := 0
		for _, c := range r.f.courses {
			if c.User == u.ID {
				count++
			}
		}
		tops = append(tops, &models.TopTeacher{
			ID: u.ID, Username: u.Username, Email: u.Email, CoursesCount: count,
		})
	}
	sort.Slice(tops, func(i, j int) bool { return tops[i].CoursesCount > tops[j].CoursesCount })
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops, nil
}

func (r *fakeUserRepo) TopSpecializations(_ context.Context, limit int) ([]*models.TopSpecialization, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	counts := map[primitive.ObjectID]int{}
	for _, u := range r.f.users {
		if u.Role == models.RoleTeacher && u.Specialization != nil {
			counts[*u.Specialization]++
		}
	}
	var tops []*models.TopSpecialization
	for id, n := range counts {
		spec := r.f.specializations[id]
		if spec == nil {
			continue
		}
		tops = append(tops, &models.TopSpecialization{
			SpecializationID: id, Name: spec.Name, Photo: spec.Photo, NumberOfTeachers: n,
		})
	}
	sort.Slice(tops, func(i, j int) bool { return tops[i].NumberOfTeachers > tops[j].NumberOfTeachers })
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops, nil
}

// ---- tokens ----

type fakeTokenRepo struct{ f *fakeRepo }

func (r *fakeTokenRepo) Create(_ context.Context, token *models.VerificationToken) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, t := range r.f.tokens {
		if t.UserID == token.UserID {
			return repositories.ErrDuplicate
		}
	}
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	r.f.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.VerificationToken, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, t := range r.f.tokens {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTokenRepo) GetByUserAndToken(_ context.Context, userID primitive.ObjectID, token string) (*models.VerificationToken, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, t := range r.f.tokens {
		if t.UserID == userID && t.Token == token {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTokenRepo) Update(_ context.Context, token *models.VerificationToken) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.tokens[token.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.tokens[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.tokens, id)
	return nil
}

func (r *fakeTokenRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, t := range r.f.tokens {
		if t.UserID == userID {
			delete(r.f.tokens, id)
		}
	}
	return nil
}

// ---- courses ----

type fakeCourseRepo struct{ f *fakeRepo }

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	r.f.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if c, ok := r.f.courses[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCourseRepo) GetDetails(ctx context.Context, id primitive.ObjectID) (*models.CourseDetails, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CourseDetails{Course: *course}, nil
}

func (r *fakeCourseRepo) GetByTitleAndOwner(_ context.Context, title string, ownerID primitive.ObjectID) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, c := range r.f.courses {
		if c.Title == title && c.User == ownerID {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.courses, id)
	return nil
}

func (r *fakeCourseRepo) List(_ context.Context, _ repositories.CourseFilters) ([]*models.CourseDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.CourseDetails
	for _, c := range r.f.courses {
		out = append(out, &models.CourseDetails{Course: *c})
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByCategory(_ context.Context, category string) ([]*models.CourseDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.CourseDetails
	for _, c := range r.f.courses {
		if c.Category == category {
			out = append(out, &models.CourseDetails{Course: *c})
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Course
	for _, c := range r.f.courses {
		if c.User == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) ListBySubscriber(_ context.Context, userID primitive.ObjectID) ([]*models.Course, error) {
	return r.listByMember(userID, repositories.CourseSubscribers)
}

func (r *fakeCourseRepo) ListByFavorite(_ context.Context, userID primitive.ObjectID) ([]*models.Course, error) {
	return r.listByMember(userID, repositories.CourseFavorites)
}

func (r *fakeCourseRepo) listByMember(userID primitive.ObjectID, field repositories.CourseMemberField) ([]*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Course
	for _, c := range r.f.courses {
		var member bool
		switch field {
		case repositories.CourseSubscribers:
			member = c.HasSubscriber(userID)
		case repositories.CourseFavorites:
			member = c.HasFavorite(userID)
		case repositories.CourseLikes:
			member = c.HasLike(userID)
		}
		if member {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Count(_ context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.courses)), nil
}

func (r *fakeCourseRepo) AddMember(_ context.Context, courseID primitive.ObjectID, field repositories.CourseMemberField, userID primitive.ObjectID) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.courses[courseID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	set := r.memberSet(c, field)
	for _, id := range *set {
		if id == userID {
			return c, nil
		}
	}
	*set = append(*set, userID)
	return c, nil
}

func (r *fakeCourseRepo) RemoveMember(_ context.Context, courseID primitive.ObjectID, field repositories.CourseMemberField, userID primitive.ObjectID) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.courses[courseID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	set := r.memberSet(c, field)
	out := (*set)[:0]
	for _, id := range *set {
		if id != userID {
			out = append(out, id)
		}
	}
	*set = out
	return c, nil
}

func (r *fakeCourseRepo) memberSet(c *models.Course, field repositories.CourseMemberField) *[]primitive.ObjectID {
	switch field {
	case repositories.CourseLikes:
		return &c.Likes
	case repositories.CourseFavorites:
		return &c.Favorites
	default:
		return &c.Subscribers
	}
}

func (r *fakeCourseRepo) PushVideo(_ context.Context, courseID, videoID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.courses[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Videos = append(c.Videos, videoID)
	return nil
}

func (r *fakeCourseRepo) PullVideo(_ context.Context, courseID, videoID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.courses[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	out := c.Videos[:0]
	for _, id := range c.Videos {
		if id != videoID {
			out = append(out, id)
		}
	}
	c.Videos = out
	return nil
}

// ---- videos ----

type fakeVideoRepo struct{ f *fakeRepo }

func (r *fakeVideoRepo) Create(_ context.Context, video *models.Video) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	r.f.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if v, ok := r.f.videos[id]; ok {
		return v, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeVideoRepo) GetByTitleAndCourse(_ context.Context, title string, courseID primitive.ObjectID) (*models.Video, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, v := range r.f.videos {
		if v.Title == title && v.Course == courseID {
			return v, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeVideoRepo) Update(_ context.Context, video *models.Video) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.videos, id)
	return nil
}

func (r *fakeVideoRepo) ListAll(_ context.Context) ([]*models.VideoWithCourse, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.VideoWithCourse
	for _, v := range r.f.videos {
		out = append(out, &models.VideoWithCourse{Video: *v})
	}
	return out, nil
}

func (r *fakeVideoRepo) ListByCourse(_ context.Context, courseID primitive.ObjectID) ([]*models.Video, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Video
	for _, v := range r.f.videos {
		if v.Course == courseID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) DeleteByCourse(_ context.Context, courseID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, v := range r.f.videos {
		if v.Course == courseID {
			delete(r.f.videos, id)
		}
	}
	return nil
}

func (r *fakeVideoRepo) Count(_ context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.videos)), nil
}

// ---- comments ----

type fakeCommentRepo struct{ f *fakeRepo }

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	r.f.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if c, ok := r.f.comments[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListAll(_ context.Context) ([]*models.CommentDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.CommentDetails
	for _, c := range r.f.comments {
		out = append(out, &models.CommentDetails{Comment: *c})
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID primitive.ObjectID) ([]*models.CommentDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.CommentDetails
	for _, c := range r.f.comments {
		if c.Video == videoID {
			out = append(out, &models.CommentDetails{Comment: *c})
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListLast(ctx context.Context, limit int) ([]*models.CommentDetails, error) {
	all, _ := r.ListAll(ctx)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeCommentRepo) DeleteByVideos(_ context.Context, videoIDs []primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, c := range r.f.comments {
		for _, vid := range videoIDs {
			if c.Video == vid {
				delete(r.f.comments, id)
			}
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, c := range r.f.comments {
		if c.User == userID {
			delete(r.f.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) Count(_ context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.comments)), nil
}

// ---- questions ----

type fakeQuestionRepo struct{ f *fakeRepo }

func (r *fakeQuestionRepo) Create(_ context.Context, question *models.Question) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}
	r.f.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if q, ok := r.f.questions[id]; ok {
		return q, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *models.Question) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.questions[question.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.questions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.questions, id)
	return nil
}

func (r *fakeQuestionRepo) ListLatest(_ context.Context) ([]*models.QuestionDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.QuestionDetails
	for _, q := range r.f.questions {
		out = append(out, &models.QuestionDetails{Question: *q})
	}
	return out, nil
}

func (r *fakeQuestionRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Question, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Question
	for _, q := range r.f.questions {
		if q.User == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, q := range r.f.questions {
		if q.User == userID {
			delete(r.f.questions, id)
		}
	}
	return nil
}

func (r *fakeQuestionRepo) Search(ctx context.Context, _ string) ([]*models.QuestionDetails, error) {
	return r.ListLatest(ctx)
}

func (r *fakeQuestionRepo) Count(_ context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.questions)), nil
}

// ---- answers ----

type fakeAnswerRepo struct{ f *fakeRepo }

func (r *fakeAnswerRepo) Create(_ context.Context, answer *models.Answer) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if answer.ID.IsZero() {
		answer.ID = primitive.NewObjectID()
	}
	r.f.answers[answer.ID] = answer
	return nil
}

func (r *fakeAnswerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Answer, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.answers[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAnswerRepo) Update(_ context.Context, answer *models.Answer) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.answers[answer.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.answers[answer.ID] = answer
	return nil
}

func (r *fakeAnswerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.answers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.answers, id)
	return nil
}

func (r *fakeAnswerRepo) ListAll(_ context.Context) ([]*models.AnswerDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.AnswerDetails
	for _, a := range r.f.answers {
		out = append(out, &models.AnswerDetails{Answer: *a})
	}
	return out, nil
}

func (r *fakeAnswerRepo) ListByQuestion(_ context.Context, questionID primitive.ObjectID) ([]*models.AnswerDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.AnswerDetails
	for _, a := range r.f.answers {
		if a.Question == questionID {
			out = append(out, &models.AnswerDetails{Answer: *a})
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) DeleteByQuestions(_ context.Context, questionIDs []primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, a := range r.f.answers {
		for _, qid := range questionIDs {
			if a.Question == qid {
				delete(r.f.answers, id)
			}
		}
	}
	return nil
}

func (r *fakeAnswerRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, a := range r.f.answers {
		if a.User == userID {
			delete(r.f.answers, id)
		}
	}
	return nil
}

func (r *fakeAnswerRepo) Count(_ context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.answers)), nil
}

// ---- categories ----

type fakeCategoryRepo struct{ f *fakeRepo }

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	r.f.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if c, ok := r.f.categories[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) GetByTitle(_ context.Context, title string) (*models.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, c := range r.f.categories {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Category
	for _, c := range r.f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.categories, id)
	return nil
}

// ---- specializations ----

type fakeSpecializationRepo struct{ f *fakeRepo }

func (r *fakeSpecializationRepo) Create(_ context.Context, specialization *models.Specialization) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if specialization.ID.IsZero() {
		specialization.ID = primitive.NewObjectID()
	}
	r.f.specializations[specialization.ID] = specialization
	return nil
}

func (r *fakeSpecializationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Specialization, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if s, ok := r.f.specializations[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSpecializationRepo) GetByName(_ context.Context, name string) (*models.Specialization, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, s := range r.f.specializations {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSpecializationRepo) List(_ context.Context) ([]*models.Specialization, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []*models.Specialization
	for _, s := range r.f.specializations {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSpecializationRepo) Update(_ context.Context, specialization *models.Specialization) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.specializations[specialization.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.specializations[specialization.ID] = specialization
	return nil
}

func (r *fakeSpecializationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.specializations[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.f.specializations, id)
	return nil
}

// ---- media store and mailer fakes ----

// fakeMedia records uploads and removals.
type fakeMedia struct {
	mu       sync.Mutex
	uploads  int
	removals []string
}

func (m *fakeMedia) UploadImage(_ context.Context, _ io.Reader, _ int64) (*storage.Blob, error) {
	return m.upload("img")
}

func (m *fakeMedia) UploadVideo(_ context.Context, _ io.Reader, _ int64) (*storage.Blob, error) {
	return m.upload("vid")
}

func (m *fakeMedia) upload(prefix string) (*storage.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	id := primitive.NewObjectID().Hex()
	return &storage.Blob{
		URL:      "https://media.test/" + prefix + "/" + id,
		PublicID: prefix + "-" + id,
	}, nil
}

func (m *fakeMedia) RemoveImage(_ context.Context, publicID string) error {
	return m.remove(publicID)
}

func (m *fakeMedia) RemoveVideo(_ context.Context, publicID string) error {
	return m.remove(publicID)
}

func (m *fakeMedia) remove(publicID string) error {
	if publicID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removals = append(m.removals, publicID)
	return nil
}

// fakeMailer records sent messages.
type fakeMailer struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
}

func (m *fakeMailer) SendVerification(to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, to)
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, to)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
