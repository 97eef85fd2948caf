package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/mailer"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/storage"
	"github.com/eduvia/elearning-service/internal/validator"
)

type userService struct {
	repo    repositories.Repository
	media   storage.MediaStore
	mailer  mailer.Mailer
	courses CourseService
	logger  *slog.Logger
}

// NewUserService wires the account service. It delegates to the course
// service when deleting a teacher account so course cascades stay in one
// place.
func NewUserService(repo repositories.Repository, media storage.MediaStore, m mailer.Mailer, courses CourseService, logger *slog.Logger) UserService {
	return &userService{repo: repo, media: media, mailer: m, courses: courses, logger: logger}
}

func (s *userService) ListTeachers(ctx context.Context) ([]*models.PublicProfile, error) {
	return s.repo.User().ListByRole(ctx, models.RoleTeacher)
}

func (s *userService) ListStudents(ctx context.Context) ([]*models.PublicProfile, error) {
	return s.repo.User().ListByRole(ctx, models.RoleStudent)
}

// ListTeachersBySpecialization resolves a specialization by its display
// name, then lists the teachers assigned to it.
func (s *userService) ListTeachersBySpecialization(ctx context.Context, specializationName string) ([]*models.PublicProfile, error) {
	specialization, err := s.repo.Specialization().GetByName(ctx, specializationName)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSpecializationNotFound
		}
		return nil, err
	}
	return s.repo.User().ListTeachersBySpecialization(ctx, specialization.ID)
}

func (s *userService) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return s.repo.User().CountByRole(ctx, role)
}

func (s *userService) TopTeachers(ctx context.Context) ([]*models.TopTeacher, error) {
	return s.repo.User().TopTeachers(ctx, repositories.TopTeachersLimit)
}

func (s *userService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error) {
	profile, err := s.repo.User().GetProfile(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.UpdateProfileRequest) (*models.User, error) {
	// Profiles are self-service; admins moderate by deleting accounts,
	// not by editing them.
	if !auth.IsSelf(claims, id) {
		return nil, NewPermissionError("update this profile")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.WhatsappLink != nil {
		user.WhatsappLink = *req.WhatsappLink
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.Password = string(hash)
	}
	if req.Specialization != nil {
		specID, err := primitive.ObjectIDFromHex(*req.Specialization)
		if err != nil {
			return nil, ErrSpecializationNotFound
		}
		if _, err := s.repo.Specialization().GetByID(ctx, specID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrSpecializationNotFound
			}
			return nil, err
		}
		user.Specialization = &specID
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and everything it owns: a teacher's
// courses (with their videos, comments and blobs), the user's own comments,
// questions and answers, any pending token, and the profile photo blob.
func (s *userService) DeleteAccount(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	if !auth.IsSelfOrAdmin(claims, id) {
		return NewPermissionError("delete this account")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return err
	}

	steps := []cascadeStep{}

	if user.Role == models.RoleTeacher {
		courses, err := s.repo.Course().ListByOwner(ctx, id)
		if err != nil {
			return err
		}
		for _, course := range courses {
			course := course
			steps = append(steps, cascadeStep{
				name: "course " + course.ID.Hex(),
				run: func(ctx context.Context) error {
					return s.courses.Delete(ctx, claims, course.ID)
				},
			})
		}
	}

	questions, err := s.repo.Question().ListByUser(ctx, id)
	if err != nil {
		return err
	}
	questionIDs := make([]primitive.ObjectID, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	steps = append(steps,
		cascadeStep{name: "answers to own questions", run: func(ctx context.Context) error {
			return s.repo.Answer().DeleteByQuestions(ctx, questionIDs)
		}},
		cascadeStep{name: "own questions", run: func(ctx context.Context) error {
			return s.repo.Question().DeleteByUser(ctx, id)
		}},
		cascadeStep{name: "own answers", run: func(ctx context.Context) error {
			return s.repo.Answer().DeleteByUser(ctx, id)
		}},
		cascadeStep{name: "own comments", run: func(ctx context.Context) error {
			return s.repo.Comment().DeleteByUser(ctx, id)
		}},
		cascadeStep{name: "pending tokens", run: func(ctx context.Context) error {
			return s.repo.Token().DeleteByUser(ctx, id)
		}},
		cascadeStep{name: "profile photo blob", bestEffort: true, run: func(ctx context.Context) error {
			return s.media.RemoveImage(ctx, user.ProfilePhoto.PublicID)
		}},
		cascadeStep{name: "user document", run: func(ctx context.Context) error {
			return s.repo.User().Delete(ctx, id)
		}},
	)

	if err := runCascade(ctx, s.logger, "user", steps); err != nil {
		return err
	}
	s.logger.Info("account deleted", "user_id", id.Hex(), "role", user.Role)
	return nil
}

func (s *userService) UploadProfilePhoto(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, file FileUpload) (*models.User, error) {
	if !auth.IsSelfOrAdmin(claims, id) {
		return nil, NewPermissionError("change this profile photo")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	blob, err := s.media.UploadImage(ctx, file.Reader, file.Size)
	if err != nil {
		return nil, err
	}

	old := user.ProfilePhoto
	user.ProfilePhoto = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}

	// Old blob goes last so a failed persist never orphans the account photo.
	if err := s.media.RemoveImage(ctx, old.PublicID); err != nil {
		s.logger.Warn("removing old profile photo failed",
			"user_id", id.Hex(), "public_id", old.PublicID, "error", err)
	}
	return user, nil
}

// SendPasswordResetLink mails a reset link. A pending token is rotated
// rather than reused, so only the most recent link works.
func (s *userService) SendPasswordResetLink(ctx context.Context, email string) error {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := newSecureToken()
	if err != nil {
		return err
	}

	existing, err := s.repo.Token().GetByUser(ctx, user.ID)
	switch {
	case err == nil:
		existing.Token = token
		if err := s.repo.Token().Update(ctx, existing); err != nil {
			return err
		}
	case repositories.IsNotFoundError(err):
		doc := &models.VerificationToken{UserID: user.ID, Token: token}
		if err := s.repo.Token().Create(ctx, doc); err != nil {
			return err
		}
	default:
		return err
	}

	return s.mailer.SendPasswordReset(user.Email, user.ID.Hex(), token)
}

// ProbeResetToken checks a reset link without consuming it, so the client
// can show the new-password form only for live links.
func (s *userService) ProbeResetToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvalidLink
		}
		return err
	}
	if _, err := s.repo.Token().GetByUserAndToken(ctx, userID, token); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvalidLink
		}
		return err
	}
	return nil
}

// ResetPassword consumes a live reset token and stores the new password.
// Resetting also verifies the account; the user has proven mailbox access.
func (s *userService) ResetPassword(ctx context.Context, userID primitive.ObjectID, token, newPassword string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvalidLink
		}
		return err
	}
	doc, err := s.repo.Token().GetByUserAndToken(ctx, userID, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvalidLink
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.Password = string(hash)
	user.IsAccountVerified = true

	if err := s.repo.User().Update(ctx, user); err != nil {
		return err
	}
	if err := s.repo.Token().Delete(ctx, doc.ID); err != nil {
		s.logger.Warn("deleting consumed reset token failed",
			"user_id", userID.Hex(), "error", err)
	}

	s.logger.Info("password reset", "user_id", userID.Hex())
	return nil
}
