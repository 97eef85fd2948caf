package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/mailer"
	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
	"github.com/eduvia/elearning-service/internal/validator"
)

type authService struct {
	repo   repositories.Repository
	tokens *auth.TokenManager
	mailer mailer.Mailer
	logger *slog.Logger
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, m mailer.Mailer, logger *slog.Logger) AuthService {
	return &authService{repo: repo, tokens: tokens, mailer: m, logger: logger}
}

// newSecureToken returns a 64-character hex string from 32 random bytes.
// Used for both email-verification and password-reset links.
func newSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	if _, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         models.UserRole(req.Role),
		Bio:          req.Bio,
		PhoneNumber:  req.PhoneNumber,
		WhatsappLink: req.WhatsappLink,
		ProfilePhoto: models.DefaultProfilePhoto(),
	}

	if user.Role == models.RoleTeacher {
		specID, err := primitive.ObjectIDFromHex(req.Specialization)
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user.Password = string(hash)

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		// The account exists either way; the user gets a fresh link on the
		// next login attempt.
		s.logger.Error("sending verification mail failed",
			"user_id", user.ID.Hex(), "error", err)
	}

	s.logger.Info("user registered", "user_id", user.ID.Hex(), "role", user.Role)
	return user, nil
}

func (s *authService) sendVerification(ctx context.Context, user *models.User) error {
	token, err := newSecureToken()
	if err != nil {
		return err
	}
	doc := &models.VerificationToken{UserID: user.ID, Token: token}
	if err := s.repo.Token().Create(ctx, doc); err != nil {
		return err
	}
	return s.mailer.SendVerification(user.Email, user.ID.Hex(), token)
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (string, *models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsAccountVerified {
		// Re-send the activation link, unless one is already pending.
		if _, err := s.repo.Token().GetByUser(ctx, user.ID); repositories.IsNotFoundError(err) {
			if err := s.sendVerification(ctx, user); err != nil {
				s.logger.Error("re-sending verification mail failed",
					"user_id", user.ID.Hex(), "error", err)
			}
		}
		return "", nil, ErrAccountNotVerified
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, userID primitive.ObjectID, token string) error {
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

	user.IsAccountVerified = true
	if err := s.repo.User().Update(ctx, user); err != nil {
		return err
	}
	if err := s.repo.Token().Delete(ctx, doc.ID); err != nil {
		s.logger.Warn("deleting consumed verification token failed",
			"user_id", userID.Hex(), "error", err)
	}

	s.logger.Info("account verified", "user_id", userID.Hex())
	return nil
}
