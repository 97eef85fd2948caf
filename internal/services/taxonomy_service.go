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

type taxonomyService struct {
	repo   repositories.Repository
	media  storage.MediaStore
	logger *slog.Logger
}

func NewTaxonomyService(repo repositories.Repository, media storage.MediaStore, logger *slog.Logger) TaxonomyService {
	return &taxonomyService{repo: repo, media: media, logger: logger}
}

func (s *taxonomyService) CreateCategory(ctx context.Context, claims *auth.Claims, req *validator.CategoryCreateRequest) (*models.Category, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("manage categories")
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, NewPermissionError("manage categories")
	}

	if _, err := s.repo.Category().GetByTitle(ctx, req.Title); err == nil {
		return nil, ErrDuplicateCategory
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	category := &models.Category{Title: req.Title, User: userID}
	if err := s.repo.Category().Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.Category().List(ctx)
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	if !auth.IsAdmin(claims) {
		return NewPermissionError("manage categories")
	}
	if err := s.repo.Category().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *taxonomyService) CreateSpecialization(ctx context.Context, claims *auth.Claims, req *validator.SpecializationCreateRequest, photo *FileUpload) (*models.Specialization, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("manage specializations")
	}

	if _, err := s.repo.Specialization().GetByName(ctx, req.Name); err == nil {
		return nil, ErrDuplicateSpecialization
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	specialization := &models.Specialization{
		Name:  req.Name,
		Photo: models.DefaultSpecializationPhoto(),
	}
	if photo != nil {
		blob, err := s.media.UploadImage(ctx, photo.Reader, photo.Size)
		if err != nil {
			return nil, err
		}
		specialization.Photo = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	}

	if err := s.repo.Specialization().Create(ctx, specialization); err != nil {
		return nil, err
	}
	return specialization, nil
}

func (s *taxonomyService) GetSpecialization(ctx context.Context, id primitive.ObjectID) (*models.Specialization, error) {
	specialization, err := s.repo.Specialization().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSpecializationNotFound
		}
		return nil, err
	}
	return specialization, nil
}

func (s *taxonomyService) ListSpecializations(ctx context.Context) ([]*models.Specialization, error) {
	return s.repo.Specialization().List(ctx)
}

func (s *taxonomyService) UpdateSpecialization(ctx context.Context, claims *auth.Claims, id primitive.ObjectID, req *validator.SpecializationUpdateRequest, photo *FileUpload) (*models.Specialization, error) {
	if !auth.IsAdmin(claims) {
		return nil, NewPermissionError("manage specializations")
	}
	specialization, err := s.GetSpecialization(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != specialization.Name {
		if _, err := s.repo.Specialization().GetByName(ctx, *req.Name); err == nil {
			return nil, ErrDuplicateSpecialization
		} else if !repositories.IsNotFoundError(err) {
			return nil, err
		}
		specialization.Name = *req.Name
	}

	old := specialization.Photo
	if photo != nil {
		blob, err := s.media.UploadImage(ctx, photo.Reader, photo.Size)
		if err != nil {
			return nil, err
		}
		specialization.Photo = models.Photo{URL: blob.URL, PublicID: blob.PublicID}
	}

	if err := s.repo.Specialization().Update(ctx, specialization); err != nil {
		return nil, err
	}

	if photo != nil {
		if err := s.media.RemoveImage(ctx, old.PublicID); err != nil {
			s.logger.Warn("removing old specialization photo failed",
				"specialization_id", id.Hex(), "public_id", old.PublicID, "error", err)
		}
	}
	return specialization, nil
}

// DeleteSpecialization refuses while teachers still reference it; a
// specialization is part of those teachers' public identity.
func (s *taxonomyService) DeleteSpecialization(ctx context.Context, claims *auth.Claims, id primitive.ObjectID) error {
	if !auth.IsAdmin(claims) {
		return NewPermissionError("manage specializations")
	}
	specialization, err := s.GetSpecialization(ctx, id)
	if err != nil {
		return err
	}

	teachers, err := s.repo.User().ListTeachersBySpecialization(ctx, id)
	if err != nil {
		return err
	}
	if len(teachers) > 0 {
		return ErrSpecializationInUse
	}

	if err := s.repo.Specialization().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSpecializationNotFound
		}
		return err
	}
	if err := s.media.RemoveImage(ctx, specialization.Photo.PublicID); err != nil {
		s.logger.Warn("removing specialization photo failed",
			"specialization_id", id.Hex(), "error", err)
	}
	return nil
}

func (s *taxonomyService) TopSpecializations(ctx context.Context) ([]*models.TopSpecialization, error) {
	return s.repo.User().TopSpecializations(ctx, repositories.TopSpecializationsLimit)
}
