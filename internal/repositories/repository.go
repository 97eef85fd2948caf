package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is returned by every repository when a lookup matches no
// document. Callers translate it into their own not-found sentinel.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("duplicate document")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repository aggregates the per-entity repositories.
type Repository interface {
	User() UserRepository
	Token() TokenRepository
	Course() CourseRepository
	Video() VideoRepository
	Comment() CommentRepository
	Question() QuestionRepository
	Answer() AnswerRepository
	Category() CategoryRepository
	Specialization() SpecializationRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close(ctx context.Context) error
}
