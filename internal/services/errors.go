package services

import (
	"errors"
	"fmt"
)

// Not-found sentinels, one per entity. Handlers map them to 404.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrVideoNotFound          = errors.New("video not found")
	ErrCommentNotFound        = errors.New("comment not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrAnswerNotFound         = errors.New("answer not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrSpecializationNotFound = errors.New("specialization not found")
)

// Conflict and request-level sentinels. Handlers map them to 400.
var (
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrDuplicateCourseTitle    = errors.New("you already have a course with this title")
	ErrDuplicateVideoTitle     = errors.New("this course already has a video with this title")
	ErrDuplicateCategory       = errors.New("category already exists")
	ErrDuplicateSpecialization = errors.New("specialization already exists")

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so login failures don't reveal which one it was.
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountNotVerified  = errors.New("account email is not verified")
	ErrInvalidLink         = errors.New("invalid link")
	ErrSpecializationInUse = errors.New("specialization is assigned to teachers")
)

// PermissionError is an authorization failure. Handlers map it to 403.
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("not allowed to %s", e.Action)
}

func NewPermissionError(action string) *PermissionError {
	return &PermissionError{Action: action}
}

// IsPermissionError reports whether err is an authorization failure.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
