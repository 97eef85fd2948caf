package validator

// RegisterRequest covers both roles; the specialization reference is
// required for teachers only (see the required_if rule and the
// conditional check in ValidateRegister).
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email,min=5,max=100"`
	Password       string `json:"password" validate:"required,min=8"`
	Role           string `json:"role" validate:"required,oneof=student teacher"`
	Bio            string `json:"bio" validate:"omitempty,max=1000"`
	PhoneNumber    string `json:"phoneNumber" validate:"omitempty,max=30"`
	WhatsappLink   string `json:"whatsappLink" validate:"omitempty,max=300"`
	Specialization string `json:"specialization" validate:"required_if=Role teacher,omitempty,objectid"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email,min=5,max=100"`
}

type NewPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest applies a partial merge; only provided fields change.
type UpdateProfileRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=2,max=100"`
	Password       *string `json:"password" validate:"omitempty,min=8"`
	Bio            *string `json:"bio" validate:"omitempty,max=1000"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,max=30"`
	WhatsappLink   *string `json:"whatsappLink" validate:"omitempty,max=300"`
	Specialization *string `json:"specialization" validate:"omitempty,objectid"`
}

type CourseCreateRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" form:"description" validate:"required,min=10"`
	Category    string `json:"category" form:"category" validate:"required"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	Category    *string `json:"category" validate:"omitempty"`
}

type VideoCreateRequest struct {
	Title string `json:"title" form:"title" validate:"required,min=2,max=200"`
}

type VideoUpdateRequest struct {
	Title *string `json:"title" form:"title" validate:"omitempty,min=2,max=200"`
}

type CommentCreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
	Video   string `json:"video" validate:"required,objectid"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type QuestionRequest struct {
	Content string `json:"content" validate:"required,min=5"`
}

type AnswerRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

type CategoryCreateRequest struct {
	Title string `json:"title" validate:"required,min=1,max=500"`
}

type SpecializationCreateRequest struct {
	Name string `json:"specializationName" validate:"required,min=2,max=100"`
}

type SpecializationUpdateRequest struct {
	Name *string `json:"specializationName" form:"specializationName" validate:"omitempty,min=2,max=100"`
}
