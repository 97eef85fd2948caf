package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User is a platform account. Teacher accounts additionally carry contact
// fields and a required specialization reference.
type User struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Username          string              `json:"username" bson:"username"`
	Email             string              `json:"email" bson:"email"`
	Password          string              `json:"-" bson:"password"`
	ProfilePhoto      Photo               `json:"profilePhoto" bson:"profilePhoto"`
	Bio               string              `json:"bio,omitempty" bson:"bio,omitempty"`
	Role              UserRole            `json:"role" bson:"role"`
	IsAdmin           bool                `json:"isAdmin" bson:"isAdmin"`
	IsAccountVerified bool                `json:"isAccountVerified" bson:"isAccountVerified"`
	PhoneNumber       string              `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	WhatsappLink      string              `json:"whatsappLink,omitempty" bson:"whatsappLink,omitempty"`
	Specialization    *primitive.ObjectID `json:"specialization,omitempty" bson:"specialization,omitempty"`
	CreatedAt         time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// PublicProfile is a User with relations resolved for profile and listing
// endpoints. The password hash never leaves the repository layer.
type PublicProfile struct {
	User              `bson:",inline"`
	Courses           []*Course       `json:"courses,omitempty" bson:"courses,omitempty"`
	Questions         []*Question     `json:"questions,omitempty" bson:"questions,omitempty"`
	SpecializationDoc *Specialization `json:"specializationDoc,omitempty" bson:"specializationDoc,omitempty"`
}

// TopTeacher is one row of the courses-per-teacher aggregation.
type TopTeacher struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id"`
	Username       string              `json:"username" bson:"username"`
	Email          string              `json:"email" bson:"email"`
	ProfilePhoto   Photo               `json:"profilePhoto" bson:"profilePhoto"`
	Specialization *primitive.ObjectID `json:"specialization,omitempty" bson:"specialization,omitempty"`
	CoursesCount   int                 `json:"coursesCount" bson:"coursesCount"`
}

func (User) CollectionName() string {
	return "users"
}
