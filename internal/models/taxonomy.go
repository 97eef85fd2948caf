package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a flat course label, unique by title.
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Specialization is a teacher subject area, unique by name.
type Specialization struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"specializationName" bson:"specializationName"`
	Photo     Photo              `json:"specializationPhoto" bson:"specializationPhoto"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TopSpecialization is one row of the teachers-per-specialization
// aggregation.
type TopSpecialization struct {
	SpecializationID primitive.ObjectID `json:"specializationId" bson:"specializationId"`
	Name             string             `json:"specializationName" bson:"specializationName"`
	Photo            Photo              `json:"specializationPhoto" bson:"specializationPhoto"`
	NumberOfTeachers int                `json:"numberOfTeachers" bson:"numberOfTeachers"`
}

func (Category) CollectionName() string {
	return "categories"
}

func (Specialization) CollectionName() string {
	return "specializations"
}
