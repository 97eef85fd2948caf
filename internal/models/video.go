package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video belongs to exactly one course. URL/PublicID reference the media
// blob, Image the optional poster.
type Video struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	URL       string             `json:"url" bson:"url"`
	PublicID  string             `json:"publicId" bson:"publicId"`
	Image     Photo              `json:"image" bson:"image"`
	Course    primitive.ObjectID `json:"course" bson:"course"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VideoWithCourse resolves the owning course title for admin listings.
type VideoWithCourse struct {
	Video       `bson:",inline"`
	CourseTitle string `json:"courseTitle" bson:"courseTitle"`
}

func (Video) CollectionName() string {
	return "videos"
}
