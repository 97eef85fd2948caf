package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Video     primitive.ObjectID `json:"video" bson:"video"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CommentDetails carries the author and video references resolved for
// listings.
type CommentDetails struct {
	Comment     `bson:",inline"`
	Username    string `json:"username" bson:"username"`
	UserPhoto   Photo  `json:"userPhoto" bson:"userPhoto"`
	VideoTitle  string `json:"videoTitle" bson:"videoTitle"`
	CourseTitle string `json:"courseTitle,omitempty" bson:"courseTitle,omitempty"`
}

func (Comment) CollectionName() string {
	return "comments"
}
