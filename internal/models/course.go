package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is owned by a teacher. Likes, favorites and subscribers are
// user-id sets with idempotent toggle semantics; Videos keeps the upload
// order of the course's videos.
type Course struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	User        primitive.ObjectID   `json:"user" bson:"user"`
	Category    string               `json:"category" bson:"category"`
	Image       Photo                `json:"image" bson:"image"`
	Likes       []primitive.ObjectID `json:"likes" bson:"likes"`
	Favorites   []primitive.ObjectID `json:"favorites" bson:"favorites"`
	Subscribers []primitive.ObjectID `json:"subscribers" bson:"subscribers"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// CourseDetails is a Course with its owner and video documents resolved.
type CourseDetails struct {
	Course    `bson:",inline"`
	Owner     *User    `json:"owner,omitempty" bson:"owner,omitempty"`
	VideoDocs []*Video `json:"videoDocs,omitempty" bson:"videoDocs,omitempty"`
}

func (Course) CollectionName() string {
	return "courses"
}

// HasLike reports set membership for the likes toggle.
func (c *Course) HasLike(userID primitive.ObjectID) bool {
	return containsID(c.Likes, userID)
}

func (c *Course) HasFavorite(userID primitive.ObjectID) bool {
	return containsID(c.Favorites, userID)
}

func (c *Course) HasSubscriber(userID primitive.ObjectID) bool {
	return containsID(c.Subscribers, userID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
