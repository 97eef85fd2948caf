package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a community board post. Content is full-text indexed, so
// search results come back relevance-sorted.
type Question struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Answer struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Question  primitive.ObjectID `json:"question" bson:"question"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// QuestionDetails resolves the author for board listings and search results.
type QuestionDetails struct {
	Question  `bson:",inline"`
	Username  string `json:"username" bson:"username"`
	UserPhoto Photo  `json:"userPhoto" bson:"userPhoto"`
}

// AnswerDetails resolves the author and the question excerpt.
type AnswerDetails struct {
	Answer          `bson:",inline"`
	Username        string `json:"username" bson:"username"`
	UserPhoto       Photo  `json:"userPhoto" bson:"userPhoto"`
	QuestionContent string `json:"questionContent" bson:"questionContent"`
}

func (Question) CollectionName() string {
	return "questions"
}

func (Answer) CollectionName() string {
	return "answers"
}
