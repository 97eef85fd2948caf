package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduvia/elearning-service/internal/models"
)

type questionRepository struct {
	coll *mongo.Collection
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, question)
	if err != nil {
		return mapError(err)
	}
	question.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		return nil, mapError(err)
	}
	return &question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	question.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func authorLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         models.User{}.CollectionName(),
			"localField":   "user",
			"foreignField": "_id",
			"as":           "authors",
		}},
		{"$addFields": bson.M{
			"username":  bson.M{"$arrayElemAt": bson.A{"$authors.username", 0}},
			"userPhoto": bson.M{"$arrayElemAt": bson.A{"$authors.profilePhoto", 0}},
		}},
		{"$project": bson.M{"authors": 0}},
	}
}

func (r *questionRepository) ListLatest(ctx context.Context) ([]*models.QuestionDetails, error) {
	pipeline := append([]bson.M{
		{"$sort": bson.M{"createdAt": -1}},
	}, authorLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *questionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Question, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, mapError(err)
	}
	var questions []*models.Question
	if err := decodeAll(ctx, cur, &questions); err != nil {
		return nil, mapError(err)
	}
	return questions, nil
}

func (r *questionRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return mapError(err)
}

// Search relies on the content text index; results come back sorted by
// textScore relevance.
func (r *questionRepository) Search(ctx context.Context, query string) ([]*models.QuestionDetails, error) {
	pipeline := append([]bson.M{
		{"$match": bson.M{"$text": bson.M{"$search": query}}},
		{"$sort": bson.M{"score": bson.M{"$meta": "textScore"}}},
	}, authorLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *questionRepository) aggregateDetails(ctx context.Context, pipeline []bson.M) ([]*models.QuestionDetails, error) {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var details []*models.QuestionDetails
	if err := decodeAll(ctx, cur, &details); err != nil {
		return nil, mapError(err)
	}
	return details, nil
}

func (r *questionRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, mapError(err)
}

type answerRepository struct {
	coll *mongo.Collection
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	now := time.Now().UTC()
	answer.CreatedAt = now
	answer.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, answer)
	if err != nil {
		return mapError(err)
	}
	answer.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *answerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Answer, error) {
	var answer models.Answer
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&answer)
	if err != nil {
		return nil, mapError(err)
	}
	return &answer, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *models.Answer) error {
	answer.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": answer.ID}, answer)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *answerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func answerLookupStages() []bson.M {
	return append(authorLookupStages(),
		bson.M{"$lookup": bson.M{
			"from":         models.Question{}.CollectionName(),
			"localField":   "question",
			"foreignField": "_id",
			"as":           "questionDocs",
		}},
		bson.M{"$addFields": bson.M{
			"questionContent": bson.M{"$arrayElemAt": bson.A{"$questionDocs.content", 0}},
		}},
		bson.M{"$project": bson.M{"questionDocs": 0}},
	)
}

func (r *answerRepository) ListAll(ctx context.Context) ([]*models.AnswerDetails, error) {
	pipeline := append([]bson.M{
		{"$sort": bson.M{"createdAt": -1}},
	}, answerLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID primitive.ObjectID) ([]*models.AnswerDetails, error) {
	pipeline := append([]bson.M{
		{"$match": bson.M{"question": questionID}},
		{"$sort": bson.M{"createdAt": 1}},
	}, answerLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *answerRepository) aggregateDetails(ctx context.Context, pipeline []bson.M) ([]*models.AnswerDetails, error) {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var details []*models.AnswerDetails
	if err := decodeAll(ctx, cur, &details); err != nil {
		return nil, mapError(err)
	}
	return details, nil
}

func (r *answerRepository) DeleteByQuestions(ctx context.Context, questionIDs []primitive.ObjectID) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"question": bson.M{"$in": questionIDs}})
	return mapError(err)
}

func (r *answerRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return mapError(err)
}

func (r *answerRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, mapError(err)
}
