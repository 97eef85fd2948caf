package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduvia/elearning-service/internal/models"
)

type commentRepository struct {
	coll *mongo.Collection
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, comment)
	if err != nil {
		return mapError(err)
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return nil, mapError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": comment.ID}, comment)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

// commentLookupStages resolves the author and the video (with its course
// title) for listing endpoints.
func commentLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         models.User{}.CollectionName(),
			"localField":   "user",
			"foreignField": "_id",
			"as":           "authors",
		}},
		{"$lookup": bson.M{
			"from":         models.Video{}.CollectionName(),
			"localField":   "video",
			"foreignField": "_id",
			"as":           "videoDocs",
		}},
		{"$lookup": bson.M{
			"from":         models.Course{}.CollectionName(),
			"localField":   "videoDocs.course",
			"foreignField": "_id",
			"as":           "courseDocs",
		}},
		{"$addFields": bson.M{
			"username":    bson.M{"$arrayElemAt": bson.A{"$authors.username", 0}},
			"userPhoto":   bson.M{"$arrayElemAt": bson.A{"$authors.profilePhoto", 0}},
			"videoTitle":  bson.M{"$arrayElemAt": bson.A{"$videoDocs.title", 0}},
			"courseTitle": bson.M{"$arrayElemAt": bson.A{"$courseDocs.title", 0}},
		}},
		{"$project": bson.M{"authors": 0, "videoDocs": 0, "courseDocs": 0}},
	}
}

func (r *commentRepository) ListAll(ctx context.Context) ([]*models.CommentDetails, error) {
	pipeline := append([]bson.M{
		{"$sort": bson.M{"createdAt": -1}},
	}, commentLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*models.CommentDetails, error) {
	pipeline := append([]bson.M{
		{"$match": bson.M{"video": videoID}},
		{"$sort": bson.M{"createdAt": -1}},
	}, commentLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *commentRepository) ListLast(ctx context.Context, limit int) ([]*models.CommentDetails, error) {
	pipeline := append([]bson.M{
		{"$sort": bson.M{"createdAt": -1}},
		{"$limit": limit},
	}, commentLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *commentRepository) aggregateDetails(ctx context.Context, pipeline []bson.M) ([]*models.CommentDetails, error) {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var details []*models.CommentDetails
	if err := decodeAll(ctx, cur, &details); err != nil {
		return nil, mapError(err)
	}
	return details, nil
}

func (r *commentRepository) DeleteByVideos(ctx context.Context, videoIDs []primitive.ObjectID) error {
	if len(videoIDs) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"video": bson.M{"$in": videoIDs}})
	return mapError(err)
}

func (r *commentRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return mapError(err)
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, mapError(err)
}
