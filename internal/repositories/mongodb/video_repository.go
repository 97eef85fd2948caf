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

type videoRepository struct {
	coll *mongo.Collection
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, video)
	if err != nil {
		return mapError(err)
	}
	video.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		return nil, mapError(err)
	}
	return &video, nil
}

func (r *videoRepository) GetByTitleAndCourse(ctx context.Context, title string, courseID primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := r.coll.FindOne(ctx, bson.M{"title": title, "course": courseID}).Decode(&video)
	if err != nil {
		return nil, mapError(err)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	video.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": video.ID}, video)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *videoRepository) ListAll(ctx context.Context) ([]*models.VideoWithCourse, error) {
	pipeline := []bson.M{
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         models.Course{}.CollectionName(),
			"localField":   "course",
			"foreignField": "_id",
			"as":           "courseDocs",
		}},
		{"$addFields": bson.M{
			"courseTitle": bson.M{"$arrayElemAt": bson.A{"$courseDocs.title", 0}},
		}},
		{"$project": bson.M{"courseDocs": 0}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var videos []*models.VideoWithCourse
	if err := decodeAll(ctx, cur, &videos); err != nil {
		return nil, mapError(err)
	}
	return videos, nil
}

func (r *videoRepository) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]*models.Video, error) {
	cur, err := r.coll.Find(ctx, bson.M{"course": courseID}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, mapError(err)
	}
	var videos []*models.Video
	if err := decodeAll(ctx, cur, &videos); err != nil {
		return nil, mapError(err)
	}
	return videos, nil
}

func (r *videoRepository) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"course": courseID})
	return mapError(err)
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, mapError(err)
}
