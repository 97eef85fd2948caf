package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
)

type courseRepository struct {
	coll *mongo.Collection
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.Likes == nil {
		course.Likes = []primitive.ObjectID{}
	}
	if course.Favorites == nil {
		course.Favorites = []primitive.ObjectID{}
	}
	if course.Subscribers == nil {
		course.Subscribers = []primitive.ObjectID{}
	}
	if course.Videos == nil {
		course.Videos = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, course)
	if err != nil {
		return mapError(err)
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		return nil, mapError(err)
	}
	return &course, nil
}

// detailsLookupStages resolves the course owner and its video documents.
func detailsLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         models.User{}.CollectionName(),
			"localField":   "user",
			"foreignField": "_id",
			"as":           "owners",
		}},
		{"$addFields": bson.M{"owner": bson.M{"$arrayElemAt": bson.A{"$owners", 0}}}},
		{"$lookup": bson.M{
			"from":         models.Video{}.CollectionName(),
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "videoDocs",
		}},
		{"$project": bson.M{"owners": 0, "owner.password": 0}},
	}
}

func (r *courseRepository) GetDetails(ctx context.Context, id primitive.ObjectID) (*models.CourseDetails, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, detailsLookupStages()...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var details []*models.CourseDetails
	if err := decodeAll(ctx, cur, &details); err != nil {
		return nil, mapError(err)
	}
	if len(details) == 0 {
		return nil, mapError(mongo.ErrNoDocuments)
	}
	return details[0], nil
}

func (r *courseRepository) GetByTitleAndOwner(ctx context.Context, title string, ownerID primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.coll.FindOne(ctx, bson.M{"title": title, "user": ownerID}).Decode(&course)
	if err != nil {
		return nil, mapError(err)
	}
	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.CourseDetails, error) {
	match := bson.M{}
	if filters.Search != "" {
		keyword := bson.M{"$regex": filters.Search, "$options": "i"}
		match["$or"] = bson.A{
			bson.M{"title": keyword},
			bson.M{"description": keyword},
		}
	}

	pipeline := []bson.M{{"$match": match}}

	switch {
	case filters.Popular:
		pipeline = append(pipeline,
			bson.M{"$addFields": bson.M{"subscriberCount": bson.M{"$size": "$subscribers"}}},
			bson.M{"$sort": bson.M{"subscriberCount": -1}},
			bson.M{"$limit": repositories.CoursePageSize},
			bson.M{"$project": bson.M{"subscriberCount": 0}},
		)
	case filters.Page > 0:
		pipeline = append(pipeline,
			bson.M{"$sort": bson.M{"createdAt": -1}},
			bson.M{"$skip": (filters.Page - 1) * repositories.CoursePageSize},
			bson.M{"$limit": repositories.CoursePageSize},
		)
	default:
		pipeline = append(pipeline, bson.M{"$sort": bson.M{"createdAt": -1}})
	}

	pipeline = append(pipeline, detailsLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *courseRepository) ListByCategory(ctx context.Context, category string) ([]*models.CourseDetails, error) {
	pipeline := append([]bson.M{
		{"$match": bson.M{"category": category}},
		{"$sort": bson.M{"createdAt": -1}},
	}, detailsLookupStages()...)
	return r.aggregateDetails(ctx, pipeline)
}

func (r *courseRepository) aggregateDetails(ctx context.Context, pipeline []bson.M) ([]*models.CourseDetails, error) {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var details []*models.CourseDetails
	if err := decodeAll(ctx, cur, &details); err != nil {
		return nil, mapError(err)
	}
	return details, nil
}

func (r *courseRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Course, error) {
	return r.find(ctx, bson.M{"user": ownerID})
}

func (r *courseRepository) ListBySubscriber(ctx context.Context, userID primitive.ObjectID) ([]*models.Course, error) {
	return r.find(ctx, bson.M{"subscribers": userID})
}

func (r *courseRepository) ListByFavorite(ctx context.Context, userID primitive.ObjectID) ([]*models.Course, error) {
	return r.find(ctx, bson.M{"favorites": userID})
}

func (r *courseRepository) find(ctx context.Context, filter bson.M) ([]*models.Course, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, mapError(err)
	}
	var courses []*models.Course
	if err := decodeAll(ctx, cur, &courses); err != nil {
		return nil, mapError(err)
	}
	return courses, nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, mapError(err)
}

func (r *courseRepository) AddMember(ctx context.Context, courseID primitive.ObjectID, field repositories.CourseMemberField, userID primitive.ObjectID) (*models.Course, error) {
	return r.updateMembers(ctx, courseID, bson.M{"$addToSet": bson.M{string(field): userID}})
}

func (r *courseRepository) RemoveMember(ctx context.Context, courseID primitive.ObjectID, field repositories.CourseMemberField, userID primitive.ObjectID) (*models.Course, error) {
	return r.updateMembers(ctx, courseID, bson.M{"$pull": bson.M{string(field): userID}})
}

func (r *courseRepository) updateMembers(ctx context.Context, courseID primitive.ObjectID, update bson.M) (*models.Course, error) {
	var course models.Course
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": courseID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if err != nil {
		return nil, mapError(err)
	}
	return &course, nil
}

func (r *courseRepository) PushVideo(ctx context.Context, courseID, videoID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{"$addToSet": bson.M{"videos": videoID}},
	)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *courseRepository) PullVideo(ctx context.Context, courseID, videoID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{"$pull": bson.M{"videos": videoID}},
	)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}
