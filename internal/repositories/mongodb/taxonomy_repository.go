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

type categoryRepository struct {
	coll *mongo.Collection
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, category)
	if err != nil {
		return mapError(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByTitle(ctx context.Context, title string) (*models.Category, error) {
	var category models.Category
	err := r.coll.FindOne(ctx, bson.M{"title": title}).Decode(&category)
	if err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, mapError(err)
	}
	var categories []*models.Category
	if err := decodeAll(ctx, cur, &categories); err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

type specializationRepository struct {
	coll *mongo.Collection
}

func (r *specializationRepository) Create(ctx context.Context, specialization *models.Specialization) error {
	now := time.Now().UTC()
	specialization.CreatedAt = now
	specialization.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, specialization)
	if err != nil {
		return mapError(err)
	}
	specialization.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *specializationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Specialization, error) {
	var specialization models.Specialization
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&specialization)
	if err != nil {
		return nil, mapError(err)
	}
	return &specialization, nil
}

func (r *specializationRepository) GetByName(ctx context.Context, name string) (*models.Specialization, error) {
	var specialization models.Specialization
	err := r.coll.FindOne(ctx, bson.M{"specializationName": name}).Decode(&specialization)
	if err != nil {
		return nil, mapError(err)
	}
	return &specialization, nil
}

func (r *specializationRepository) List(ctx context.Context) ([]*models.Specialization, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"specializationName": 1}))
	if err != nil {
		return nil, mapError(err)
	}
	var specializations []*models.Specialization
	if err := decodeAll(ctx, cur, &specializations); err != nil {
		return nil, mapError(err)
	}
	return specializations, nil
}

func (r *specializationRepository) Update(ctx context.Context, specialization *models.Specialization) error {
	specialization.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": specialization.ID}, specialization)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *specializationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}
