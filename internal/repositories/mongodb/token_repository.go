package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduvia/elearning-service/internal/models"
)

type tokenRepository struct {
	coll *mongo.Collection
}

func (r *tokenRepository) Create(ctx context.Context, token *models.VerificationToken) error {
	now := time.Now().UTC()
	token.CreatedAt = now
	token.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, token)
	if err != nil {
		return mapError(err)
	}
	token.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tokenRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.VerificationToken, error) {
	var token models.VerificationToken
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&token)
	if err != nil {
		return nil, mapError(err)
	}
	return &token, nil
}

func (r *tokenRepository) GetByUserAndToken(ctx context.Context, userID primitive.ObjectID, token string) (*models.VerificationToken, error) {
	var doc models.VerificationToken
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "token": token}).Decode(&doc)
	if err != nil {
		return nil, mapError(err)
	}
	return &doc, nil
}

func (r *tokenRepository) Update(ctx context.Context, token *models.VerificationToken) error {
	token.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": token.ID}, token)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *tokenRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return mapError(err)
}
