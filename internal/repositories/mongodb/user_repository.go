package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduvia/elearning-service/internal/models"
)

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return mapError(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// profileLookupStages resolves a user's courses, questions and
// specialization document in one pipeline pass.
func profileLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         models.Course{}.CollectionName(),
			"localField":   "_id",
			"foreignField": "user",
			"as":           "courses",
		}},
		{"$lookup": bson.M{
			"from":         models.Question{}.CollectionName(),
			"localField":   "_id",
			"foreignField": "user",
			"as":           "questions",
		}},
		{"$lookup": bson.M{
			"from":         models.Specialization{}.CollectionName(),
			"localField":   "specialization",
			"foreignField": "_id",
			"as":           "specializationDocs",
		}},
		{"$addFields": bson.M{
			"specializationDoc": bson.M{"$arrayElemAt": bson.A{"$specializationDocs", 0}},
		}},
		{"$project": bson.M{"specializationDocs": 0}},
	}
}

func (r *userRepository) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, profileLookupStages()...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var profiles []*models.PublicProfile
	if err := decodeAll(ctx, cur, &profiles); err != nil {
		return nil, mapError(err)
	}
	if len(profiles) == 0 {
		return nil, mapError(mongo.ErrNoDocuments)
	}
	profiles[0].Password = ""
	return profiles[0], nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role models.UserRole) ([]*models.PublicProfile, error) {
	return r.listProfiles(ctx, bson.M{"role": role})
}

func (r *userRepository) ListTeachersBySpecialization(ctx context.Context, specializationID primitive.ObjectID) ([]*models.PublicProfile, error) {
	return r.listProfiles(ctx, bson.M{
		"role":           models.RoleTeacher,
		"specialization": specializationID,
	})
}

func (r *userRepository) listProfiles(ctx context.Context, match bson.M) ([]*models.PublicProfile, error) {
	pipeline := append([]bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
	}, profileLookupStages()...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var profiles []*models.PublicProfile
	if err := decodeAll(ctx, cur, &profiles); err != nil {
		return nil, mapError(err)
	}
	for _, p := range profiles {
		p.Password = ""
	}
	return profiles, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	return count, mapError(err)
}

func (r *userRepository) TopTeachers(ctx context.Context, limit int) ([]*models.TopTeacher, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"role": models.RoleTeacher}},
		{"$lookup": bson.M{
			"from":         models.Course{}.CollectionName(),
			"localField":   "_id",
			"foreignField": "user",
			"as":           "ownedCourses",
		}},
		{"$addFields": bson.M{"coursesCount": bson.M{"$size": "$ownedCourses"}}},
		{"$sort": bson.M{"coursesCount": -1}},
		{"$limit": limit},
		{"$project": bson.M{
			"username":       1,
			"email":          1,
			"profilePhoto":   1,
			"specialization": 1,
			"coursesCount":   1,
		}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var teachers []*models.TopTeacher
	if err := decodeAll(ctx, cur, &teachers); err != nil {
		return nil, mapError(err)
	}
	return teachers, nil
}

func (r *userRepository) TopSpecializations(ctx context.Context, limit int) ([]*models.TopSpecialization, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"role":           models.RoleTeacher,
			"specialization": bson.M{"$ne": nil},
		}},
		{"$group": bson.M{
			"_id":              "$specialization",
			"numberOfTeachers": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"numberOfTeachers": -1}},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         models.Specialization{}.CollectionName(),
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "specializationDocs",
		}},
		{"$unwind": "$specializationDocs"},
		{"$project": bson.M{
			"specializationId":    "$_id",
			"specializationName":  "$specializationDocs.specializationName",
			"specializationPhoto": "$specializationDocs.specializationPhoto",
			"numberOfTeachers":    1,
		}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	var specs []*models.TopSpecialization
	if err := decodeAll(ctx, cur, &specs); err != nil {
		return nil, mapError(err)
	}
	return specs, nil
}
