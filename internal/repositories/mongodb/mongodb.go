// Package mongodb implements the repository interfaces on the official
// MongoDB driver. One mongoRepository owns the client and hands out
// per-entity repositories bound to their collections.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eduvia/elearning-service/internal/models"
	"github.com/eduvia/elearning-service/internal/repositories"
)

const connectTimeout = 10 * time.Second

type mongoRepository struct {
	client *mongo.Client
	db     *mongo.Database

	users           *userRepository
	tokens          *tokenRepository
	courses         *courseRepository
	videos          *videoRepository
	comments        *commentRepository
	questions       *questionRepository
	answers         *answerRepository
	categories      *categoryRepository
	specializations *specializationRepository
}

// NewRepository connects to MongoDB, ensures the required indexes and
// returns the aggregate repository.
func NewRepository(ctx context.Context, uri, database string) (repositories.Repository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	db := client.Database(database)
	repo := &mongoRepository{
		client:          client,
		db:              db,
		users:           &userRepository{coll: db.Collection(models.User{}.CollectionName())},
		tokens:          &tokenRepository{coll: db.Collection(models.VerificationToken{}.CollectionName())},
		courses:         &courseRepository{coll: db.Collection(models.Course{}.CollectionName())},
		videos:          &videoRepository{coll: db.Collection(models.Video{}.CollectionName())},
		comments:        &commentRepository{coll: db.Collection(models.Comment{}.CollectionName())},
		questions:       &questionRepository{coll: db.Collection(models.Question{}.CollectionName())},
		answers:         &answerRepository{coll: db.Collection(models.Answer{}.CollectionName())},
		categories:      &categoryRepository{coll: db.Collection(models.Category{}.CollectionName())},
		specializations: &specializationRepository{coll: db.Collection(models.Specialization{}.CollectionName())},
	}

	if err := repo.ensureIndexes(connectCtx); err != nil {
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}
	return repo, nil
}

// ensureIndexes creates the unique and text indexes the queries rely on.
// CreateMany is idempotent against existing identical indexes.
func (r *mongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = r.tokens.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("tokens user index: %w", err)
	}

	_, err = r.questions.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "content", Value: "text"}},
	})
	if err != nil {
		return fmt.Errorf("questions text index: %w", err)
	}

	_, err = r.courses.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "title", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("courses owner-title index: %w", err)
	}
	return nil
}

func (r *mongoRepository) User() repositories.UserRepository       { return r.users }
func (r *mongoRepository) Token() repositories.TokenRepository     { return r.tokens }
func (r *mongoRepository) Course() repositories.CourseRepository   { return r.courses }
func (r *mongoRepository) Video() repositories.VideoRepository     { return r.videos }
func (r *mongoRepository) Comment() repositories.CommentRepository { return r.comments }
func (r *mongoRepository) Question() repositories.QuestionRepository {
	return r.questions
}
func (r *mongoRepository) Answer() repositories.AnswerRepository     { return r.answers }
func (r *mongoRepository) Category() repositories.CategoryRepository { return r.categories }
func (r *mongoRepository) Specialization() repositories.SpecializationRepository {
	return r.specializations
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *mongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// mapError translates driver errors into the repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// decodeAll drains a cursor into out, closing it in all paths.
func decodeAll(ctx context.Context, cur *mongo.Cursor, out interface{}) error {
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
