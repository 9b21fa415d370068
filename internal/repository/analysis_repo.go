package repository

import (
	"context"
	"errors"
	"fmt"

	"talktutor/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnalysisRepository interface {
	// Insert stores the record and fills in its generated ID.
	Insert(ctx context.Context, a *model.Analysis) error
	// GetByID returns (nil, nil) when the id is malformed or matches nothing.
	GetByID(ctx context.Context, id string) (*model.Analysis, error)
	// ListByUser returns the user's analyses newest first, at most limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Analysis, error)
	EnsureIndexes(ctx context.Context) error
}

type analysisRepo struct {
	col *mongo.Collection
}

func NewAnalysisRepo(db *mongo.Database) AnalysisRepository {
	return &analysisRepo{col: db.Collection("analyses")}
}

func (r *analysisRepo) Insert(ctx context.Context, a *model.Analysis) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("inserting analysis for user %s: %w", a.UserID, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.Analysis, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var a model.Analysis
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching analysis %s: %w", id, err)
	}
	return &a, nil
}

func (r *analysisRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Analysis, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing analyses for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var analyses []model.Analysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("decoding analyses for user %s: %w", userID, err)
	}
	return analyses, nil
}

func (r *analysisRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating analysis history index: %w", err)
	}
	return nil
}
