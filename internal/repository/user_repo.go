package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talktutor/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	// Upsert creates the user on first sight and refreshes profile fields on
	// subsequent exchanges. Returns the stored record.
	Upsert(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	SetSubscription(ctx context.Context, id string, tier model.PlanTier, expiresAt time.Time) error
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	update := bson.M{
		"$set": bson.M{
			"email":   u.Email,
			"name":    u.Name,
			"picture": u.Picture,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": u.ID}, update, opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("upserting user %s: %w", u.ID, err)
	}
	return &stored, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return &u, nil
}

func (r *userRepo) SetSubscription(ctx context.Context, id string, tier model.PlanTier, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"subscription_tier":       tier,
			"subscription_expires_at": expiresAt,
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("setting subscription for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("setting subscription for user %s: no such user", id)
	}
	return nil
}
