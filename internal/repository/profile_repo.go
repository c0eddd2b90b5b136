package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clearcomply/internal/model"
)

// ProfileRepo handles MongoDB operations for business profiles
type ProfileRepo interface {
	Create(ctx context.Context, profile *model.BusinessProfile) error
	GetByID(ctx context.Context, id string) (*model.BusinessProfile, error)
	List(ctx context.Context) ([]*model.BusinessProfile, error)
	Update(ctx context.Context, profile *model.BusinessProfile) error
	Delete(ctx context.Context, id string) error
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a new business profile repository
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("business_profiles"),
	}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.BusinessProfile) error {
	if profile.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	profile.CreatedAt = time.Now().UTC()
	profile.UpdatedAt = profile.CreatedAt

	_, err := r.collection.InsertOne(ctx, profile)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*model.BusinessProfile, error) {
	var profile model.BusinessProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.BusinessProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *model.BusinessProfile) error {
	if profile.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	profile.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	return err
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
