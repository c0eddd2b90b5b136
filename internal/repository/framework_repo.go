package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clearcomply/internal/model"
)

// FrameworkRepo handles MongoDB operations for compliance frameworks.
// Frameworks are immutable once stored: a changed questionnaire is a new
// document with a bumped version, never an update in place.
type FrameworkRepo interface {
	Create(ctx context.Context, framework *model.Framework) error
	GetByID(ctx context.Context, id string) (*model.Framework, error)
	List(ctx context.Context) ([]*model.Framework, error)
	Delete(ctx context.Context, id string) error
}

type frameworkRepo struct {
	collection *mongo.Collection
}

// NewFrameworkRepo creates a new framework repository
func NewFrameworkRepo(db *mongo.Database) FrameworkRepo {
	return &frameworkRepo{
		collection: db.Collection("frameworks"),
	}
}

func (r *frameworkRepo) Create(ctx context.Context, framework *model.Framework) error {
	if framework.ID == "" {
		return fmt.Errorf("framework id is required")
	}
	if err := framework.Validate(); err != nil {
		return err
	}
	framework.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, framework)
	return err
}

func (r *frameworkRepo) GetByID(ctx context.Context, id string) (*model.Framework, error) {
	var framework model.Framework
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&framework)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &framework, nil
}

func (r *frameworkRepo) List(ctx context.Context) ([]*model.Framework, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var frameworks []*model.Framework
	if err := cursor.All(ctx, &frameworks); err != nil {
		return nil, err
	}
	return frameworks, nil
}

func (r *frameworkRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
