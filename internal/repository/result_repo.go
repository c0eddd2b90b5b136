package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clearcomply/internal/model"
)

// ResultRepo handles MongoDB operations for compiled assessment results
type ResultRepo interface {
	Save(ctx context.Context, result *model.Result) error
	GetByAssessmentID(ctx context.Context, assessmentID string) (*model.Result, error)
	ListByFrameworkID(ctx context.Context, frameworkID string) ([]*model.Result, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

// Save upserts by assessment id; recompiling results replaces the stored
// document.
func (r *resultRepo) Save(ctx context.Context, result *model.Result) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"assessmentId": result.AssessmentID}, result, opts)
	return err
}

func (r *resultRepo) GetByAssessmentID(ctx context.Context, assessmentID string) (*model.Result, error) {
	var result model.Result
	err := r.collection.FindOne(ctx, bson.M{"assessmentId": assessmentID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) ListByFrameworkID(ctx context.Context, frameworkID string) ([]*model.Result, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"frameworkId": frameworkID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Result
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
