package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "assessments"

type AssessmentMongo struct {
	collection *mongo.Collection
}

func NewAssessmentMongo(db *mongo.Database) repositories.AssessmentRepository {
	return &AssessmentMongo{
		collection: db.Collection(collectionName),
	}
}

func (a *AssessmentMongo) Create(ctx context.Context, record *models.AssessmentRecord) error {
	if _, err := a.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert assessment record: %w", err)
	}
	return nil
}

func (a *AssessmentMongo) List(ctx context.Context) ([]*models.AssessmentRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "user_id", Value: 1},
		{Key: "timestamp", Value: 1},
	})

	cursor, err := a.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode assessment records: %w", err)
	}

	return records, nil
}

func (a *AssessmentMongo) GetLatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var record models.AssessmentRecord
	err := a.collection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest assessment record for %s: %w", userID, err)
	}

	return &record, nil
}

func (a *AssessmentMongo) Count(ctx context.Context) (int64, error) {
	count, err := a.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count assessment records: %w", err)
	}
	return count, nil
}
