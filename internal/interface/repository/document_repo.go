package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepository implements DocumentRepository
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new document repository
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	collection := db.Collection("documents")

	// Index for per-owner latest-document lookups
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "waid", Value: 1}, {Key: "uploadedAt", Value: -1}},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoDocumentRepository{
		collection: collection,
	}
}

// Save inserts a new inbound document.
func (r *MongoDocumentRepository) Save(ctx context.Context, doc *entity.Document) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	if doc.ProcessStatus == "" {
		doc.ProcessStatus = entity.DocStatusPending
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// FindByID finds a document by id
func (r *MongoDocumentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindLatestByWaid returns the owner's most recently uploaded document.
func (r *MongoDocumentRepository) FindLatestByWaid(ctx context.Context, waid string) (*entity.Document, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	var doc entity.Document
	err := r.collection.FindOne(ctx, bson.M{"waid": waid}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarkProcessed records the outcome of one extraction pass over a document.
func (r *MongoDocumentRepository) MarkProcessed(ctx context.Context, id, status, errorDetail string, flightsFound, hotelsFound int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"processStatus": status,
			"processedAt":   time.Now().UTC(),
			"errorDetail":   errorDetail,
			"flightsFound":  flightsFound,
			"hotelsFound":   hotelsFound,
		}},
	)
	return err
}

// Count returns the total number of stored documents.
func (r *MongoDocumentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
