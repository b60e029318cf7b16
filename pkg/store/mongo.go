package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/causallab/dagcheck/pkg/check"
	pkgerrors "github.com/causallab/dagcheck/pkg/errors"
)

// MongoStore archives reports in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig holds the connection settings for a mongo store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "pinging mongo")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// SaveReport upserts a report record keyed by scenario ID.
func (s *MongoStore) SaveReport(ctx context.Context, rep *check.Report) error {
	rec := Record{
		ScenarioID: rep.ScenarioID,
		Report:     *rep,
		SavedAt:    time.Now().UTC(),
	}
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"scenario_id": rec.ScenarioID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "saving report for %s", rep.ScenarioID)
	}
	return nil
}

// GetReport retrieves the archived report for a scenario.
func (s *MongoStore) GetReport(ctx context.Context, scenarioID string) (*Record, error) {
	var rec Record
	err := s.collection.FindOne(ctx, bson.M{"scenario_id": scenarioID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "loading report for %s", scenarioID)
	}
	return &rec, nil
}

// ListReports returns archived records, newest first.
func (s *MongoStore) ListReports(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "listing reports")
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStore, err, "decoding report records")
	}
	return records, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
