package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/repository"
)

const defaultCollection = "records"

// record is the document shape: one document per key, the serialized
// collection kept as UTF-8 text.
type record struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository implements repository.RecordStore on a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
	now      func() time.Time
}

var _ repository.RecordStore = (*MongoDBRepository)(nil)

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", zap.String("db", dbName))

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: defaultCollection,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Load fetches the value stored under key.
func (r *MongoDBRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := repository.ValidateKey(key); err != nil {
		return nil, false, err
	}

	var doc record
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load record %s: %w", key, err)
	}
	return []byte(doc.Value), true, nil
}

// Save replaces the document for key in a single upsert.
func (r *MongoDBRepository) Save(ctx context.Context, key string, data []byte) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}

	doc := newRecord(key, data, r.now())
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}

	r.logger.Debug("record saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the document for key if it exists.
func (r *MongoDBRepository) Remove(ctx context.Context, key string) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	if _, err := r.collection().DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to remove record %s: %w", key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func newRecord(key string, data []byte, now time.Time) record {
	return record{Key: key, Value: string(data), UpdatedAt: now.UTC()}
}
