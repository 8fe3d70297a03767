package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo handles the persistence of generated mazes.
type MazeRepo struct {
	collection *mongo.Collection
	logger     i.Logger
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string, logger i.Logger) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
		logger:     logger,
	}
}

// EnsureIndexes creates the index used to find mazes by size and seed.
func (m *MazeRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "width", Value: 1}, {Key: "height", Value: 1}, {Key: "seed", Value: 1}},
		Options: options.Index().SetName("size_seed"),
	}
	name, err := m.collection.Indexes().CreateOne(ctx, index)
	if err != nil {
		return fmt.Errorf("creating maze index: %w", err)
	}
	m.logger.Info(fmt.Sprintf("Index %s ready", name))
	return nil
}

// Save inserts or updates a maze in the repository.
func (m *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"width":     record.Width,
			"height":    record.Height,
			"seed":      record.Seed,
			"walls":     record.Walls,
			"createdAt": record.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		m.logger.Error(fmt.Sprintf("Saving maze %s: %v", record.ID, err))
		return errors.New("unexpected error: " + err.Error())
	}

	m.logger.Debug(fmt.Sprintf("Saved maze %s (%dx%d, %d walls)", record.ID, record.Width, record.Height, len(record.Walls)))
	return nil
}

// ByID retrieves a maze by its ID.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// BySeed retrieves the oldest maze stored for the given size and seed.
func (m *MazeRepo) BySeed(ctx context.Context, width, height int, seed int64) (*dmn.MazeRecord, error) {
	filter := bson.M{"width": width, "height": height, "seed": seed}
	return m.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (m *MazeRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var record dmn.MazeRecord
	if err := m.collection.FindOne(ctx, filter, opts...).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &record, nil
}
