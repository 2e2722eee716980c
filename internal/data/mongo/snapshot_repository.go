package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sarrafi-backoffice/internal/domain/snapshot"
)

const (
	// SnapshotCollectionName is the name of the balance snapshot collection
	SnapshotCollectionName = "balance_snapshots"
)

// SnapshotRepository implements the snapshot.Repository interface for MongoDB
type SnapshotRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewSnapshotRepository creates a new MongoDB snapshot repository
func NewSnapshotRepository(logger *slog.Logger, db *mongo.Database) snapshot.Repository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a snapshot. Snapshots are immutable: there is deliberately
// no update or delete operation on this repository.
func (r *SnapshotRepository) Create(ctx context.Context, s *snapshot.BalanceSnapshot) error {
	collection := r.db.Collection(SnapshotCollectionName)

	if _, err := collection.InsertOne(ctx, s); err != nil {
		r.logger.Error("Failed to create balance snapshot",
			"snapshot_id", s.ID.String(),
			"entity_id", s.EntityID.String(),
			"error", err)
		return fmt.Errorf("failed to create balance snapshot: %w", err)
	}

	return nil
}

// ListByEntityID retrieves an entity's snapshots, newest first.
func (r *SnapshotRepository) ListByEntityID(ctx context.Context, entityID uuid.UUID) ([]*snapshot.BalanceSnapshot, error) {
	collection := r.db.Collection(SnapshotCollectionName)

	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list balance snapshots",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list balance snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []*snapshot.BalanceSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		r.logger.Error("Failed to decode balance snapshots",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode balance snapshots: %w", err)
	}

	return snapshots, nil
}
