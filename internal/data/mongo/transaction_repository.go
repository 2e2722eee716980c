// Package mongo stores the append-only ledger log and balance snapshots.
// MongoDB holds the raw movement history; every balance the system reports
// is derived from these documents by the aggregation engine.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
)

const (
	// TransactionCollectionName is the name of the ledger log collection
	TransactionCollectionName = "ledger_transactions"
)

// TransactionRepository implements the transaction.Repository interface for MongoDB
type TransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB transaction repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) transaction.Repository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores a new transaction after checking for duplicates.
// Returns ErrDuplicateTransaction if an entry with the same ID exists.
func (r *TransactionRepository) Append(ctx context.Context, tx *transaction.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	existing, err := r.GetByID(ctx, tx.ID)
	var notFound transaction.ErrTransactionNotFound
	if err != nil && !errors.As(err, &notFound) {
		r.logger.Error("Failed to check for existing transaction",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing transaction: %w", err)
	}
	if existing != nil {
		return transaction.ErrDuplicateTransaction{TransactionID: tx.ID}
	}

	if _, err := collection.InsertOne(ctx, tx); err != nil {
		r.logger.Error("Failed to append transaction",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID.
// Returns ErrTransactionNotFound if no entry exists.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"transaction_id": id}
	var tx transaction.Transaction
	err := collection.FindOne(ctx, filter).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction",
			"transaction_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &tx, nil
}

// GetByReceiptSerial retrieves a transaction by its receipt serial.
// Returns nil, nil when no transaction carries the serial, enabling the
// duplicate-receipt check at the ingestion boundary.
func (r *TransactionRepository) GetByReceiptSerial(ctx context.Context, serial string) (*transaction.Transaction, error) {
	if serial == "" {
		return nil, errors.New("receipt serial cannot be empty")
	}

	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"receipt_serial": serial}
	var tx transaction.Transaction
	err := collection.FindOne(ctx, filter).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction by receipt serial",
			"receipt_serial", serial,
			"error", err)
		return nil, fmt.Errorf("failed to get transaction by receipt serial: %w", err)
	}

	return &tx, nil
}

// ListByAccountID retrieves paginated transactions for an account.
// Results are sorted by creation time in descending order (newest first).
func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"account_id": accountID}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	return r.find(ctx, collection, filter, opts)
}

// CountByAccountID counts the transactions recorded against an account
func (r *TransactionRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	collection := r.db.Collection(TransactionCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"account_id": accountID})
	if err != nil {
		r.logger.Error("Failed to count transactions",
			"account_id", accountID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

// ListByNamespace retrieves the full log for one ledger namespace, oldest
// first, ready for the aggregation fold.
func (r *TransactionRepository) ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"namespace": ns}
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	return r.find(ctx, collection, filter, opts)
}

// ListAll retrieves the entire ledger log, oldest first.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	return r.find(ctx, collection, bson.M{}, opts)
}

// UpdateOpening replaces an opening-balance row. Regular rows are immutable:
// the filter insists on the opening_balance flag, so an update aimed at a
// normal row reports not-found rather than mutating history.
func (r *TransactionRepository) UpdateOpening(ctx context.Context, tx *transaction.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"transaction_id": tx.ID, "opening_balance": true}
	result, err := collection.ReplaceOne(ctx, filter, tx)
	if err != nil {
		r.logger.Error("Failed to update opening balance row",
			"transaction_id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update opening balance row: %w", err)
	}
	if result.MatchedCount == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: tx.ID}
	}

	return nil
}

// DeleteOpening removes an opening-balance row, the only permitted deletion
// in the log.
func (r *TransactionRepository) DeleteOpening(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"transaction_id": id, "opening_balance": true}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete opening balance row",
			"transaction_id", id.String(),
			"error", err)
		return fmt.Errorf("failed to delete opening balance row: %w", err)
	}
	if result.DeletedCount == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

func (r *TransactionRepository) find(ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*transaction.Transaction, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query transactions", "error", err)
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*transaction.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		r.logger.Error("Failed to decode transactions", "error", err)
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return txs, nil
}
