package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
)

// EntityRepository implements the entity.Repository interface for PostgreSQL.
// Balances are stored as a JSONB column: a signed per-currency map holding
// the entity's administratively maintained position, not a derived value.
type EntityRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewEntityRepository creates a new PostgreSQL entity repository.
func NewEntityRepository(logger *slog.Logger, db *persistence.PostgresDB) entity.Repository {
	return &EntityRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction.
func (r *EntityRepository) WithTx(tx pgx.Tx) entity.Repository {
	return &EntityRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new entity in the database.
func (r *EntityRepository) Create(ctx context.Context, e *entity.Entity) error {
	balances, err := json.Marshal(e.Balances)
	if err != nil {
		return fmt.Errorf("failed to encode entity balances: %w", err)
	}

	query := `
		INSERT INTO entities (id, kind, name, phone, balances, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.querier.Exec(ctx, query,
		e.ID,
		e.Kind,
		e.Name,
		e.Phone,
		balances,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create entity", "error", err)
		return fmt.Errorf("failed to create entity: %w", err)
	}

	return nil
}

// GetByID retrieves an entity by its ID
func (r *EntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entity, error) {
	query := `
		SELECT id, kind, name, phone, balances, created_at, updated_at
		FROM entities
		WHERE id = $1
	`

	e, err := scanEntity(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrEntityNotFound{EntityID: id}
		}
		r.logger.Error("Failed to get entity", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return e, nil
}

// ListAll retrieves every customer and partner.
func (r *EntityRepository) ListAll(ctx context.Context) ([]*entity.Entity, error) {
	query := `
		SELECT id, kind, name, phone, balances, created_at, updated_at
		FROM entities
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list entities", "error", err)
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []*entity.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}

	return entities, nil
}

// Update updates an existing entity, including its balance map.
func (r *EntityRepository) Update(ctx context.Context, e *entity.Entity) error {
	balances, err := json.Marshal(e.Balances)
	if err != nil {
		return fmt.Errorf("failed to encode entity balances: %w", err)
	}

	query := `
		UPDATE entities
		SET kind = $1, name = $2, phone = $3, balances = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.querier.Exec(ctx, query,
		e.Kind,
		e.Name,
		e.Phone,
		balances,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update entity", "id", e.ID.String(), "error", err)
		return fmt.Errorf("failed to update entity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrEntityNotFound{EntityID: e.ID}
	}

	return nil
}

func scanEntity(row pgx.Row) (*entity.Entity, error) {
	var e entity.Entity
	var balances []byte
	err := row.Scan(
		&e.ID,
		&e.Kind,
		&e.Name,
		&e.Phone,
		&balances,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Balances = shared.BalanceMap{}
	if len(balances) > 0 {
		if err := json.Unmarshal(balances, &e.Balances); err != nil {
			return nil, fmt.Errorf("failed to decode entity balances: %w", err)
		}
	}
	return &e, nil
}
