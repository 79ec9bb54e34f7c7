package shipment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL shipment repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const shipmentColumns = `
	id, origin, destination, mode, status, items_count, weight_kg, cost,
	next_checkpoint, created_at, eta, shipped_at, delivered_at, history
`

// Create stores a new shipment.
func (r *PostgresRepository) Create(ctx context.Context, s *Shipment) error {
	history, err := json.Marshal(s.History)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Origin, s.Destination, s.Mode, s.Status,
		s.ItemsCount, s.WeightKg, s.Cost, s.NextCheckpoint,
		s.CreatedAt, s.ETA, s.ShippedAt, s.DeliveredAt, history,
	)
	return err
}

// Get retrieves a shipment by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`

	s, err := scanShipment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Update replaces an existing shipment.
func (r *PostgresRepository) Update(ctx context.Context, s *Shipment) error {
	history, err := json.Marshal(s.History)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	query := `
		UPDATE shipments SET
			status = $2, next_checkpoint = $3,
			shipped_at = $4, delivered_at = $5, history = $6
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		s.ID, s.Status, s.NextCheckpoint, s.ShippedAt, s.DeliveredAt, history,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns shipments, optionally filtered by status, newest first.
func (r *PostgresRepository) List(ctx context.Context, status Status) ([]*Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Shipment
	for rows.Next() {
		s, scanErr := scanShipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShipment(row rowScanner) (*Shipment, error) {
	var (
		s       Shipment
		history []byte
	)
	err := row.Scan(
		&s.ID, &s.Origin, &s.Destination, &s.Mode, &s.Status,
		&s.ItemsCount, &s.WeightKg, &s.Cost, &s.NextCheckpoint,
		&s.CreatedAt, &s.ETA, &s.ShippedAt, &s.DeliveredAt, &history,
	)
	if err != nil {
		return nil, err
	}

	if len(history) > 0 {
		if err := json.Unmarshal(history, &s.History); err != nil {
			return nil, fmt.Errorf("unmarshaling history: %w", err)
		}
	}
	return &s, nil
}
