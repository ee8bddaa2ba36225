package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresSlotStore persists cart snapshots in the cart_slots table. This is
// the durable backend; the table is created by the goose migrations.
type PostgresSlotStore struct {
	db *sql.DB
}

func NewPostgresSlotStore(db *sql.DB) *PostgresSlotStore {
	return &PostgresSlotStore{db: db}
}

func (s *PostgresSlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT state FROM cart_slots WHERE key = $1`

	var snapshot []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load cart slot: %w", err)
	}

	return snapshot, nil
}

func (s *PostgresSlotStore) Save(ctx context.Context, key string, snapshot []byte) error {
	query := `
		INSERT INTO cart_slots (key, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, snapshot); err != nil {
		return fmt.Errorf("failed to save cart slot: %w", err)
	}

	return nil
}

func (s *PostgresSlotStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM cart_slots WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}

	return nil
}
