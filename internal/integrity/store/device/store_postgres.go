// Package device persists tracked devices keyed by their identifier.
package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devicegate/internal/integrity"
	"devicegate/internal/integrity/store"
	"devicegate/internal/platform/postgres"
)

// PostgresStore persists devices in PostgreSQL. Writes honor a transaction
// carried in the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed device store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get loads a device by identifier. Returns store.ErrNotFound for unseen
// identifiers.
func (s *PostgresStore) Get(ctx context.Context, idfa string) (integrity.Device, error) {
	const query = `
		SELECT idfa, ban_status, created_at, updated_at
		FROM devices
		WHERE idfa = $1
	`

	var d integrity.Device
	err := postgres.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, idfa).
		Scan(&d.IDFA, &d.BanStatus, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return integrity.Device{}, fmt.Errorf("device %q: %w", idfa, store.ErrNotFound)
	}
	if err != nil {
		return integrity.Device{}, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// Upsert writes the device's status in a single atomic statement. The unique
// constraint on idfa plus ON CONFLICT makes concurrent evaluations of one
// device converge on the last committed write instead of erroring or
// duplicating rows.
func (s *PostgresStore) Upsert(ctx context.Context, d integrity.Device) error {
	if d.IDFA == "" {
		return fmt.Errorf("device idfa is required: %w", store.ErrInvalidRecord)
	}
	if !d.BanStatus.Valid() {
		return fmt.Errorf("device ban status %q: %w", d.BanStatus, store.ErrInvalidRecord)
	}

	const query = `
		INSERT INTO devices (idfa, ban_status, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (idfa) DO UPDATE
		SET ban_status = EXCLUDED.ban_status, updated_at = NOW()
	`

	if _, err := postgres.ExecutorFrom(ctx, s.db).ExecContext(ctx, query, d.IDFA, d.BanStatus); err != nil {
		return fmt.Errorf("upsert device: %w", err)
	}
	return nil
}
