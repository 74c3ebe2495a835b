// Package integritylog persists the append-only audit trail of evaluation
// outcomes. Entries are never updated or deleted.
package integritylog

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"devicegate/internal/integrity"
	"devicegate/internal/integrity/store"
	"devicegate/internal/platform/postgres"
)

// PostgresStore appends integrity logs to PostgreSQL. Writes honor a
// transaction carried in the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed integrity log store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts one audit entry and fills in its assigned ID and creation
// time. Validation failures are fatal: the caller's transaction must roll
// back so a status update is never retained without its audit entry.
func (s *PostgresStore) Append(ctx context.Context, entry *integrity.IntegrityLog) error {
	if err := validate(entry); err != nil {
		return err
	}

	const query = `
		INSERT INTO integrity_logs
			(idfa, ban_status, ip, rooted_device, country, vpn, tor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := postgres.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query,
		entry.IDFA,
		entry.BanStatus,
		nullIP(entry.IP),
		entry.RootedDevice,
		entry.Country,
		entry.VPN,
		entry.Tor,
		createdAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("append integrity log: %w", err)
	}

	entry.CreatedAt = createdAt
	return nil
}

// ListByIDFA returns a device's audit history, newest first.
func (s *PostgresStore) ListByIDFA(ctx context.Context, idfa string) ([]integrity.IntegrityLog, error) {
	const query = `
		SELECT id, idfa, ban_status, COALESCE(ip::text, ''), rooted_device, country, vpn, tor, created_at
		FROM integrity_logs
		WHERE idfa = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := postgres.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, idfa)
	if err != nil {
		return nil, fmt.Errorf("query integrity logs: %w", err)
	}
	defer rows.Close()

	var entries []integrity.IntegrityLog
	for rows.Next() {
		var e integrity.IntegrityLog
		if err := rows.Scan(&e.ID, &e.IDFA, &e.BanStatus, &e.IP, &e.RootedDevice, &e.Country, &e.VPN, &e.Tor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan integrity log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate integrity logs: %w", err)
	}
	return entries, nil
}

func validate(entry *integrity.IntegrityLog) error {
	if entry == nil {
		return fmt.Errorf("integrity log is required: %w", store.ErrInvalidRecord)
	}
	if entry.IDFA == "" {
		return fmt.Errorf("integrity log idfa is required: %w", store.ErrInvalidRecord)
	}
	if !entry.BanStatus.Valid() {
		return fmt.Errorf("integrity log ban status %q: %w", entry.BanStatus, store.ErrInvalidRecord)
	}
	if entry.Country != "" && len(entry.Country) != 2 {
		return fmt.Errorf("integrity log country %q: %w", entry.Country, store.ErrInvalidRecord)
	}
	return nil
}

// nullIP stores only syntactically valid IPs; everything else becomes NULL.
func nullIP(ip string) sql.NullString {
	if net.ParseIP(ip) == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: ip, Valid: true}
}
