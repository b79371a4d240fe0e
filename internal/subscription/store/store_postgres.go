package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"waitlist/internal/subscription/models"
	"waitlist/pkg/platform/sentinel"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint hit.
const uniqueViolation pq.ErrorCode = "23505"

// PostgresStore persists subscription records in PostgreSQL. Uniqueness of
// email per record set is enforced by the table's UNIQUE constraint, so
// concurrent inserts of the same email resolve to one row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed subscription store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert writes record into target and returns it with the store-assigned
// ID and CreatedAt. A duplicate email yields an error wrapping
// sentinel.ErrConflict.
func (s *PostgresStore) Insert(ctx context.Context, target models.Target, record *models.Record) (*models.Record, error) {
	if record == nil {
		return nil, fmt.Errorf("subscription record is required")
	}
	table, err := tableName(target)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ` + table + ` (
			email, marketing_consent, source, ip_address, user_agent, country,
			utm_source, utm_medium, utm_campaign, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	stored := *record
	err = s.db.QueryRowContext(ctx, query,
		record.Email,
		record.Consent,
		string(record.Source),
		record.CallerAddr,
		record.UserAgent,
		record.Country,
		record.UTMSource,
		record.UTMMedium,
		record.UTMCampaign,
		record.Notes,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert into %s: %w", target, sentinel.ErrConflict)
		}
		return nil, fmt.Errorf("insert into %s: %w", target, err)
	}
	return &stored, nil
}

// Probe runs a read-only query against target to confirm it is reachable.
func (s *PostgresStore) Probe(ctx context.Context, target models.Target) error {
	table, err := tableName(target)
	if err != nil {
		return err
	}
	var one int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` LIMIT 1`).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("probe %s: %w", target, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// tableName maps a target onto its quoted table identifier. Only known
// targets are accepted so the name is never caller-controlled.
func tableName(target models.Target) (string, error) {
	switch target {
	case models.TargetNotification, models.TargetResearch:
		return pq.QuoteIdentifier(string(target)), nil
	default:
		return "", fmt.Errorf("unknown record set %q", target)
	}
}
