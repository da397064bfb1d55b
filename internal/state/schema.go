package state

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the durable layout: four keyed collections plus the counter rows
// that are the single source of truth for identifier allocation. Counter rows
// are seeded once; restarts restore them from the table.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		registered_at   BIGINT NOT NULL,
		verified        BOOLEAN NOT NULL DEFAULT FALSE,
		total_consents  BIGINT NOT NULL DEFAULT 0,
		active_consents BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS providers (
		id                  TEXT PRIMARY KEY,
		organization        TEXT NOT NULL,
		specialization      TEXT NOT NULL,
		license             TEXT NOT NULL,
		verified            BOOLEAN NOT NULL DEFAULT FALSE,
		registered_at       BIGINT NOT NULL,
		total_data_requests BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS consents (
		id                BIGINT PRIMARY KEY,
		patient_id        TEXT NOT NULL REFERENCES patients(id),
		provider_id       TEXT NOT NULL REFERENCES providers(id),
		data_categories   TEXT NOT NULL,
		purpose           TEXT NOT NULL,
		granted           BOOLEAN NOT NULL,
		granted_at        BIGINT NOT NULL,
		expires_at        BIGINT NOT NULL,
		can_share_further BOOLEAN NOT NULL,
		revoked           BOOLEAN NOT NULL DEFAULT FALSE,
		revoked_at        BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_consents_patient ON consents(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_consents_provider ON consents(provider_id)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id              BIGINT PRIMARY KEY,
		consent_id      BIGINT NOT NULL,
		accessed_by     TEXT NOT NULL,
		tick            BIGINT NOT NULL,
		access_type     TEXT NOT NULL,
		data_categories TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS counters (
		name  TEXT PRIMARY KEY,
		value BIGINT NOT NULL
	)`,
	`INSERT INTO counters (name, value) VALUES
		('next_consent_id', 1),
		('next_audit_id', 1),
		('total_patients', 0),
		('total_providers', 0)
	ON CONFLICT (name) DO NOTHING`,
}

// EnsureSchema creates tables and seeds counter rows if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
